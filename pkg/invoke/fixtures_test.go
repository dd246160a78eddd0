package invoke

import "errors"

// errBoom is the sentinel target-method error used across tests to
// verify that errors propagate unchanged.
var errBoom = errors.New("boom")

// calcService hosts plain synchronous and future-returning methods.
type calcService struct{}

func (calcService) Add(i, j int) int { return i + j }

func (calcService) Touch() {}

func (calcService) TouchErr(fail bool) error {
	if fail {
		return errBoom
	}
	return nil
}

func (calcService) Greet(name string) (string, error) {
	if name == "" {
		return "", errBoom
	}
	return "hello " + name, nil
}

func (calcService) AddAsync(i, j int) *Task[int] {
	return CompletedTask(i + j)
}

func (calcService) FailAsync() *Task[int] {
	return FailedTask[int](errBoom)
}

func (calcService) Sleep() *Task[struct{}] {
	return CompletedTask(struct{}{})
}

func (calcService) NilFuture() *Task[int] { return nil }

func (calcService) Sum(base int, rest ...int) (int, error) {
	for _, n := range rest {
		base += n
	}
	return base, nil
}

// baseAwaiter implements only the baseline registration capability.
type baseAwaiter struct {
	completed bool
	value     int
	err       error
	conts     []func()

	onCompletedCalls int
}

func (a *baseAwaiter) IsCompleted() bool { return a.completed }

func (a *baseAwaiter) GetResult() (int, error) { return a.value, a.err }

func (a *baseAwaiter) OnCompleted(f func()) {
	a.onCompletedCalls++
	a.conts = append(a.conts, f)
}

func (a *baseAwaiter) complete(v int, err error) {
	a.value, a.err, a.completed = v, err, true
	for _, f := range a.conts {
		f()
	}
}

// baseAwaitable is a custom awaitable exposing only OnCompleted.
type baseAwaitable struct{ aw *baseAwaiter }

func (b baseAwaitable) GetAwaiter() *baseAwaiter { return b.aw }

// fastAwaiter exposes both registration capabilities so tests can
// verify that UnsafeOnCompleted is preferred.
type fastAwaiter struct {
	baseAwaiter
	unsafeCalls int
}

func (a *fastAwaiter) UnsafeOnCompleted(f func()) {
	a.unsafeCalls++
	a.conts = append(a.conts, f)
}

// fastAwaitable is a custom awaitable exposing both registrations.
type fastAwaitable struct{ aw *fastAwaiter }

func (f fastAwaitable) GetAwaiter() *fastAwaiter { return f.aw }

// voidAwaiter completes without producing a value.
type voidAwaiter struct {
	completed      bool
	conts          []func()
	getResultCalls int
}

func (a *voidAwaiter) IsCompleted() bool { return a.completed }

func (a *voidAwaiter) GetResult() { a.getResultCalls++ }

func (a *voidAwaiter) OnCompleted(f func()) { a.conts = append(a.conts, f) }

func (a *voidAwaiter) complete() {
	a.completed = true
	for _, f := range a.conts {
		f()
	}
}

// voidAwaitable is a completion-only custom awaitable.
type voidAwaitable struct{ aw *voidAwaiter }

func (v voidAwaitable) GetAwaiter() *voidAwaiter { return v.aw }

// awaitService hosts custom-awaitable-returning methods.
type awaitService struct {
	base *baseAwaiter
	fast *fastAwaiter
	void *voidAwaiter
}

func (s awaitService) Base() baseAwaitable { return baseAwaitable{s.base} }

func (s awaitService) Fast() fastAwaitable { return fastAwaitable{s.fast} }

func (s awaitService) Void() voidAwaitable { return voidAwaitable{s.void} }

// notAwaitable has a GetAwaiter whose awaiter lacks OnCompleted, so it
// must classify as plain synchronous.
type notAwaitable struct{}

func (notAwaitable) GetAwaiter() struct{ X int } { return struct{ X int }{} }

type shapeService struct{}

func (shapeService) PlainAwaitable() baseAwaitable { return baseAwaitable{} }

func (shapeService) AlmostAwaitable() notAwaitable { return notAwaitable{} }

func (shapeService) GenericFuture() Future { return CompletedTask(1) }

func (shapeService) TooMany() (int, string, error) { return 0, "", nil }

func (shapeService) WrongPair() (int, string) { return 0, "" }

func (shapeService) FutureWithErr() (*Task[int], error) {
	return CompletedTask(7), nil
}
