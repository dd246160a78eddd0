package invoke

import (
	"context"
	"reflect"
	"sync"
)

// Future is the standard asynchronous return type understood natively by
// method executors. A method whose first return value implements Future
// is classified as asynchronous without any structural probing: the
// executor bridges it through the future's own completion channel.
//
// A Future completes exactly once; Done is closed on completion and
// Result then reports the final outcome.
type Future interface {
	// Done returns a channel that is closed when the future completes
	Done() <-chan struct{}

	// Result blocks until the future completes and returns its outcome
	Result() (any, error)

	// ResultType reports the static type of the value Result carries.
	// A struct{} result type means the future carries no meaningful
	// value, only completion.
	ResultType() reflect.Type
}

// futureType is the reflect.Type of the Future interface, used by the
// return-shape classifier.
var futureType = reflect.TypeOf((*Future)(nil)).Elem()

// Task is the library's concrete Future implementation: a single async
// computation that eventually produces a value of type T or an error.
// A Task completes exactly once and its result is immutable.
type Task[T any] struct {
	done chan struct{}
	res  T
	err  error
}

// Go launches fn in its own goroutine and returns the running Task.
func Go[T any](fn func() (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		// publish result before close(done) so waiters observe it
		t.res, t.err = fn()
		close(t.done)
	}()
	return t
}

// CompletedTask returns an already-completed successful task carrying v.
func CompletedTask[T any](v T) *Task[T] {
	t := &Task[T]{done: make(chan struct{}), res: v}
	close(t.done)
	return t
}

// FailedTask returns an already-completed failed task carrying err.
func FailedTask[T any](err error) *Task[T] {
	t := &Task[T]{done: make(chan struct{}), err: err}
	close(t.done)
	return t
}

// Done returns a channel that is closed when the task completes.
func (t *Task[T]) Done() <-chan struct{} { return t.done }

// Result blocks until the task completes and returns its outcome as a
// Future. The value is the boxed T; the error is the task's error.
func (t *Task[T]) Result() (any, error) {
	<-t.done
	return t.res, t.err
}

// ResultType reports T. It is safe to call on a zero Task since it only
// inspects the type parameter.
func (t *Task[T]) ResultType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Await blocks until the task completes or ctx is cancelled. On
// cancellation it returns the zero value and ctx.Err().
func (t *Task[T]) Await(ctx context.Context) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-t.done:
		return t.res, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// TryGet returns the result if the task is already complete. When
// ok==false the task is still running and v and err are meaningless.
func (t *Task[T]) TryGet() (v T, err error, ok bool) {
	select {
	case <-t.done:
		return t.res, t.err, true
	default:
		var zero T
		return zero, nil, false
	}
}

// Completer allows external resolution of a Task, similar to a promise
// resolver pair. Resolve and Reject complete the task at most once; the
// first call wins and later calls report false.
type Completer[T any] struct {
	once sync.Once
	t    *Task[T]
}

// NewCompleter returns a (Completer, Task) pair for a task that
// completes when Resolve or Reject is called.
func NewCompleter[T any]() (*Completer[T], *Task[T]) {
	t := &Task[T]{done: make(chan struct{})}
	return &Completer[T]{t: t}, t
}

// Resolve completes the task successfully with v.
func (c *Completer[T]) Resolve(v T) bool {
	called := false
	c.once.Do(func() {
		called = true
		c.t.res = v
		close(c.t.done)
	})
	return called
}

// Reject completes the task with err.
func (c *Completer[T]) Reject(err error) bool {
	called := false
	c.once.Do(func() {
		called = true
		c.t.err = err
		close(c.t.done)
	})
	return called
}
