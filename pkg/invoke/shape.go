package invoke

import "reflect"

var (
	errorType        = reflect.TypeOf((*error)(nil)).Elem()
	boolType         = reflect.TypeOf(false)
	voidType         = reflect.TypeOf(struct{}{})
	continuationType = reflect.TypeOf((func())(nil))
)

// ReturnKind is the closed classification of a method's return type
// into one of four execution strategies.
type ReturnKind int

const (
	// ReturnSync marks ordinary synchronous methods returning a value
	ReturnSync ReturnKind = iota

	// ReturnSyncVoid marks synchronous methods returning no value
	ReturnSyncVoid

	// ReturnFuture marks methods returning the standard Future type
	ReturnFuture

	// ReturnAwaitable marks methods returning a custom awaitable that
	// satisfies the structural awaiter protocol
	ReturnAwaitable
)

// String returns the string representation of the return kind
func (k ReturnKind) String() string {
	switch k {
	case ReturnSync:
		return "Sync"
	case ReturnSyncVoid:
		return "SyncVoid"
	case ReturnFuture:
		return "Future"
	case ReturnAwaitable:
		return "Awaitable"
	default:
		return "Unknown"
	}
}

// ReturnShape describes how a method's return value is executed and
// adapted. It is computed once at executor construction and immutable
// thereafter; invocation dispatches on the precomputed shape and never
// re-probes the return type structurally.
type ReturnShape struct {
	// Kind is the execution strategy for the return type
	Kind ReturnKind

	// ResultType is the type of the eventual result value. nil means
	// the method produces no meaningful value, only completion.
	ResultType reflect.Type

	// awaiter carries the capabilities probed from a custom awaitable's
	// awaiter type. Set only when Kind is ReturnAwaitable.
	awaiter *awaiterCaps
}

// IsAsync reports whether the shape is Future or Awaitable.
func (s ReturnShape) IsAsync() bool {
	return s.Kind == ReturnFuture || s.Kind == ReturnAwaitable
}

// awaiterCaps records which operations an awaiter type exposes, probed
// once per return type at classification time. Invocation only performs
// method lookup by name against these capabilities.
type awaiterCaps struct {
	awaiterType reflect.Type

	// hasUnsafe reports whether UnsafeOnCompleted is available; when it
	// is, registration prefers it over OnCompleted.
	hasUnsafe bool

	// resultIdx is the output index of GetResult's value, -1 for none
	resultIdx int

	// errIdx is the output index of GetResult's error, -1 for none
	errIdx int
}

// Classify inspects a method's declared return type and determines its
// execution strategy. It is a pure function of the type, called once
// per executor construction; the structural awaiter probe is
// comparatively expensive and must not run per call.
//
// A nil type (no return value) and the empty struct both classify as
// SyncVoid. The Future interface itself classifies as a completion-only
// future; any type implementing Future classifies as a future carrying
// the type's declared result. A type satisfying the awaiter structural
// protocol classifies as a custom awaitable. Everything else is plain
// synchronous code.
func Classify(t reflect.Type) ReturnShape {
	if t == nil || t == voidType {
		return ReturnShape{Kind: ReturnSyncVoid}
	}
	if t == futureType {
		return ReturnShape{Kind: ReturnFuture}
	}
	if t.Implements(futureType) {
		return ReturnShape{Kind: ReturnFuture, ResultType: futureResultType(t)}
	}
	if caps, ok := probeAwaiter(t); ok {
		rt := resultTypeOf(caps)
		return ReturnShape{Kind: ReturnAwaitable, ResultType: rt, awaiter: caps}
	}
	return ReturnShape{Kind: ReturnSync, ResultType: t}
}

// futureResultType asks a zero value of t for its declared result type.
// ResultType only inspects the type parameter, so the zero value is
// safe to probe. Interface types carry no instantiation information and
// report completion-only.
func futureResultType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Interface {
		return nil
	}
	var zero reflect.Value
	if t.Kind() == reflect.Pointer {
		zero = reflect.New(t.Elem())
	} else {
		zero = reflect.New(t).Elem()
	}
	rt := zero.Interface().(Future).ResultType()
	if rt == voidType {
		return nil
	}
	return rt
}

// resultTypeOf maps the probed GetResult value output to the shape's
// result type, folding the empty struct to completion-only.
func resultTypeOf(caps *awaiterCaps) reflect.Type {
	if caps.resultIdx < 0 {
		return nil
	}
	m, _ := caps.awaiterType.MethodByName("GetResult")
	rt := m.Type.Out(caps.resultIdx)
	if rt == voidType {
		return nil
	}
	return rt
}

// probeAwaiter checks whether t satisfies the custom-awaitable
// structural protocol: a zero-argument GetAwaiter method yielding an
// awaiter that exposes IsCompleted, GetResult, and OnCompleted.
// UnsafeOnCompleted is optional and recorded when present.
func probeAwaiter(t reflect.Type) (*awaiterCaps, bool) {
	get, ok := t.MethodByName("GetAwaiter")
	if !ok || numIn(t, get) != 0 || get.Type.NumOut() != 1 {
		return nil, false
	}
	at := get.Type.Out(0)

	isCompleted, ok := at.MethodByName("IsCompleted")
	if !ok || numIn(at, isCompleted) != 0 || isCompleted.Type.NumOut() != 1 || isCompleted.Type.Out(0) != boolType {
		return nil, false
	}

	getResult, ok := at.MethodByName("GetResult")
	if !ok || numIn(at, getResult) != 0 {
		return nil, false
	}
	resultIdx, errIdx, ok := parseResultOutputs(getResult.Type)
	if !ok {
		return nil, false
	}

	if !hasContinuationMethod(at, "OnCompleted") {
		return nil, false
	}

	return &awaiterCaps{
		awaiterType: at,
		hasUnsafe:   hasContinuationMethod(at, "UnsafeOnCompleted"),
		resultIdx:   resultIdx,
		errIdx:      errIdx,
	}, true
}

// parseResultOutputs validates GetResult's output list. Allowed forms
// are (), (T), (error), and (T, error).
func parseResultOutputs(ft reflect.Type) (resultIdx, errIdx int, ok bool) {
	resultIdx, errIdx = -1, -1
	switch ft.NumOut() {
	case 0:
		return resultIdx, errIdx, true
	case 1:
		if ft.Out(0) == errorType {
			return resultIdx, 0, true
		}
		return 0, errIdx, true
	case 2:
		if ft.Out(0) == errorType || ft.Out(1) != errorType {
			return resultIdx, errIdx, false
		}
		return 0, 1, true
	default:
		return resultIdx, errIdx, false
	}
}

// hasContinuationMethod reports whether at exposes a registration
// method with the shape func(func()).
func hasContinuationMethod(at reflect.Type, name string) bool {
	m, ok := at.MethodByName(name)
	return ok && numIn(at, m) == 1 && in(at, m, 0) == continuationType && m.Type.NumOut() == 0
}

// numIn returns a method's parameter count excluding the receiver.
func numIn(t reflect.Type, m reflect.Method) int {
	if t.Kind() == reflect.Interface {
		return m.Type.NumIn()
	}
	return m.Type.NumIn() - 1
}

// in returns a method's i-th parameter type excluding the receiver.
func in(t reflect.Type, m reflect.Method, i int) reflect.Type {
	if t.Kind() == reflect.Interface {
		return m.Type.In(i)
	}
	return m.Type.In(i + 1)
}
