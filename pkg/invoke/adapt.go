package invoke

import (
	"fmt"
	"reflect"
)

// adaptResult normalizes a raw invocation outcome into a Pending using
// the method's precomputed return shape. err is the synchronous error
// split off the method's return tuple; a non-nil err always produces an
// already-failed Pending regardless of shape.
//
// The adapter is a pure registration bridge: it performs no threading,
// sleeping, or polling. Suspension, when it occurs, rides whatever
// scheduling primitive the returned future or awaitable uses
// internally.
func adaptResult(raw any, err error, shape ReturnShape) *Pending {
	if err != nil {
		return failedPending(err)
	}

	switch shape.Kind {
	case ReturnSyncVoid:
		return resolvedPending(nil)
	case ReturnSync:
		return resolvedPending(raw)
	case ReturnFuture:
		return adaptFuture(raw, shape)
	case ReturnAwaitable:
		return adaptAwaitable(raw, shape)
	default:
		return failedPending(fmt.Errorf("unknown return shape %v", shape.Kind))
	}
}

// adaptFuture bridges a standard future. The Pending delegates straight
// to the future's own completion channel; no continuation registration
// and no goroutine are needed.
func adaptFuture(raw any, shape ReturnShape) *Pending {
	f, ok := raw.(Future)
	if !ok || isNilValue(raw) {
		return failedPending(fmt.Errorf("method returned a nil future"))
	}
	return futurePending(f, shape.ResultType == nil)
}

// adaptAwaitable bridges a custom awaitable through its structural
// awaiter protocol. An already-completed awaiter resolves synchronously
// with no registration; otherwise exactly one continuation is
// registered, via UnsafeOnCompleted when the awaiter exposes it and
// OnCompleted otherwise.
func adaptAwaitable(raw any, shape ReturnShape) *Pending {
	if isNilValue(raw) {
		return failedPending(fmt.Errorf("method returned a nil awaitable"))
	}
	caps := shape.awaiter

	awaiter := reflect.ValueOf(raw).MethodByName("GetAwaiter").Call(nil)[0]

	if awaiter.MethodByName("IsCompleted").Call(nil)[0].Bool() {
		v, err := callGetResult(awaiter, caps)
		if err != nil {
			return failedPending(err)
		}
		return resolvedPending(v)
	}

	p := newPending()
	continuation := func() {
		v, err := callGetResult(awaiter, caps)
		if err != nil {
			p.reject(err)
			return
		}
		p.resolve(v)
	}

	registration := "OnCompleted"
	if caps.hasUnsafe {
		registration = "UnsafeOnCompleted"
	}
	awaiter.MethodByName(registration).Call([]reflect.Value{reflect.ValueOf(continuation)})
	return p
}

// callGetResult invokes the awaiter's GetResult and splits its outputs
// according to the capabilities probed at classification time. The
// value and error extraction is identical whether resolution happened
// synchronously or through a continuation.
func callGetResult(awaiter reflect.Value, caps *awaiterCaps) (any, error) {
	outs := awaiter.MethodByName("GetResult").Call(nil)
	var err error
	if caps.errIdx >= 0 {
		if e := outs[caps.errIdx]; !e.IsNil() {
			err = e.Interface().(error)
		}
	}
	if err != nil {
		return nil, err
	}
	if caps.resultIdx < 0 {
		return nil, nil
	}
	return normalizeValue(outs[caps.resultIdx].Interface()), nil
}

// isNilValue reports whether v is nil or a typed nil pointer, map,
// channel, function, slice, or interface.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
