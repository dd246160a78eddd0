// Package invoke provides a uniform method-invocation executor: given a
// late-bound description of a method, it builds a reusable executor
// that can call the method synchronously or asynchronously, regardless
// of whether the method is plain synchronous code, returns a standard
// Future, or returns a custom awaitable satisfying the structural
// awaiter protocol.
//
// The return type is classified exactly once at construction into a
// closed set of execution strategies; every invocation afterwards
// dispatches on that precomputed shape with no structural re-probing
// and no adaptation cost on the synchronous path.
package invoke

import (
	"fmt"
	"reflect"
)

// thunkFunc is a precompiled invocation closure bound once per
// executor: it takes a target instance and an argument list and returns
// the method's raw first output plus the split-off trailing error.
type thunkFunc func(target any, args []any) (any, error)

// MethodExecutor wraps one method of a target type. It is immutable
// after construction and safe for concurrent use; create it once per
// distinct method and reuse it across invocations.
type MethodExecutor struct {
	method     reflect.Method
	targetType reflect.Type
	paramTypes []reflect.Type
	shape      ReturnShape
	thunk      thunkFunc
	defaults   *ParameterDefaults
}

// NewMethodExecutor creates an executor for the given method of
// targetType. defaults, when non-nil, supplies one default value per
// parameter position for call sites that omit trailing arguments.
// Construction fails on missing metadata, a receiver mismatch, or an
// unsupported return signature.
func NewMethodExecutor(method reflect.Method, targetType reflect.Type, defaults []any) (*MethodExecutor, error) {
	if !method.Func.IsValid() {
		return nil, NewInvalidMethodError(method.Name, "method metadata carries no function")
	}
	if targetType == nil {
		return nil, NewInvalidMethodError(method.Name, "target type is nil")
	}
	ft := method.Type
	if ft.NumIn() == 0 || !targetType.AssignableTo(ft.In(0)) {
		return nil, NewInvalidMethodError(method.Name, fmt.Sprintf("target type %s does not match receiver %s", targetType, ft.In(0)))
	}

	paramTypes := make([]reflect.Type, ft.NumIn()-1)
	for i := range paramTypes {
		paramTypes[i] = ft.In(i + 1)
	}

	shape, valueIdx, errIdx, err := classifySignature(method)
	if err != nil {
		return nil, err
	}

	table, err := NewParameterDefaults(defaults, len(paramTypes))
	if err != nil {
		return nil, NewInvalidMethodError(method.Name, err.Error())
	}

	return &MethodExecutor{
		method:     method,
		targetType: targetType,
		paramTypes: paramTypes,
		shape:      shape,
		thunk:      compileThunk(method, paramTypes, valueIdx, errIdx),
		defaults:   table,
	}, nil
}

// NewMethodExecutorFor creates an executor for the named method of
// target's type. It is the common entry point when the caller holds an
// instance rather than introspection metadata.
func NewMethodExecutorFor(target any, methodName string, defaults []any) (*MethodExecutor, error) {
	if target == nil {
		return nil, NewInvalidMethodError(methodName, "target is nil")
	}
	tt := reflect.TypeOf(target)
	m, ok := tt.MethodByName(methodName)
	if !ok {
		return nil, NewInvalidMethodError(methodName, fmt.Sprintf("type %s has no such method", tt))
	}
	return NewMethodExecutor(m, tt, defaults)
}

// Execute invokes the method synchronously and returns its raw result,
// unadapted: for future- or awaitable-shaped methods this is the future
// or awaitable object itself, never implicitly awaited. The error is
// the method's own trailing error (or an argument-binding failure),
// propagated unchanged.
func (e *MethodExecutor) Execute(target any, args ...any) (any, error) {
	return e.thunk(target, args)
}

// ExecuteAsync invokes the method and normalizes its result into a
// Pending using the precomputed return shape. Synchronous methods yield
// an already-resolved Pending, so callers have one uniform asynchronous
// contract regardless of method shape. Target-method errors resolve the
// Pending unchanged.
func (e *MethodExecutor) ExecuteAsync(target any, args ...any) *Pending {
	raw, err := e.thunk(target, args)
	return adaptResult(raw, err, e.shape)
}

// IsMethodAsync reports whether the method's return shape is a future
// or a custom awaitable.
func (e *MethodExecutor) IsMethodAsync() bool {
	return e.shape.IsAsync()
}

// AsyncResultType returns the eventual result type carried by an
// asynchronous shape. It is nil for completion-only shapes and for
// synchronous methods.
func (e *MethodExecutor) AsyncResultType() reflect.Type {
	if !e.shape.IsAsync() {
		return nil
	}
	return e.shape.ResultType
}

// Shape returns the method's precomputed return shape.
func (e *MethodExecutor) Shape() ReturnShape { return e.shape }

// MethodName returns the wrapped method's name.
func (e *MethodExecutor) MethodName() string { return e.method.Name }

// TargetType returns the type the executor was constructed for.
func (e *MethodExecutor) TargetType() reflect.Type { return e.targetType }

// ParameterTypes returns a copy of the method's parameter types in
// declaration order, receiver excluded.
func (e *MethodExecutor) ParameterTypes() []reflect.Type {
	return append([]reflect.Type(nil), e.paramTypes...)
}

// DefaultValueForParameter returns the caller-supplied default for the
// parameter at index. See ParameterDefaults.Value for the failure
// conditions.
func (e *MethodExecutor) DefaultValueForParameter(index int) (any, error) {
	return e.defaults.Value(index)
}

// classifySignature validates the method's output list and classifies
// its return shape. A trailing error output is permitted alongside
// every shape; for future and awaitable shapes it represents a
// synchronous construction failure.
func classifySignature(method reflect.Method) (shape ReturnShape, valueIdx, errIdx int, err error) {
	ft := method.Type
	valueIdx, errIdx = -1, -1
	switch ft.NumOut() {
	case 0:
		return Classify(nil), valueIdx, errIdx, nil
	case 1:
		if ft.Out(0) == errorType {
			return Classify(nil), valueIdx, 0, nil
		}
		return Classify(ft.Out(0)), 0, errIdx, nil
	case 2:
		if ft.Out(0) == errorType || ft.Out(1) != errorType {
			return shape, valueIdx, errIdx, NewInvalidMethodError(method.Name, "two return values require a trailing error")
		}
		return Classify(ft.Out(0)), 0, 1, nil
	default:
		return shape, valueIdx, errIdx, NewInvalidMethodError(method.Name, fmt.Sprintf("unsupported return signature with %d values", ft.NumOut()))
	}
}

// compileThunk binds the method's function value into an invocation
// closure once, so no late-binding cost is paid per call. The closure
// converts the untyped argument list, calls the method, and splits the
// output tuple at the precomputed value and error positions.
func compileThunk(method reflect.Method, paramTypes []reflect.Type, valueIdx, errIdx int) thunkFunc {
	fn := method.Func
	receiverType := method.Type.In(0)
	variadic := method.Type.IsVariadic()

	return func(target any, args []any) (any, error) {
		if target == nil {
			return nil, NewInvalidMethodError(method.Name, "target is nil")
		}
		tv := reflect.ValueOf(target)
		if !tv.Type().AssignableTo(receiverType) {
			return nil, NewInvalidMethodError(method.Name, fmt.Sprintf("target type %s does not match receiver %s", tv.Type(), receiverType))
		}
		if len(args) != len(paramTypes) {
			return nil, fmt.Errorf("method %q expects %d arguments, got %d", method.Name, len(paramTypes), len(args))
		}

		in := make([]reflect.Value, 0, len(args)+1)
		in = append(in, tv)
		for i, arg := range args {
			av, err := bindArgument(arg, paramTypes[i], i)
			if err != nil {
				return nil, err
			}
			in = append(in, av)
		}

		var outs []reflect.Value
		if variadic {
			// the variadic parameter is passed as its slice
			outs = fn.CallSlice(in)
		} else {
			outs = fn.Call(in)
		}

		var raw any
		if valueIdx >= 0 {
			raw = outs[valueIdx].Interface()
		}
		if errIdx >= 0 && !outs[errIdx].IsNil() {
			return raw, outs[errIdx].Interface().(error)
		}
		return raw, nil
	}
}

// bindArgument converts one untyped argument to the declared parameter
// type. nil binds to the zero value of nilable parameter types only.
func bindArgument(arg any, t reflect.Type, index int) (reflect.Value, error) {
	if arg == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice, reflect.Interface:
			return reflect.Zero(t), nil
		default:
			return reflect.Value{}, &ArgumentError{Index: index, Expected: t}
		}
	}
	av := reflect.ValueOf(arg)
	if !av.Type().AssignableTo(t) {
		return reflect.Value{}, &ArgumentError{Index: index, Expected: t, Got: av.Type()}
	}
	return av, nil
}
