package invoke

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNoDefaultValues is returned by DefaultValueForParameter when the
// executor was constructed without any default-value list at all. It is
// an invalid-operation condition, distinct from an out-of-range index.
var ErrNoDefaultValues = errors.New("no default values were supplied for this executor")

// InvalidMethodError reports that a method executor could not be
// constructed from the supplied method metadata.
type InvalidMethodError struct {
	// Method is the name of the offending method, when known
	Method string

	// Reason describes why the metadata was rejected
	Reason string
}

// Error implements the error interface
func (e *InvalidMethodError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("invalid method: %s", e.Reason)
	}
	return fmt.Sprintf("invalid method %q: %s", e.Method, e.Reason)
}

// NewInvalidMethodError creates a new InvalidMethodError for the given method
func NewInvalidMethodError(method, reason string) *InvalidMethodError {
	return &InvalidMethodError{Method: method, Reason: reason}
}

// IndexOutOfRangeError reports a parameter index outside [0, Count).
type IndexOutOfRangeError struct {
	// Index is the requested parameter position
	Index int

	// Count is the method's parameter count
	Count int
}

// Error implements the error interface
func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("parameter index %d out of range [0, %d)", e.Index, e.Count)
}

// ArgumentError reports that an invocation argument could not be bound
// to the corresponding parameter of the method.
type ArgumentError struct {
	// Index is the parameter position the argument was bound to
	Index int

	// Expected is the declared parameter type
	Expected reflect.Type

	// Got is the dynamic type of the supplied argument, nil for untyped nil
	Got reflect.Type
}

// Error implements the error interface
func (e *ArgumentError) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("argument %d: cannot use nil as %s", e.Index, e.Expected)
	}
	return fmt.Sprintf("argument %d: cannot use %s as %s", e.Index, e.Got, e.Expected)
}
