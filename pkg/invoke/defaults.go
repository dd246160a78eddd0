package invoke

// ParameterDefaults holds an optional caller-supplied default value per
// parameter position, consulted when an invocation call site omits
// trailing arguments. It distinguishes "no list was ever supplied" from
// "a list was supplied but this slot is empty": presence of the list is
// what matters, not non-emptiness of each slot.
//
// A ParameterDefaults is constructed once and read-only thereafter.
type ParameterDefaults struct {
	values   []any
	provided bool
}

// NewParameterDefaults creates a defaults table for a method with
// paramCount parameters. values may be nil, meaning no defaults were
// configured; a non-nil list must have exactly one entry per parameter.
func NewParameterDefaults(values []any, paramCount int) (*ParameterDefaults, error) {
	if values == nil {
		return &ParameterDefaults{}, nil
	}
	if len(values) != paramCount {
		return nil, NewInvalidMethodError("", "default value count does not match parameter count")
	}
	copied := append([]any(nil), values...)
	return &ParameterDefaults{values: copied, provided: true}, nil
}

// Provided reports whether a default-value list was supplied at all.
func (d *ParameterDefaults) Provided() bool { return d.provided }

// Value returns the default for the parameter at index. It fails with
// ErrNoDefaultValues when no list was ever supplied, and with an
// IndexOutOfRangeError when index is outside [0, paramCount). A nil
// entry in a supplied list is returned as-is.
func (d *ParameterDefaults) Value(index int) (any, error) {
	if !d.provided {
		return nil, ErrNoDefaultValues
	}
	if index < 0 || index >= len(d.values) {
		return nil, &IndexOutOfRangeError{Index: index, Count: len(d.values)}
	}
	return d.values[index], nil
}
