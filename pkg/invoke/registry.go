package invoke

import (
	"reflect"

	"github.com/toyz/invoke/internal/cache"
)

// executorKey identifies one cached executor per distinct method.
type executorKey struct {
	targetType reflect.Type
	methodName string
}

// ExecutorRegistry caches method executors so that each distinct method
// is classified and compiled exactly once and reused across calls.
type ExecutorRegistry interface {
	// ExecutorFor returns the cached executor for the named method of
	// targetType, constructing and caching it on first use. Executors
	// constructed this way carry no default-value list.
	ExecutorFor(targetType reflect.Type, methodName string) (*MethodExecutor, error)

	// Register stores a pre-built executor (for example one constructed
	// with default values) under its target type and method name.
	Register(executor *MethodExecutor)

	// All returns all cached executors
	All() []*MethodExecutor
}

// inMemoryExecutorRegistry implements ExecutorRegistry
type inMemoryExecutorRegistry struct {
	executors *cache.Cache[executorKey, *MethodExecutor]
}

// NewInMemoryExecutorRegistry creates a new in-memory executor registry
func NewInMemoryExecutorRegistry() ExecutorRegistry {
	return &inMemoryExecutorRegistry{
		executors: cache.New[executorKey, *MethodExecutor](),
	}
}

func (r *inMemoryExecutorRegistry) ExecutorFor(targetType reflect.Type, methodName string) (*MethodExecutor, error) {
	key := executorKey{targetType: targetType, methodName: methodName}
	if exec, ok := r.executors.Get(key); ok {
		return exec, nil
	}
	if targetType == nil {
		return nil, NewInvalidMethodError(methodName, "target type is nil")
	}
	m, ok := targetType.MethodByName(methodName)
	if !ok {
		return nil, NewInvalidMethodError(methodName, "type "+targetType.String()+" has no such method")
	}
	exec, err := NewMethodExecutor(m, targetType, nil)
	if err != nil {
		return nil, err
	}
	return r.executors.Set(key, exec), nil
}

func (r *inMemoryExecutorRegistry) Register(executor *MethodExecutor) {
	key := executorKey{targetType: executor.TargetType(), methodName: executor.MethodName()}
	r.executors.Set(key, executor)
}

func (r *inMemoryExecutorRegistry) All() []*MethodExecutor {
	return r.executors.Values()
}

// DefaultExecutorRegistry is the global executor registry
var DefaultExecutorRegistry = NewInMemoryExecutorRegistry()

// ExecutorFor returns the cached executor for the named method of
// target's type from the global registry (convenience function).
func ExecutorFor(target any, methodName string) (*MethodExecutor, error) {
	if target == nil {
		return nil, NewInvalidMethodError(methodName, "target is nil")
	}
	return DefaultExecutorRegistry.ExecutorFor(reflect.TypeOf(target), methodName)
}
