package invoke

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_SyncVoid(t *testing.T) {
	shape := Classify(nil)
	assert.Equal(t, ReturnSyncVoid, shape.Kind)
	assert.Nil(t, shape.ResultType)

	shape = Classify(reflect.TypeOf(struct{}{}))
	assert.Equal(t, ReturnSyncVoid, shape.Kind)
}

func TestClassify_Sync(t *testing.T) {
	shape := Classify(reflect.TypeOf(0))
	assert.Equal(t, ReturnSync, shape.Kind)
	assert.Equal(t, reflect.TypeOf(0), shape.ResultType)
	assert.False(t, shape.IsAsync())
}

func TestClassify_FutureInterface(t *testing.T) {
	shape := Classify(reflect.TypeOf((*Future)(nil)).Elem())
	assert.Equal(t, ReturnFuture, shape.Kind)
	assert.Nil(t, shape.ResultType)
	assert.True(t, shape.IsAsync())
}

func TestClassify_TaskCarriesResultType(t *testing.T) {
	shape := Classify(reflect.TypeOf((*Task[int])(nil)))
	assert.Equal(t, ReturnFuture, shape.Kind)
	assert.Equal(t, reflect.TypeOf(0), shape.ResultType)
}

func TestClassify_CompletionOnlyTask(t *testing.T) {
	shape := Classify(reflect.TypeOf((*Task[struct{}])(nil)))
	assert.Equal(t, ReturnFuture, shape.Kind)
	assert.Nil(t, shape.ResultType)
}

func TestClassify_CustomAwaitable(t *testing.T) {
	shape := Classify(reflect.TypeOf(baseAwaitable{}))
	require.Equal(t, ReturnAwaitable, shape.Kind)
	assert.Equal(t, reflect.TypeOf(0), shape.ResultType)
	require.NotNil(t, shape.awaiter)
	assert.False(t, shape.awaiter.hasUnsafe)
	assert.Equal(t, 0, shape.awaiter.resultIdx)
	assert.Equal(t, 1, shape.awaiter.errIdx)
}

func TestClassify_AwaitableWithUnsafeRegistration(t *testing.T) {
	shape := Classify(reflect.TypeOf(fastAwaitable{}))
	require.Equal(t, ReturnAwaitable, shape.Kind)
	require.NotNil(t, shape.awaiter)
	assert.True(t, shape.awaiter.hasUnsafe)
}

func TestClassify_CompletionOnlyAwaitable(t *testing.T) {
	shape := Classify(reflect.TypeOf(voidAwaitable{}))
	require.Equal(t, ReturnAwaitable, shape.Kind)
	assert.Nil(t, shape.ResultType)
	assert.Equal(t, -1, shape.awaiter.resultIdx)
	assert.Equal(t, -1, shape.awaiter.errIdx)
}

func TestClassify_IncompleteProtocolIsSync(t *testing.T) {
	// GetAwaiter exists but the awaiter lacks OnCompleted
	shape := Classify(reflect.TypeOf(notAwaitable{}))
	assert.Equal(t, ReturnSync, shape.Kind)
	assert.Equal(t, reflect.TypeOf(notAwaitable{}), shape.ResultType)
}

func TestClassify_ProbeRunsOnceAtConstruction(t *testing.T) {
	exec, err := NewMethodExecutorFor(awaitService{}, "Base", nil)
	require.NoError(t, err)

	// the shape carries the probed capabilities; invocations reuse them
	shape := exec.Shape()
	require.Equal(t, ReturnAwaitable, shape.Kind)
	require.NotNil(t, shape.awaiter)
	assert.Equal(t, reflect.TypeOf((*baseAwaiter)(nil)), shape.awaiter.awaiterType)
}

func TestReturnKind_String(t *testing.T) {
	assert.Equal(t, "Sync", ReturnSync.String())
	assert.Equal(t, "SyncVoid", ReturnSyncVoid.String())
	assert.Equal(t, "Future", ReturnFuture.String())
	assert.Equal(t, "Awaitable", ReturnAwaitable.String())
	assert.Equal(t, "Unknown", ReturnKind(42).String())
}
