package oputil

import "context"

// InlineExecutor invokes operations directly: no queueing, no retries, no
// error classification. It substitutes the queue-backed executors wherever
// deterministic, synchronous execution is required, most notably in tests of
// calling code.
type InlineExecutor[T any] struct{}

// Run calls fn and returns its outcome unmodified. The options are accepted
// for interface compatibility and ignored.
func (InlineExecutor[T]) Run(ctx context.Context, fn Func[T], opts ...RunOption) (T, error) {
	return fn(ctx)
}
