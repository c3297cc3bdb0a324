// Package oputil runs caller-supplied operations against rate-limited
// upstreams. An Executor takes one operation at a time, classifies its
// failures into transient and terminal ones (see errutil) and drives the
// retries through the queue primitives of queueutil. Callers only submit
// work and receive the eventual outcome; backoff, concurrency bounding and
// retry bookkeeping stay inside the executor.
package oputil

import (
	"context"

	"github.com/ratebound/ratebound-go-sdk/pkg/typeutil"
)

// Func is one caller-supplied unit of work. The executor owns scheduling and
// retries; the function only reports its outcome. It must be safe to call
// multiple times, since transient failures make the executor invoke it
// again.
type Func[T any] func(ctx context.Context) (T, error)

// Executor runs operations under a concurrency and retry policy and returns
// their eventual outcome. The implementations differ in where the retry
// state lives, not in the contract:
//
//   - [ThrottleExecutor] delegates retries and backoff to its throttled
//     queue.
//   - [RateLimitExecutor] owns the retry count and ceiling itself and uses
//     its queue only for concurrency and pacing.
//   - [InlineExecutor] invokes the operation directly with no policy at all.
type Executor[T any] interface {
	Run(ctx context.Context, fn Func[T], opts ...RunOption) (T, error)
}

// RunOptions apply to a single Run call. All executors accept the same
// shape, so callers can switch implementations without touching call sites.
type RunOptions struct {
	// Name labels the operation for logs, traces and failure messages.
	// Unnamed operations fall back to their generated id.
	Name string

	// RetryStatus is the set of status codes that mark a failure transient
	// for this run. A nil set selects the default policy, an explicitly
	// empty set disables retries entirely.
	RetryStatus *typeutil.Set[int]
}

type RunOption func(*RunOptions)

// WithName labels the operation for logs, traces and failure messages.
func WithName(name string) RunOption {
	return func(o *RunOptions) {
		o.Name = name
	}
}

// WithRetryStatus overrides the status codes that mark a failure transient
// for this run. Passing no codes disables retries entirely.
func WithRetryStatus(codes ...int) RunOption {
	return func(o *RunOptions) {
		o.RetryStatus = typeutil.NewSet(codes...)
	}
}

func newRunOptions(opts []RunOption) RunOptions {
	var options RunOptions

	for _, o := range opts {
		o(&options)
	}

	return options
}
