package oputil

import (
	"context"
	"time"

	"github.com/ratebound/ratebound-go-sdk/pkg/logutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/queueutil"
)

// DefaultRetries applies when RateLimitExecutorOptions leave Retries unset.
const DefaultRetries = 3

// RateLimitExecutorOptions configures a RateLimitExecutor and the bounded
// queue behind it.
type RateLimitExecutorOptions struct {
	// Name registers the queue counters for [queueutil.Snapshots]. Optional.
	Name string

	// Concurrency, Interval and IntervalCap bound how the queue admits
	// attempts. See [queueutil.BoundedQueueOptions].
	Concurrency int
	Interval    time.Duration
	IntervalCap int

	// Retries is the ceiling of re-attempts per operation. An operation
	// failing transiently on every attempt runs Retries+1 times in total.
	Retries int
}

// RateLimitExecutor owns the retry count and ceiling of its operations. The
// bounded queue underneath only admits attempts under a concurrency and
// pacing limit; it never re-attempts anything itself.
type RateLimitExecutor[T any] struct {
	queue   *queueutil.BoundedQueue
	retries int
}

func NewRateLimitExecutor[T any](opts RateLimitExecutorOptions) *RateLimitExecutor[T] {
	retries := opts.Retries
	if retries <= 0 {
		retries = DefaultRetries
	}

	return &RateLimitExecutor[T]{
		queue: queueutil.NewBoundedQueue(queueutil.BoundedQueueOptions{
			Name:        opts.Name,
			Concurrency: opts.Concurrency,
			Interval:    opts.Interval,
			IntervalCap: opts.IntervalCap,
		}),
		retries: retries,
	}
}

// Run drives the operation through the queue until it settles. Transient
// failures below the ceiling increment the retry count and resubmit the same
// record; crossing the ceiling settles it with a [RetriesExhaustedError]
// carrying the last transient failure as cause.
func (e *RateLimitExecutor[T]) Run(ctx context.Context, fn Func[T], opts ...RunOption) (T, error) {
	op := retryableOperation[T]{
		operation: newOperation(fn, opts),
	}

	span, ctx := startRunSpan(ctx, executorRateLimit, &op.operation)

	for !op.done {
		var outcome attemptOutcome

		err := e.queue.Add(ctx, func(ctx context.Context) error {
			outcome = handleAttempt(ctx, &op.operation)
			return nil
		})
		if err != nil {
			// Admission failed, the attempt never ran.
			op.fail(err)
			break
		}

		recordAttempt(executorRateLimit, outcome, op.err)

		if outcome.kind != outcomeRetry {
			continue
		}

		if op.retries >= e.retries {
			op.fail(RetriesExhaustedError{
				Name:    op.name,
				Retries: e.retries,
				Err:     outcome.err,
			})
			break
		}

		op.retries++

		logutil.Get(ctx).Debug("retrying operation",
			"operation", op.name,
			"retries", op.retries,
			"status", outcome.code,
		)
	}

	result, err := op.outcome()
	recordOutcome(executorRateLimit, err)
	finishRunSpan(span, err)

	return result, err
}
