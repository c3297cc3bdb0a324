package oputil

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ratebound/ratebound-go-sdk/pkg/logutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/queueutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/runutil"
)

// DefaultCooldownDuration applies when ThrottleExecutorOptions configure a
// Cooldown but no duration.
const DefaultCooldownDuration = 30 * time.Second

// ThrottleExecutorOptions configures a ThrottleExecutor and the throttled
// queue behind it.
type ThrottleExecutorOptions struct {
	// Name registers the queue counters for [queueutil.Snapshots]. Optional.
	Name string

	// Concurrency, Backoff and MaxAttempts are the queue's own retry
	// policy. See [queueutil.ThrottledQueueOptions] for the defaults.
	Concurrency int
	Backoff     runutil.Backoff
	MaxAttempts int

	// Cooldown optionally shares upstream pressure across replicas: every
	// attempt passes the gate, and upstream rate limiting trips it for
	// CooldownDuration. Optional.
	Cooldown         *queueutil.Cooldown
	CooldownDuration time.Duration
}

// ThrottleExecutor delegates retries and backoff of an operation entirely to
// its throttled queue. The executor only supplies the retry/terminal signal
// per attempt; attempt ceilings and pacing are queue policy.
type ThrottleExecutor[T any] struct {
	queue       *queueutil.ThrottledQueue[*operation[T]]
	cooldown    *queueutil.Cooldown
	cooldownFor time.Duration
}

func NewThrottleExecutor[T any](opts ThrottleExecutorOptions) *ThrottleExecutor[T] {
	e := &ThrottleExecutor[T]{
		cooldown:    opts.Cooldown,
		cooldownFor: opts.CooldownDuration,
	}

	if e.cooldownFor <= 0 {
		e.cooldownFor = DefaultCooldownDuration
	}

	var gate queueutil.Gate
	if opts.Cooldown != nil {
		gate = opts.Cooldown
	}

	e.queue = queueutil.NewThrottledQueue(queueutil.ThrottledQueueOptions[*operation[T]]{
		Name:        opts.Name,
		Concurrency: opts.Concurrency,
		Backoff:     opts.Backoff,
		MaxAttempts: opts.MaxAttempts,
		Gate:        gate,
		Handler:     e.handle,
	})

	return e
}

// Run submits the operation to the queue and blocks until it settled or the
// queue used up its attempts. The returned error is either the terminal
// failure with its status code attached or a [queueutil.AttemptsExhaustedError]
// wrapping the last transient failure.
func (e *ThrottleExecutor[T]) Run(ctx context.Context, fn Func[T], opts ...RunOption) (T, error) {
	op := newOperation(fn, opts)

	span, ctx := startRunSpan(ctx, executorThrottle, &op)

	err := e.queue.Enqueue(ctx, &op)
	if err != nil && !op.done {
		// The queue gave up on a still-pending record, either because its
		// attempts are exhausted or the context got cancelled.
		op.fail(err)
	}

	result, err := op.outcome()
	recordOutcome(executorThrottle, err)
	finishRunSpan(span, err)

	return result, err
}

// handle adapts one attempt to the queue's handler contract: a nil return
// settles the item, an error makes the queue re-attempt it with its own
// backoff.
func (e *ThrottleExecutor[T]) handle(ctx context.Context, op *operation[T]) error {
	outcome := handleAttempt(ctx, op)
	recordAttempt(executorThrottle, outcome, op.err)

	if outcome.kind != outcomeRetry {
		return nil
	}

	logutil.Get(ctx).Debug("operation failed transiently",
		"operation", op.name,
		"status", outcome.code,
	)

	if e.cooldown != nil && outcome.code == http.StatusTooManyRequests {
		err := e.cooldown.Trip(ctx, fmt.Sprintf("%s got throttled upstream", op.name), e.cooldownFor)
		if err != nil {
			logutil.Get(ctx).Warn("tripping shared cooldown failed", "error", err)
		}
	}

	return outcome.err
}
