package queueutil

import (
	"context"
	"fmt"
	"time"

	"github.com/DataDog/dd-trace-go/v2/ddtrace/ext"
	"github.com/DataDog/dd-trace-go/v2/ddtrace/tracer"
	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"github.com/ratebound/ratebound-go-sdk/pkg/logutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/runutil"
)

// DefaultMaxAttempts applies when ThrottledQueueOptions leave MaxAttempts
// unset.
const DefaultMaxAttempts = 3

// DefaultQueueBackoff applies when ThrottledQueueOptions leave Backoff unset.
var DefaultQueueBackoff = runutil.ExponentialBackoff{
	Initial:          time.Second,
	Max:              30 * time.Second,
	JitterProportion: 0.5,
}

// Gate delays admission of queue items, eg while a shared upstream is known
// to be overloaded. See [Cooldown] for a Redis-backed implementation.
type Gate interface {
	Take(ctx context.Context) error
}

// AttemptsExhaustedError is returned by [ThrottledQueue.Enqueue] when the
// handler failed on every attempt.
type AttemptsExhaustedError struct {
	Attempts int
	Err      error
}

func (e AttemptsExhaustedError) Error() string {
	return fmt.Sprintf("giving up after %d attempts: %v", e.Attempts, e.Err)
}

func (e AttemptsExhaustedError) Unwrap() error {
	return e.Err
}

// ThrottledQueueOptions configures a ThrottledQueue. Handler is required,
// everything else has defaults.
type ThrottledQueueOptions[T any] struct {
	// Name registers the queue counters for [Snapshots]. Optional.
	Name string

	// Concurrency is the maximum number of handler runs at the same time.
	Concurrency int

	// Backoff paces the re-attempts of a failing item.
	Backoff runutil.Backoff

	// MaxAttempts is the total number of handler runs per item before
	// Enqueue gives up.
	MaxAttempts int

	// Handler processes a single item. Returning nil settles the item,
	// returning an error makes the queue re-attempt it.
	Handler func(ctx context.Context, item T) error

	// Gate optionally delays admission of every attempt. Optional.
	Gate Gate
}

// ThrottledQueue runs a handler per enqueued item with a concurrency bound
// and re-attempts failing items itself, sleeping the configured backoff
// between the attempts.
type ThrottledQueue[T any] struct {
	sem         *semaphore.Weighted
	backoff     runutil.Backoff
	maxAttempts int
	handler     func(ctx context.Context, item T) error
	gate        Gate
	stats       Stats
}

func NewThrottledQueue[T any](opts ThrottledQueueOptions[T]) *ThrottledQueue[T] {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	backoff := opts.Backoff
	if backoff == nil {
		backoff = DefaultQueueBackoff
	}

	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	q := &ThrottledQueue[T]{
		sem:         semaphore.NewWeighted(int64(concurrency)),
		backoff:     backoff,
		maxAttempts: maxAttempts,
		handler:     opts.Handler,
		gate:        opts.Gate,
	}

	registerStats(opts.Name, &q.stats)

	return q
}

// Enqueue submits a single item and blocks until its handler completed
// without an error or all attempts are used up. In the latter case it
// returns an [AttemptsExhaustedError] wrapping the last handler error.
//
// A cancelled context stops the attempt loop early and returns the last
// handler error as-is.
func (q *ThrottledQueue[T]) Enqueue(ctx context.Context, item T) error {
	q.stats.submit()

	for attempt := 1; ; attempt++ {
		err := q.runOnce(ctx, item)
		if err == nil {
			runutil.HealthCheckpoint(ctx, nil)
			return nil
		}

		if ctx.Err() != nil {
			return err
		}

		runutil.HealthCheckpoint(ctx, err)

		if attempt >= q.maxAttempts {
			return AttemptsExhaustedError{
				Attempts: attempt,
				Err:      err,
			}
		}

		runutil.GetHealthMonitor(ctx).Backoff()
		runutil.Wait(ctx, q.backoff.Duration(attempt))
	}
}

// Stats returns the live counters of the queue.
func (q *ThrottledQueue[T]) Stats() StatsSnapshot {
	return q.stats.Snapshot()
}

func (q *ThrottledQueue[T]) runOnce(ctx context.Context, item T) error {
	err := q.sem.Acquire(ctx, 1)
	if err != nil {
		return errors.Wrap(err, "acquire queue slot")
	}
	defer q.sem.Release(1)

	if q.gate != nil {
		err = q.gate.Take(ctx)
		if err != nil {
			return errors.Wrap(err, "pass admission gate")
		}
	}

	span, ctx := tracer.StartSpanFromContext(
		ctx, "queueutil.handle",
		tracer.Tag(ext.SpanKind, ext.SpanKindInternal),
		tracer.Tag(ext.ResourceName, logutil.GetSubsystem(ctx)),
	)

	q.stats.begin()
	err = q.handler(ctx, item)
	q.stats.finish(err)

	if err != nil {
		span.Finish(tracer.WithError(err))
		return err
	}

	span.Finish()
	return nil
}
