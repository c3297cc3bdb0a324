// Package queueutil provides the queue primitives that the executors in
// oputil submit their work to: a bounded-concurrency queue with optional
// interval pacing and a throttled queue that retries its handler with a
// backoff. Both bound admission with a weighted semaphore and report their
// activity through shared counters.
package queueutil

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"github.com/ratebound/ratebound-go-sdk/pkg/runutil"
)

// DefaultConcurrency applies when queue options leave Concurrency unset.
const DefaultConcurrency = 1

// BoundedQueueOptions configures a BoundedQueue. The zero value of Interval
// and IntervalCap disables pacing, so the queue only bounds concurrency.
type BoundedQueueOptions struct {
	// Name registers the queue counters for [Snapshots]. Optional.
	Name string

	// Concurrency is the maximum number of tasks running at the same time.
	Concurrency int

	// Interval and IntervalCap limit how many tasks may start within a
	// rolling time window, independently of how long they run.
	Interval    time.Duration
	IntervalCap int
}

// BoundedQueue runs tasks with a concurrency bound and an optional pacing
// window. It does not retry: a failing task simply fails its Add call.
type BoundedQueue struct {
	sem         *semaphore.Weighted
	interval    time.Duration
	intervalCap int
	stats       Stats

	mu          sync.Mutex
	windowStart time.Time
	windowCount int
}

func NewBoundedQueue(opts BoundedQueueOptions) *BoundedQueue {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	q := &BoundedQueue{
		sem:         semaphore.NewWeighted(int64(concurrency)),
		interval:    opts.Interval,
		intervalCap: opts.IntervalCap,
	}

	registerStats(opts.Name, &q.stats)

	return q
}

// Add blocks until the task is admitted, runs it and returns its error
// unchanged. Admission requires a free concurrency slot and, if pacing is
// configured, a start token for the current window.
func (q *BoundedQueue) Add(ctx context.Context, task func(context.Context) error) error {
	q.stats.submit()

	err := q.sem.Acquire(ctx, 1)
	if err != nil {
		return errors.Wrap(err, "acquire queue slot")
	}
	defer q.sem.Release(1)

	err = q.waitTurn(ctx)
	if err != nil {
		return err
	}

	q.stats.begin()
	err = task(ctx)
	q.stats.finish(err)

	return err
}

// Stats returns the live counters of the queue.
func (q *BoundedQueue) Stats() StatsSnapshot {
	return q.stats.Snapshot()
}

func (q *BoundedQueue) waitTurn(ctx context.Context) error {
	if q.interval <= 0 || q.intervalCap <= 0 {
		return nil
	}

	for {
		q.mu.Lock()
		now := time.Now()

		if q.windowStart.IsZero() || now.Sub(q.windowStart) >= q.interval {
			q.windowStart = now
			q.windowCount = 0
		}

		if q.windowCount < q.intervalCap {
			q.windowCount++
			q.mu.Unlock()
			return nil
		}

		wait := q.interval - now.Sub(q.windowStart)
		q.mu.Unlock()

		runutil.Wait(ctx, wait)

		if ctx.Err() != nil {
			return errors.Wrap(ctx.Err(), "wait for pacing window")
		}
	}
}
