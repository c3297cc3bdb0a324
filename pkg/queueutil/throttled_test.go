package queueutil

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratebound/ratebound-go-sdk/pkg/runutil"
)

type countingGate struct {
	calls atomic.Int64
}

func (g *countingGate) Take(ctx context.Context) error {
	g.calls.Add(1)
	return nil
}

func TestThrottledQueueSucceedsFirstAttempt(t *testing.T) {
	ctx := context.Background()

	var calls int
	q := NewThrottledQueue(ThrottledQueueOptions[string]{
		Backoff: runutil.StaticBackoff{Sleep: time.Millisecond},
		Handler: func(ctx context.Context, item string) error {
			calls++
			assert.Equal(t, "payload", item)
			return nil
		},
	})

	err := q.Enqueue(ctx, "payload")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestThrottledQueueRetriesUntilSuccess(t *testing.T) {
	ctx := context.Background()

	omg := errors.New("still failing")

	var calls int
	q := NewThrottledQueue(ThrottledQueueOptions[string]{
		Backoff:     runutil.StaticBackoff{Sleep: time.Millisecond},
		MaxAttempts: 5,
		Handler: func(ctx context.Context, item string) error {
			calls++
			if calls < 3 {
				return omg
			}
			return nil
		},
	})

	err := q.Enqueue(ctx, "payload")
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestThrottledQueueExhaustsAttempts(t *testing.T) {
	ctx := context.Background()

	omg := errors.New("always failing")

	var calls int
	q := NewThrottledQueue(ThrottledQueueOptions[string]{
		Backoff:     runutil.StaticBackoff{Sleep: time.Millisecond},
		MaxAttempts: 3,
		Handler: func(ctx context.Context, item string) error {
			calls++
			return omg
		},
	})

	err := q.Enqueue(ctx, "payload")
	require.Error(t, err)
	assert.Equal(t, 3, calls)

	var exhausted AttemptsExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 3, exhausted.Attempts)
	assert.ErrorIs(t, err, omg)
}

func TestThrottledQueueGatePerAttempt(t *testing.T) {
	ctx := context.Background()

	omg := errors.New("still failing")
	gate := new(countingGate)

	var calls int
	q := NewThrottledQueue(ThrottledQueueOptions[string]{
		Backoff:     runutil.StaticBackoff{Sleep: time.Millisecond},
		MaxAttempts: 5,
		Gate:        gate,
		Handler: func(ctx context.Context, item string) error {
			calls++
			if calls < 2 {
				return omg
			}
			return nil
		},
	})

	err := q.Enqueue(ctx, "payload")
	require.NoError(t, err)
	assert.Equal(t, int64(2), gate.calls.Load())
}

func TestThrottledQueueCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q := NewThrottledQueue(ThrottledQueueOptions[string]{
		Backoff: runutil.StaticBackoff{Sleep: time.Millisecond},
		Handler: func(ctx context.Context, item string) error {
			t.Fatal("handler must not run on a cancelled context")
			return nil
		},
	})

	err := q.Enqueue(ctx, "payload")
	require.Error(t, err)

	var exhausted AttemptsExhaustedError
	assert.False(t, errors.As(err, &exhausted),
		"cancellation must not count as exhausted attempts")
}

func TestThrottledQueueStats(t *testing.T) {
	ctx := context.Background()

	omg := errors.New("still failing")

	var calls int
	q := NewThrottledQueue(ThrottledQueueOptions[string]{
		Backoff:     runutil.StaticBackoff{Sleep: time.Millisecond},
		MaxAttempts: 5,
		Handler: func(ctx context.Context, item string) error {
			calls++
			if calls < 3 {
				return omg
			}
			return nil
		},
	})

	require.NoError(t, q.Enqueue(ctx, "payload"))

	stats := q.Stats()
	assert.Equal(t, int64(1), stats.Submitted)
	assert.Equal(t, int64(3), stats.Done)
	assert.Equal(t, int64(2), stats.Failed)
	assert.Equal(t, int64(0), stats.Active)
}

func TestSnapshotsListsNamedQueues(t *testing.T) {
	ctx := context.Background()

	q := NewThrottledQueue(ThrottledQueueOptions[string]{
		Name:    "snapshot-test",
		Backoff: runutil.StaticBackoff{Sleep: time.Millisecond},
		Handler: func(ctx context.Context, item string) error {
			return nil
		},
	})

	require.NoError(t, q.Enqueue(ctx, "payload"))

	snapshots := Snapshots()
	require.Contains(t, snapshots, "snapshot-test")
	assert.Equal(t, int64(1), snapshots["snapshot-test"].Submitted)
}
