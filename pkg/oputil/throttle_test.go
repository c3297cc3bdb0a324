package oputil

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratebound/ratebound-go-sdk/pkg/errutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/queueutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/redisutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/runutil"
)

func testThrottleExecutor(maxAttempts int) *ThrottleExecutor[string] {
	return NewThrottleExecutor[string](ThrottleExecutorOptions{
		Backoff:     runutil.StaticBackoff{Sleep: time.Millisecond},
		MaxAttempts: maxAttempts,
	})
}

func TestThrottleExecutorSuccess(t *testing.T) {
	ctx := context.Background()
	e := testThrottleExecutor(3)

	var calls int
	result, err := e.Run(ctx, func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, calls)
}

func TestThrottleExecutorTerminalFailure(t *testing.T) {
	ctx := context.Background()
	e := testThrottleExecutor(3)

	omg := errors.New("not found")

	var calls int
	_, err := e.Run(ctx, func(ctx context.Context) (string, error) {
		calls++
		return "", errutil.WithStatus(omg, http.StatusNotFound)
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls, "terminal failures must not be re-attempted")
	assert.ErrorIs(t, err, omg)

	code, found := errutil.StatusOf(err)
	require.True(t, found)
	assert.Equal(t, http.StatusNotFound, code)

	var exhausted queueutil.AttemptsExhaustedError
	assert.False(t, errors.As(err, &exhausted))
}

func TestThrottleExecutorQueueRetriesTransient(t *testing.T) {
	ctx := context.Background()
	e := testThrottleExecutor(5)

	var calls int
	result, err := e.Run(ctx, func(ctx context.Context) (string, error) {
		calls++
		if calls <= 2 {
			return "", errutil.WithStatus(errors.New("throttled"), http.StatusTooManyRequests)
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestThrottleExecutorAttemptsExhausted(t *testing.T) {
	ctx := context.Background()
	e := testThrottleExecutor(2)

	omg := errors.New("throttled")

	var calls int
	_, err := e.Run(ctx, func(ctx context.Context) (string, error) {
		calls++
		return "", errutil.WithStatus(omg, http.StatusTooManyRequests)
	})

	require.Error(t, err)
	assert.Equal(t, 2, calls)

	var exhausted queueutil.AttemptsExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 2, exhausted.Attempts)
	assert.ErrorIs(t, err, omg)
}

func TestThrottleExecutorIndependentRecords(t *testing.T) {
	ctx := context.Background()
	e := testThrottleExecutor(3)

	first, err := e.Run(ctx, func(ctx context.Context) (string, error) {
		return "first", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "first", first)

	second, err := e.Run(ctx, func(ctx context.Context) (string, error) {
		return "", errutil.WithStatus(errors.New("not found"), http.StatusNotFound)
	})
	require.Error(t, err)
	assert.Empty(t, second)

	third, err := e.Run(ctx, func(ctx context.Context) (string, error) {
		return "third", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "third", third, "a failed record must not leak into later runs")
}

func TestThrottleExecutorTripsCooldown(t *testing.T) {
	ctx := context.Background()

	fake := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: fake.Addr(),
	})
	cooldown := queueutil.NewCooldown(client, redisutil.Prefix("testapp"))

	e := NewThrottleExecutor[string](ThrottleExecutorOptions{
		Backoff:          runutil.StaticBackoff{Sleep: time.Millisecond},
		MaxAttempts:      1,
		Cooldown:         cooldown,
		CooldownDuration: time.Minute,
	})

	_, err := e.Run(ctx, func(ctx context.Context) (string, error) {
		return "", errutil.WithStatus(errors.New("throttled"), http.StatusTooManyRequests)
	}, WithName("drain-batch"))

	require.Error(t, err)

	state, err := cooldown.State(ctx)
	require.NoError(t, err)
	require.NotNil(t, state, "upstream rate limiting must trip the shared cooldown")
	assert.Contains(t, state.Reason, "drain-batch")
}
