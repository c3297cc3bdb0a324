package runutil

import (
	"context"
	"time"
)

// Wait blocks for the given duration like [time.Sleep], but returns early
// when the context gets cancelled.
func Wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
