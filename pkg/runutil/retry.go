package runutil

import (
	"context"

	"github.com/ratebound/ratebound-go-sdk/pkg/logutil"
)

// Retry restarts a Worker whenever it exits. This happens regardless of
// whether the worker returned an error or nil. The restarting only stops
// when the context gets cancelled.
func Retry(worker Worker, bo Backoff) Worker {
	return WorkerFunc(func(ctx context.Context) error {
		var attempt int

		for ctx.Err() == nil {
			Wait(ctx, bo.Duration(attempt))

			err := worker.Run(ctx)
			if err != nil {
				attempt++
				logutil.Get(ctx).Warn("worker failed, restarting",
					"attempt", attempt,
					"error", err,
				)
			} else {
				attempt = 0
			}
		}

		return nil
	})
}
