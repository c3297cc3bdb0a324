package runutil

import (
	"context"
	"time"

	"github.com/DataDog/dd-trace-go/v2/ddtrace/ext"
	"github.com/DataDog/dd-trace-go/v2/ddtrace/tracer"

	"github.com/ratebound/ratebound-go-sdk/pkg/logutil"
)

type repeatWorker struct {
	interval         time.Duration
	job              Job
	startImmediately bool
}

// Repeat reruns a job indefinitely until the context gets cancelled. The job
// runs at most once in the given interval. This means the interval is not
// the sleep between executions, but the time between the starts of runs
// (based on [time.Ticker]).
func Repeat(interval time.Duration, job Job, opts ...RepeatOption) Worker {
	w := &repeatWorker{
		interval: interval,
		job:      job,
	}

	for _, o := range opts {
		o(w)
	}

	return w
}

type RepeatOption func(*repeatWorker)

// WithStartImmediately makes [Repeat] run the job once right away instead of
// waiting for the first tick.
func WithStartImmediately() RepeatOption {
	return func(w *repeatWorker) {
		w.startImmediately = true
	}
}

func (w repeatWorker) Run(ctx context.Context) error {
	if w.startImmediately {
		err := w.runOnce(ctx)
		if err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := w.runOnce(ctx)
			if err != nil {
				return err
			}
		}
	}
}

func (w repeatWorker) runOnce(ctx context.Context) error {
	span, ctx := tracer.StartSpanFromContext(
		ctx, "runutil.job",
		tracer.Tag(ext.SpanKind, ext.SpanKindInternal),
		tracer.Tag(ext.ResourceName, logutil.GetSubsystem(ctx)),
	)

	err := w.job.RunOnce(ctx)
	if err != nil {
		span.Finish(tracer.WithError(err))
		return err
	}

	span.Finish()
	return nil
}
