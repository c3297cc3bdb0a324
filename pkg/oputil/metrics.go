package oputil

import (
	"context"
	"errors"

	"github.com/DataDog/dd-trace-go/v2/ddtrace/ext"
	"github.com/DataDog/dd-trace-go/v2/ddtrace/tracer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ratebound/ratebound-go-sdk/pkg/queueutil"
)

const (
	promNamespace = "ratebound_go_sdk"
	promSubsystem = "oputil"
)

const (
	executorThrottle  = "throttle"
	executorRateLimit = "ratelimit"
)

var (
	instOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: promNamespace,
		Subsystem: promSubsystem,
		Name:      "operations_total",
	}, []string{"executor", "outcome"})

	instAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: promNamespace,
		Subsystem: promSubsystem,
		Name:      "attempts_total",
	}, []string{"executor", "verdict"})
)

func startRunSpan[T any](ctx context.Context, executor string, op *operation[T]) (*tracer.Span, context.Context) {
	return tracer.StartSpanFromContext(
		ctx, "oputil.run",
		tracer.Tag(ext.SpanKind, ext.SpanKindInternal),
		tracer.Tag(ext.ResourceName, op.name),
		tracer.Tag("operation.id", op.id),
		tracer.Tag("executor", executor),
	)
}

func finishRunSpan(span *tracer.Span, err error) {
	if err != nil {
		span.Finish(tracer.WithError(err))
		return
	}

	span.Finish()
}

// recordAttempt counts one handler attempt. opErr distinguishes the two
// settled variants, since the outcome itself only knows settled vs retry.
func recordAttempt(executor string, outcome attemptOutcome, opErr error) {
	verdict := "success"
	if outcome.kind == outcomeRetry {
		verdict = "retry"
	} else if opErr != nil {
		verdict = "terminal"
	}

	instAttemptsTotal.WithLabelValues(executor, verdict).Inc()
}

// recordOutcome counts the terminal outcome of one operation.
func recordOutcome(executor string, err error) {
	var (
		retriesExhausted  RetriesExhaustedError
		attemptsExhausted queueutil.AttemptsExhaustedError
	)

	outcome := "success"
	switch {
	case err == nil:
	case errors.As(err, &retriesExhausted), errors.As(err, &attemptsExhausted):
		outcome = "exhausted"
	default:
		outcome = "failure"
	}

	instOperationsTotal.WithLabelValues(executor, outcome).Inc()
}
