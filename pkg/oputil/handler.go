package oputil

import (
	"context"

	"github.com/ratebound/ratebound-go-sdk/pkg/errutil"
)

// outcomeKind tells the executor machinery how to proceed with an operation
// after one attempt.
type outcomeKind int

const (
	// outcomeSettled means the record holds its terminal result or error.
	outcomeSettled outcomeKind = iota

	// outcomeRetry means the attempt failed transiently and the record is
	// still pending.
	outcomeRetry
)

// attemptOutcome is the explicit verdict of one attempt. The retry variant
// carries the classified failure and its status code for the surrounding
// retry machinery; the settled variant leaves the outcome on the record.
type attemptOutcome struct {
	kind outcomeKind
	code int
	err  error
}

// handleAttempt runs a single attempt of the operation. Success and terminal
// failures settle the record; a transient failure leaves it pending and asks
// the caller to retry. Terminal failures carry their resolved status code
// when one was found.
func handleAttempt[T any](ctx context.Context, op *operation[T]) attemptOutcome {
	value, err := op.fn(ctx)
	if err == nil {
		op.succeed(value)
		return attemptOutcome{kind: outcomeSettled}
	}

	verdict := errutil.Classify(err, op.retryStatus)
	if verdict.Retryable {
		return attemptOutcome{
			kind: outcomeRetry,
			code: verdict.Code,
			err:  verdict.Err,
		}
	}

	op.fail(verdict.Err)
	return attemptOutcome{kind: outcomeSettled}
}
