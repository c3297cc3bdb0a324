package errutil

import (
	"net/http"

	"github.com/ratebound/ratebound-go-sdk/pkg/typeutil"
)

// DefaultRetryStatus returns the fixed policy set used when a caller does
// not configure retryable codes: rate limiting, write conflicts and
// temporary unavailability.
func DefaultRetryStatus() *typeutil.Set[int] {
	return typeutil.NewSet(
		http.StatusTooManyRequests,
		http.StatusConflict,
		http.StatusServiceUnavailable,
	)
}

// Classification is the verdict for a single failure.
type Classification struct {
	// Retryable reports whether the resolved code is in the active retry
	// set. Failures without a resolvable code are never retryable.
	Retryable bool

	// Code is the resolved status code. It is only meaningful when Found is
	// true.
	Code int

	// Found reports whether any probe yielded a code.
	Found bool

	// Err is the failure with the resolved code attached. It stays the
	// original error when no code was found.
	Err error
}

// Classify resolves the status code of err (see StatusOf) and decides
// whether the failure is transient under the given retry set. A nil set
// selects DefaultRetryStatus; an empty set marks every failure terminal.
//
// The resolved code is attached to the returned failure exactly once,
// regardless of the verdict, so downstream consumers can read it without
// probing again.
func Classify(err error, retryStatus *typeutil.Set[int]) Classification {
	if err == nil {
		return Classification{}
	}

	if retryStatus == nil {
		retryStatus = DefaultRetryStatus()
	}

	code, found := StatusOf(err)
	if !found {
		return Classification{Err: err}
	}

	return Classification{
		Retryable: retryStatus.Contains(code),
		Code:      code,
		Found:     true,
		Err:       WithStatus(err, code),
	}
}
