package oputil

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ratebound/ratebound-go-sdk/pkg/typeutil"
)

// operation tracks one unit of work from submission to resolution. Exactly
// one of result and err is set once the record settled; neither is set while
// it is pending. Attempts of a single record run strictly sequential, so the
// record needs no locking.
type operation[T any] struct {
	id          string
	name        string
	fn          Func[T]
	retryStatus *typeutil.Set[int]

	result T
	err    error
	done   bool
}

// retryableOperation additionally carries the retry count that the
// rate-limited executor compares against its ceiling. The other executors
// hold no retry state at all.
type retryableOperation[T any] struct {
	operation[T]
	retries int
}

// newOperation wraps one unit of work into a fresh record. Records are never
// shared between Run calls.
func newOperation[T any](fn Func[T], opts []RunOption) operation[T] {
	options := newRunOptions(opts)

	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]

	name := options.Name
	if name == "" {
		name = "operation-" + id
	}

	return operation[T]{
		id:          id,
		name:        name,
		fn:          fn,
		retryStatus: options.RetryStatus,
	}
}

// succeed stores the result. It is a no-op once the record settled, so a
// result and an error can never both be set.
func (op *operation[T]) succeed(value T) {
	if op.done {
		return
	}

	op.result = value
	op.done = true
}

// fail stores the terminal failure. It is a no-op once the record settled.
func (op *operation[T]) fail(err error) {
	if op.done {
		return
	}

	op.err = err
	op.done = true
}

// outcome returns the terminal result of the record.
func (op *operation[T]) outcome() (T, error) {
	if op.err != nil {
		var zero T
		return zero, op.err
	}

	return op.result, nil
}
