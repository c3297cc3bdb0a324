package oputil

import "fmt"

// RetriesExhaustedError is raised by the rate-limited executor when an
// operation keeps failing transiently and the configured retry ceiling is
// crossed. It is terminal; the last transient failure is the cause.
type RetriesExhaustedError struct {
	Name    string
	Retries int
	Err     error
}

func (e RetriesExhaustedError) Error() string {
	return fmt.Sprintf("operation %q exhausted its %d retries: %v", e.Name, e.Retries, e.Err)
}

func (e RetriesExhaustedError) Unwrap() error {
	return e.Err
}
