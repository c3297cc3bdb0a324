package errutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Statuser is implemented by failures that expose their HTTP status code
// directly. This is the shape errutil itself produces via WithStatus.
type Statuser interface {
	StatusCode() int
}

// Coder is implemented by failures that expose a bare numeric code, like the
// error types of several API client libraries.
type Coder interface {
	Code() int
}

// Responder is implemented by failures that still carry the raw HTTP
// response they originated from.
type Responder interface {
	Response() *http.Response
}

// probe extracts a numeric code from one failure shape. It reports false
// when the shape does not apply to the given error.
type probe func(err error) (int, bool)

// probes lists the supported failure shapes in priority order. StatusOf
// takes the first code found. New wrapper conventions are added here.
var probes = []probe{
	probeStatuser,
	probeCoder,
	probeResponder,
	probeWrappedCoder,
	probeWrappedResponder,
}

func probeStatuser(err error) (int, bool) {
	typed, ok := err.(Statuser)
	if !ok {
		return 0, false
	}

	return validCode(typed.StatusCode())
}

func probeCoder(err error) (int, bool) {
	typed, ok := err.(Coder)
	if !ok {
		return 0, false
	}

	return validCode(typed.Code())
}

func probeResponder(err error) (int, bool) {
	typed, ok := err.(Responder)
	if !ok {
		return 0, false
	}

	resp := typed.Response()
	if resp == nil {
		return 0, false
	}

	return validCode(resp.StatusCode)
}

func probeWrappedCoder(err error) (int, bool) {
	var typed Coder
	if !errors.As(err, &typed) {
		return 0, false
	}

	return validCode(typed.Code())
}

func probeWrappedResponder(err error) (int, bool) {
	var typed Responder
	if !errors.As(err, &typed) {
		return 0, false
	}

	resp := typed.Response()
	if resp == nil {
		return 0, false
	}

	return validCode(resp.StatusCode)
}

func validCode(code int) (int, bool) {
	if code <= 0 {
		return 0, false
	}

	return code, true
}

// StatusOf resolves the status code of the given failure by probing the
// known failure shapes in priority order: a direct status code, a direct
// bare code, a direct HTTP response, then the same code and response lookups
// through the unwrap chain. It reports false if no shape yields a code.
func StatusOf(err error) (int, bool) {
	if err == nil {
		return 0, false
	}

	for _, p := range probes {
		code, found := p(err)
		if found {
			return code, true
		}
	}

	return 0, false
}

// StatusError attaches a resolved status code to a failure without hiding
// the original error from errors.Is and errors.As.
type StatusError struct {
	Status int
	Err    error
}

func (err *StatusError) Error() string {
	return fmt.Sprintf("(%d) %v", err.Status, err.Err)
}

func (err *StatusError) StatusCode() int {
	return err.Status
}

func (err *StatusError) Unwrap() error {
	return err.Err
}

// WithStatus attaches the given status code to err. A failure that already
// exposes the same code directly is returned unchanged, so repeated
// classification never stacks wrappers.
func WithStatus(err error, code int) error {
	if err == nil {
		return nil
	}

	if typed, ok := err.(Statuser); ok && typed.StatusCode() == code {
		return err
	}

	return &StatusError{
		Status: code,
		Err:    err,
	}
}
