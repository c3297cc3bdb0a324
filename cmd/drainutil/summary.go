package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ratebound/ratebound-go-sdk/pkg/dsutil"
	"github.com/ratebound/ratebound-go-sdk/pkg/oputil"
	"github.com/ratebound/ratebound-go-sdk/pkg/queueutil"
)

const failedOperationsShown = 5

// Summary aggregates the per-operation outcomes of a drain.
type Summary struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Exhausted int `json:"exhausted"`

	FailedOperations []FailedOperation `json:"failed_operations,omitempty"`
}

type FailedOperation struct {
	Name string `json:"name"`
	Err  error  `json:"-"`
}

// NewSummary builds the summary from the plan operations and their results,
// keeping the plan order.
func NewSummary(operations []Operation, results []error) *Summary {
	s := new(Summary)

	for i := range operations {
		s.record(operations[i].Name, results[i])
	}

	return s
}

func (s *Summary) record(name string, err error) {
	if err == nil {
		s.Succeeded++
		return
	}

	var (
		retriesErr  oputil.RetriesExhaustedError
		attemptsErr queueutil.AttemptsExhaustedError
	)

	if errors.As(err, &retriesErr) || errors.As(err, &attemptsErr) {
		s.Exhausted++
	} else {
		s.Failed++
	}

	s.FailedOperations = append(s.FailedOperations, FailedOperation{
		Name: name,
		Err:  err,
	})
}

// Failures returns the number of operations that did not succeed.
func (s *Summary) Failures() int {
	return s.Failed + s.Exhausted
}

// Render formats the summary for the terminal.
func (s *Summary) Render() string {
	var b strings.Builder

	total := s.Succeeded + s.Failures()
	fmt.Fprintf(&b, "drained %d operations: %d succeeded, %d failed, %d exhausted their retries\n",
		total, s.Succeeded, s.Failed, s.Exhausted)

	shown, skipped := dsutil.LimitSlice(s.FailedOperations, failedOperationsShown)
	for _, op := range shown {
		fmt.Fprintf(&b, "  %s: %v\n", op.Name, op.Err)
	}

	if skipped > 0 {
		fmt.Fprintf(&b, "  ... and %d more\n", skipped)
	}

	return b.String()
}
