package runutil

import (
	"context"
)

// DeclarativeWorker is an alternative to composing worker behaviour with
// nested function calls. It chains the wrappers that match its defined
// fields in a fixed order.
//
// It satisfies the Worker interface for easier use.
type DeclarativeWorker struct {
	Name   string
	Worker Worker
	Retry  Backoff
}

func (w DeclarativeWorker) Run(ctx context.Context) error {
	worker := w.Worker

	if w.Name != "" {
		worker = NamedWorker(worker, w.Name)
	}

	if w.Retry != nil {
		worker = Retry(worker, w.Retry)
	}

	return worker.Run(ctx)
}
