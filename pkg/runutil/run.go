package runutil

import (
	"context"
	"errors"
	"sync"
)

// Worker is a service that is supposed to run continuously until the context
// gets cancelled.
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc is a helper to cast a function directly to a Worker.
type WorkerFunc func(ctx context.Context) error

func (fn WorkerFunc) Run(ctx context.Context) error {
	return fn(ctx)
}

// Job is a function that runs once and exits afterwards.
type Job interface {
	RunOnce(ctx context.Context) error
}

// JobFunc is a helper to cast a function directly to a Job.
type JobFunc func(ctx context.Context) error

func (fn JobFunc) RunOnce(ctx context.Context) error {
	return fn(ctx)
}

// ErrWorkerExitedPrematurely indicates that a worker in [RunAllWorkers]
// exited while the context was not cancelled yet.
var ErrWorkerExitedPrematurely = errors.New("worker exited prematurely")

// RunAllWorkers starts all workers in goroutines and blocks until all of
// them exited.
//
// Behaviour:
//   - The execution of all workers gets cancelled when the first worker
//     exits, regardless of its error.
//   - The returned error is nil, if the context got cancelled and all
//     workers returned nil.
//   - The returned error contains [ErrWorkerExitedPrematurely], if a worker
//     returned nil while the context was still alive.
//   - The returned error joins all errors returned by workers.
func RunAllWorkers(ctx context.Context, workers ...Worker) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, len(workers))

	var wg sync.WaitGroup
	for _, worker := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer cancel()

			err := worker.Run(ctx)
			switch {
			case err != nil:
				errc <- err
			case ctx.Err() == nil:
				// A nil return while the context is still alive means the
				// worker stopped on its own.
				errc <- ErrWorkerExitedPrematurely
			}
		}()
	}

	wg.Wait()
	close(errc)

	var errs []error
	for err := range errc {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// RunAllJobs runs all jobs in parallel and joins their errors.
func RunAllJobs(ctx context.Context, jobs ...Job) error {
	errc := make(chan error, len(jobs))

	var wg sync.WaitGroup
	for _, job := range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := job.RunOnce(ctx)
			if err != nil {
				errc <- err
			}
		}()
	}

	wg.Wait()
	close(errc)

	var errs []error
	for err := range errc {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
