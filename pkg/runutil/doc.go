// Package runutil provides utilities for managing long-running services
// (Workers), one-off tasks (Jobs) and retry mechanisms with backoff
// strategies.
//
// # Workers and Jobs
//
// A Worker is a service that is supposed to run continuously until the
// context gets cancelled, while a Job runs once and exits afterwards:
//
//	type Worker interface {
//	    Run(ctx context.Context) error
//	}
//
//	type Job interface {
//	    RunOnce(ctx context.Context) error
//	}
//
// RunAllWorkers starts a set of workers and blocks until all of them exited.
// It cancels all workers as soon as the first one exits, so a single failing
// worker takes the whole process down instead of leaving it up in a degraded
// state.
//
// # Composing Workers
//
// Repeat turns a Job into a Worker that reruns the job on a fixed interval.
// Retry restarts a failing Worker with a Backoff between the attempts.
// DeclarativeWorker chains these wrappers based on plain struct fields:
//
//	runutil.DeclarativeWorker{
//	    Name:   "Poll",
//	    Worker: runutil.Repeat(30*time.Second, runutil.JobFunc(p.poll)),
//	    Retry: runutil.ExponentialBackoff{
//	        Initial:          time.Second,
//	        Max:              time.Minute,
//	        JitterProportion: 0.5,
//	    },
//	}
//
// # Dependency Injection
//
// The package integrates with the dig dependency injection library. Types
// that implement WorkerConfiger get registered with ProvideWorker and
// started together with RunProvidedWorkers:
//
//	func SetupWorkers(ctx context.Context, c *dig.Container) error {
//	    err := errors.Join(
//	        runutil.ProvideWorker(c, workers.NewPlanPoller),
//	        runutil.ProvideWorker(c, workers.NewStatsFlusher),
//	    )
//	    if err != nil {
//	        return err
//	    }
//
//	    return runutil.RunProvidedWorkers(ctx, c)
//	}
//
// # Health Monitoring
//
// Workers report their health via HealthCheckpoint, which exposes the
// per-subsystem state as Prometheus metrics. A monitor moves between the
// states init, ok, firing and backoff.
package runutil
