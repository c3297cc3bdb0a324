// Package sdk is a library for our Golang projects.
//
// Development Status: ratebound-go-sdk is designed for internal use. Since it
// uses Semantic Versioning (https://semver.org/) it is safe to use, but expect
// big changes between major version updates.
//
// # Application Layout
//
// ## General Directory Structure
//
// Please take a look at the examples directory to see how it actually looks like.
//
//	/
//	├── cmd/[subcommand/]
//	│   ├── root.go
//	│   └── ...
//	├── pkg/
//	│   ├── app/...
//	│   ├── dal/...
//	│   ├── bll/...
//	│   └── ...
//	├── go.mod
//	├── go.sum
//	├── LICENSE
//	├── main.go
//	└── README.md
//
// - /main.go is the entrypoint of the application. It's typically very minimal,
// containing just enough code to initialize the command framework and handle errors.
// Its primary responsibility is to set up the application with the SDK's cmdutil package
// and delegate execution to the Cobra command structure defined in /cmd/root.go.
//
// - /cmd/root.go contains the definition for all Cobra commands and
// the Runners (see below) of the application. This is where you define your command-line
// interface structure, options, and connect the commands to their implementations.
//
// ## Command Structure Organization
//
// The separation of concerns in command files follows a clear pattern:
//
// main.go - Minimal application entry point:
//
//	func main() {
//	   defer cmdutil.HandleExit()
//	   cmdutil.Must(cmd.NewRootCommand().Execute())
//	}
//
// cmd/root.go - Command definition and runner setup:
//
//	func NewRootCommand() *cobra.Command {
//	   return cmdutil.New(
//	       "myapp", "Describes what myapp does.",
//	       cmdutil.WithLoggingOptions(),
//	       cmdutil.WithVersionCommand(),
//	       cmdutil.WithRunner(new(Runner)),
//	   )
//	}
//
//	// Runner implementation follows...
//
// cmd/server.go - Server configuration and setup:
//
//	// RunServer configures and starts the application workers with dependency injection
//	func RunServer(ctx context.Context, c *dig.Container) error {
//	   err := errors.Join(
//	       // Register HTTP handlers
//	       webutil.ProvideHandler(c, handlers.NewUserHandler),
//	       webutil.ProvideHandler(c, handlers.NewDashboardHandler),
//
//	       // Register background workers
//	       runutil.ProvideWorker(c, workers.NewSyncWorker),
//
//	       // Register the HTTP servers
//	       runutil.ProvideWorker(c, webutil.NewServer),
//	       runutil.ProvideWorker(c, func() *webutil.AdminServer {
//	           return webutil.NewAdminServer("127.0.0.1:8090")
//	       }),
//	   )
//	   if err != nil {
//	       return err
//	   }
//
//	   // Start all registered workers
//	   return runutil.RunProvidedWorkers(ctx, c)
//	}
//
// This separation of concerns follows a clear pattern:
//
// 1. /main.go initializes the command framework and handles errors
// 2. /cmd/root.go defines the CLI structure and environment-specific runners
// 3. /cmd/server.go contains shared server setup code used by all environments
//
// - /pkg/app contains separate components of the application. The /pkg/app
// directory serves basically the same purpose as the /cmd, but is separated
// into multiple sub-packages. This is useful when the /cmd directory grows
// too big and contains components that are mostly independent from each other.
//
// - /pkg/bll stands for "business logic layer" and contains sub-packages that
// solve a specific use-case of the application.
//
// - /pkg/dal stands for "data access layer" and contains sub-packages that
// serve as a wrapper for external services and APIs. The idea of grouping such
// packages is to make their purpose clear and to avoid mixing access to
// external services with actual business logic.
//
// # Talking to Rate-Limited Services
//
// Calls against external services that enforce rate limits go through an
// executor from the oputil package. The executor owns the retry behavior, the
// queue underneath owns concurrency and pacing:
//
//	executor := oputil.NewRateLimitExecutor[*User](oputil.RateLimitExecutorOptions{
//	    Name:        "user-api",
//	    Concurrency: 4,
//	    Interval:    time.Second,
//	    IntervalCap: 10,
//	})
//
//	user, err := executor.Run(ctx, func(ctx context.Context) (*User, error) {
//	    return client.GetUser(ctx, id)
//	}, oputil.WithName("get-user"))
//
// Failures are classified by the errutil package: transient status codes (429
// by default, plus anything registered via WithRetryStatus) get retried until
// the configured ceiling, everything else fails the operation immediately.
//
// # Major Release Notes
//
// - vN is the new release (eg v3)
// - vP is the previous one (eg v2)
//
// 1. Create a new branch release-vN to avoid breaking changes getting into the previous release.
// 2. Do your breaking changes in the branch.
// 3. Update the imports everywhere:
//   - find . -type f -exec sed -i 's#github.com/ratebound/ratebound-go-sdk/vO#github.com/ratebound/ratebound-go-sdk/vP#g' {} +
//
// 4. Merge your branch.
// 5. Add Release on GitHub.
package sdk
