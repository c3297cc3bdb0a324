// Package cmdutil contains helper utilities for setting up a CLI with Go,
// providing basic application behavior and for reducing boilerplate code.
//
// # Graceful Application Exits
//
// In many command line applications it is desired to exit the process
// immediately, if it is clear that the application cannot recover. Important
// note: This is designed for actual applications (ie not libraries), because
// only the application itself should decide when to exit. Libraries should
// alway return errors.
//
// There are three ways to handle fatal errors in Go. With os.Exit() the
// process will terminate immediately, but it will not call any deferrers which
// means that possible cleanup task do not get called. The next way is to call
// panic, which respects the defer statements, but unfortunately it is not
// possible to define an exit code and the user gets confused with a stack
// trace. Finally, the function could just return an error indicating that
// things failed, but this introduces a lot of code, conditionals and appears
// unnecessary, when it is already clear that the application cannot recover.
//
// The package cmdutil provides an alternative, which panics with a known
// struct and catches it right before the application exit. This is an example
// to illustrate the usage:
//
//	func main() {
//	  defer cmdutil.HandleExit()
//	  run()
//	}
//
//	func run() {
//	  defer fmt.Println("important cleanup")
//	  err := doSomething()
//	  if err != nil {
//	    slog.Error(err.Error())
//	    cmdutil.Exit(2)
//	  }
//	}
//
// The defer of HandleExit is the first statement in the main function. It
// ensures a pretty output and that the application exits with the specified
// exit code. The run function does something and makes the application exit
// with an exit code. The specified defer statement is still called. Also the
// application logging facility should be used to communicate the error, so the
// error actually appears on external logging applications like Syslog or
// Graylog.
//
// # Command Structure with cmdutil
//
// New creates a ready-to-use Cobra command to reduce the necessary
// boilerplate. Options add flags, subcommands and hooks to the command. This
// is how a typical main function looks like:
//
//	func main() {
//	    defer cmdutil.HandleExit()
//
//	    cmd := cmdutil.New(
//	        "myapp", "An example app.",
//	        cmdutil.WithLogVerboseFlag(),
//	        cmdutil.WithLogToGraylog(),
//	        cmdutil.WithVersionCommand(),
//	        cmdutil.WithVersionLog(slog.LevelDebug),
//	        cmdutil.WithRunner(new(Runner)),
//	    )
//
//	    cmdutil.Must(cmd.Execute())
//	}
//
// The logging options configure the default slog logger in their persistent
// pre-run hooks, so the log output format and targets are in place before the
// actual application code starts.
//
// # Runner Pattern
//
// Runners are structs that define command line flags and prepare the
// application for launch. Bind defines the flags and Run executes the main
// application logic:
//
//	type Runner struct {
//	    name         string
//	    redisAddress string
//	}
//
//	func (r *Runner) Bind(cmd *cobra.Command) error {
//	    cmd.PersistentFlags().StringVar(
//	        &r.name, "name", "World",
//	        `Your name.`)
//
//	    cmd.PersistentFlags().StringVar(
//	        &r.redisAddress, "redis-address", "localhost:6379",
//	        `Redis server address.`)
//
//	    return nil
//	}
//
//	func (r *Runner) Run(ctx context.Context) error {
//	    redisClient := redis.NewClient(&redis.Options{
//	        Addr: r.redisAddress,
//	    })
//
//	    return r.runServer(ctx, redisClient)
//	}
//
// The purpose of splitting the Runner and the actual application code is to
// get initializing errors as fast as possible (eg if the Redis server is not
// available), to keep environment-specific setup out of the application code
// and to define a proper interface for the application launch, which is very
// helpful for e2e tests.
//
// The context returned by Run is already wired to SIGINT and SIGTERM, so the
// application shuts down gracefully on the first interrupt and exits
// immediately on the second one.
//
// # Version Command
//
// WithVersionCommand attaches a subcommand to the application that prints the
// compiled version and other build parameters. These values need to be set by
// the build system via ldflags:
//
//	BUILD_XDST=github.com/ratebound/ratebound-go-sdk/pkg/cmdutil
//	go build -ldflags "\
//	  -X '${BUILD_XDST}.Name=${NAME}' \
//	  -X '${BUILD_XDST}.Version=${BUILD_VERSION}' \
//	  -X '${BUILD_XDST}.BuildDate=${BUILD_DATE}' \
//	  -X '${BUILD_XDST}.CommitHash=${COMMIT_HASH}'"
package cmdutil
