package cmdutil

import (
	"log/slog"
	"os"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	sloggraylog "github.com/samber/slog-graylog/v2"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// logSetup collects the state of all logging flags. Every logging option
// updates its part in its PersistentPreRun hook and rebuilds the default
// logger afterwards, so the final state is the same regardless of the order
// the options got applied in.
var logSetup struct {
	verbose     bool
	json        bool
	gelfAddress string

	gelfWriter *gelf.Writer
}

func applyLogSetup() {
	level := slog.LevelInfo
	if logSetup.verbose {
		level = slog.LevelDebug
	}

	handlers := []slog.Handler{}

	if logSetup.json || !term.IsTerminal(int(os.Stderr.Fd())) {
		handlers = append(handlers, slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
	} else {
		handlers = append(handlers, tint.NewHandler(os.Stderr, &tint.Options{
			Level: level,
		}))
	}

	if logSetup.gelfAddress != "" {
		if logSetup.gelfWriter == nil {
			writer, err := gelf.NewWriter(logSetup.gelfAddress)
			Must(errors.Wrap(err, "failed to create GELF writer"))
			logSetup.gelfWriter = writer
		}

		handler := sloggraylog.Option{
			Level:  level,
			Writer: logSetup.gelfWriter,
		}.NewGraylogHandler()

		handlers = append(handlers, handler.WithAttrs([]slog.Attr{
			slog.String("facility", Name),
			slog.String("version", Version),
			slog.String("commit-sha", CommitHash),
		}))
	}

	if len(handlers) == 1 {
		slog.SetDefault(slog.New(handlers[0]))
		return
	}

	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)))
}

// WithLoggingOptions bundles the log related options that every application
// wants: the verbose flag, the JSON flag and the Graylog target.
func WithLoggingOptions() Option {
	return func(cmd *cobra.Command) error {
		preRuns := []func(*cobra.Command, []string){}

		for _, o := range []Option{
			WithLogVerboseFlag(),
			WithLogJSONFlag(),
			WithLogToGraylog(),
		} {
			err := o(cmd)
			if err != nil {
				return err
			}

			if cmd.PersistentPreRun != nil {
				preRuns = append(preRuns, cmd.PersistentPreRun)
				cmd.PersistentPreRun = nil
			}
		}

		cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
			for _, run := range preRuns {
				run(cmd, args)
			}
		}

		return nil
	}
}

func WithLogVerboseFlag() Option {
	var (
		enabled bool
	)

	return func(cmd *cobra.Command) error {
		cmd.PersistentFlags().BoolVarP(
			&enabled, "verbose", "v", false,
			"prints debug log messages")

		cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
			logSetup.verbose = enabled
			applyLogSetup()
		}

		return nil
	}
}

// WithLogJSONFlag adds a flag that forces JSON formatted logs. Without the
// flag the format is chosen based on whether stderr is a terminal.
func WithLogJSONFlag() Option {
	var (
		enabled bool
	)

	return func(cmd *cobra.Command) error {
		cmd.PersistentFlags().BoolVar(
			&enabled, "log-json", false,
			"forces JSON formatted log output")

		cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
			logSetup.json = enabled
			applyLogSetup()
		}

		return nil
	}
}

func WithLogToGraylog() Option {
	var (
		gelfAddress string
	)

	return func(cmd *cobra.Command) error {
		cmd.PersistentFlags().StringVar(
			&gelfAddress, "gelf-address", "",
			`Address to Graylog for logging (format: "ip:port").`)

		cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
			logSetup.gelfAddress = gelfAddress
			applyLogSetup()
		}

		return nil
	}
}
