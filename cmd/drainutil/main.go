package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ratebound/ratebound-go-sdk/pkg/cmdutil"
)

func main() {
	defer cmdutil.HandleExit()
	cmdutil.Must(NewRootCommand().Execute())
}

func NewRootCommand() *cobra.Command {
	return cmdutil.New(
		"drainutil", "Drains a plan of operations against a rate-limited endpoint",
		cmdutil.WithLoggingOptions(),
		cmdutil.WithVersionCommand(),
		cmdutil.WithVersionLog(slog.LevelDebug),

		cmdutil.WithRunner(new(Runner)),
	)
}
