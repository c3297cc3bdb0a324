package executil

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/pkg/errors"

	"github.com/ratebound/ratebound-go-sdk/pkg/logutil"
)

// Run starts the command and waits for it to finish. Unlike
// exec.CommandContext it sends an interrupt instead of a kill when the
// context gets cancelled, giving the process a chance to shut down
// gracefully.
func Run(ctx context.Context, cmd *exec.Cmd) error {
	commandline := strings.Join(cmd.Args, " ")

	logutil.Get(ctx).Debug("running command",
		"command", commandline,
		"dir", cmd.Dir,
	)

	err := cmd.Start()
	if err != nil {
		return errors.WithStack(err)
	}

	stop := context.AfterFunc(ctx, func() {
		logutil.Get(ctx).Debug("sending interrupt signal", "command", commandline)
		cmd.Process.Signal(syscall.SIGINT)
	})
	defer stop()

	return errors.Wrapf(cmd.Wait(), "failed to run `%s`", commandline)
}

// Output runs the given command line with Run and returns its trimmed
// stdout. Stderr passes through to the calling process.
func Output(ctx context.Context, name string, args ...string) (string, error) {
	var stdout bytes.Buffer

	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	err := Run(ctx, cmd)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(stdout.String()), nil
}
