// Package runner executes external processes and reports each run as one
// typed Result: Success, Failure, TimedOut or LaunchError. There are no
// retries. Run blocks until the process exits or its timeout fires, so
// interactive callers invoke it from a goroutine.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/dmitrijs2005/vpnkeeper/internal/logging"
)

// waitDelay bounds how long Run waits for output pipes after the process
// has been killed on timeout.
const waitDelay = time.Second

// Runner runs a single command. Implementations never panic and never
// return an error; all failures are encoded in the Result.
type Runner interface {
	Run(ctx context.Context, timeout time.Duration, argv ...string) Result
}

// Launcher starts long-lived programs, such as a browser, that must not be
// bound to a run timeout.
type Launcher interface {
	Start(ctx context.Context, argv ...string) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	logger logging.Logger
}

func NewExecRunner(logger logging.Logger) *ExecRunner {
	return &ExecRunner{logger: logger}
}

func (r *ExecRunner) Run(ctx context.Context, timeout time.Duration, argv ...string) Result {
	if len(argv) == 0 {
		return Result{Outcome: LaunchError, ExitCode: -1, Cause: errors.New("empty command")}
	}
	if err := ctx.Err(); err != nil {
		return Result{Outcome: LaunchError, ExitCode: -1, Cause: err}
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	configure(cmd)

	r.logger.Debug(ctx, "starting process", "name", argv[0], "timeout", timeout)

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	res := Result{
		ExitCode: -1,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Elapsed:  elapsed,
	}

	switch {
	case err == nil:
		res.Outcome = Success
		res.ExitCode = 0
	case ctx.Err() != nil:
		res.Outcome = LaunchError
		res.Cause = ctx.Err()
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		res.Outcome = TimedOut
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.Outcome = Failure
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.Outcome = LaunchError
			res.Cause = err
		}
	}

	r.logger.Debug(ctx, "process finished",
		"name", argv[0],
		"outcome", res.Outcome.String(),
		"exit_code", res.ExitCode,
		"elapsed", elapsed.Round(time.Millisecond),
		"stderr", strings.TrimSpace(res.Stderr))

	return res
}

// Start launches argv without waiting for it to exit. Only a failure to
// start is reported. The process is reaped in the background.
func (r *ExecRunner) Start(ctx context.Context, argv ...string) error {
	if len(argv) == 0 {
		return fmt.Errorf("%w: empty command", ErrLaunch)
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	configure(cmd)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrLaunch, err)
	}
	r.logger.Debug(ctx, "process started", "name", argv[0], "pid", cmd.Process.Pid)
	go func() { _ = cmd.Wait() }()
	return nil
}

var (
	_ Runner   = (*ExecRunner)(nil)
	_ Launcher = (*ExecRunner)(nil)
)
