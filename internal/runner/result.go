package runner

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNonZeroExit = errors.New("non-zero exit")
	ErrTimeout     = errors.New("timed out")
	ErrLaunch      = errors.New("launch failed")
)

// Outcome classifies how a command run ended. Every run has exactly one.
type Outcome int

const (
	// Success: the process exited with code 0.
	Success Outcome = iota
	// Failure: the process ran and exited with a non-zero code.
	Failure
	// TimedOut: the process was killed after exceeding its timeout.
	TimedOut
	// LaunchError: the process could not be started (or the run was
	// cancelled by the caller).
	LaunchError
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case TimedOut:
		return "timed out"
	case LaunchError:
		return "launch error"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the typed outcome of one command run. ExitCode, Stdout and
// Stderr are meaningful for Success and Failure; Cause for LaunchError.
type Result struct {
	Outcome  Outcome
	ExitCode int
	Stdout   string
	Stderr   string
	Elapsed  time.Duration
	Cause    error
}

func (r Result) OK() bool {
	return r.Outcome == Success
}

// Err converts the outcome into an error wrapping ErrNonZeroExit,
// ErrTimeout or ErrLaunch. It is nil for Success.
func (r Result) Err() error {
	switch r.Outcome {
	case Success:
		return nil
	case Failure:
		if msg := r.Message(); msg != "" {
			return fmt.Errorf("%w: code %d: %s", ErrNonZeroExit, r.ExitCode, msg)
		}
		return fmt.Errorf("%w: code %d", ErrNonZeroExit, r.ExitCode)
	case TimedOut:
		return fmt.Errorf("%w after %s", ErrTimeout, r.Elapsed.Round(time.Millisecond))
	default:
		return fmt.Errorf("%w: %v", ErrLaunch, r.Cause)
	}
}

// Message is the most useful trimmed output of the run: stderr if any,
// otherwise stdout. Windows utilities often report errors on stdout.
func (r Result) Message() string {
	if s := strings.TrimSpace(r.Stderr); s != "" {
		return s
	}
	return strings.TrimSpace(r.Stdout)
}
