// Package runnertest provides a scripted runner.Runner for tests.
package runnertest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/vpnkeeper/internal/runner"
)

// Call records one Run invocation.
type Call struct {
	Argv    []string
	Timeout time.Duration
}

func (c Call) String() string {
	return strings.Join(c.Argv, " ")
}

// Fake answers Run from rules matched by argv prefix. Unmatched commands
// succeed with exit code 0. Like ExecRunner, a run whose ctx is done by
// the time it returns is a LaunchError. Fake is safe for concurrent use.
type Fake struct {
	mu    sync.Mutex
	rules []rule
	calls []Call

	// OnRun, if set, is called before the result is returned.
	OnRun func(argv []string)

	// StartErr is returned by Start.
	StartErr error
	started  [][]string
}

type rule struct {
	prefix []string
	result runner.Result
}

// On makes every command starting with prefix return res. Later rules win.
func (f *Fake) On(res runner.Result, prefix ...string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, rule{prefix: prefix, result: res})
	return f
}

func (f *Fake) Run(ctx context.Context, timeout time.Duration, argv ...string) runner.Result {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Argv: append([]string(nil), argv...), Timeout: timeout})
	res := runner.Result{Outcome: runner.Success}
	for i := len(f.rules) - 1; i >= 0; i-- {
		if hasPrefix(argv, f.rules[i].prefix) {
			res = f.rules[i].result
			break
		}
	}
	hook := f.OnRun
	f.mu.Unlock()

	if hook != nil {
		hook(argv)
	}
	if err := ctx.Err(); err != nil {
		return runner.Result{Outcome: runner.LaunchError, ExitCode: -1, Cause: err}
	}
	return res
}

// Calls returns a copy of every recorded invocation in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Commands returns the recorded invocations joined with spaces.
func (f *Fake) Commands() []string {
	calls := f.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

func hasPrefix(argv, prefix []string) bool {
	if len(prefix) > len(argv) {
		return false
	}
	for i := range prefix {
		if argv[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Fail is a Failure result with the given exit code and stderr.
func Fail(code int, stderr string) runner.Result {
	return runner.Result{Outcome: runner.Failure, ExitCode: code, Stderr: stderr}
}

// OK is a Success result with the given stdout.
func OK(stdout string) runner.Result {
	return runner.Result{Outcome: runner.Success, Stdout: stdout}
}

// Start records argv and returns StartErr.
func (f *Fake) Start(ctx context.Context, argv ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = append(f.started, append([]string(nil), argv...))
	return f.StartErr
}

// Started returns every argv passed to Start, in order.
func (f *Fake) Started() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.started...)
}

var (
	_ runner.Runner   = (*Fake)(nil)
	_ runner.Launcher = (*Fake)(nil)
)
