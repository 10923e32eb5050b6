// Package mapper runs a drive-mapping plan as an explicit state machine:
// disconnect commands one at a time with a settle delay after each, a
// fixed wait, then connect commands in order until the first failure.
//
// Disconnect failures are logged and skipped, since the drive is often not
// mapped in the first place. A connect failure aborts the remaining
// connects.
//
// Only one run per key (profile) may be active; a second Run for a busy
// key fails with common.ErrProfileBusy. Runs for different keys proceed
// independently.
package mapper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/vpnkeeper/internal/common"
	"github.com/dmitrijs2005/vpnkeeper/internal/logging"
	"github.com/dmitrijs2005/vpnkeeper/internal/runner"
	"github.com/dmitrijs2005/vpnkeeper/internal/shellcmd"
	"github.com/google/uuid"
)

// Plan is the ordered work for one run.
type Plan struct {
	Key        string
	Disconnect []shellcmd.Command
	Connect    []shellcmd.Command
}

// Options holds the fixed delays and the per-command timeout.
type Options struct {
	SettleDelay time.Duration
	WaitDelay   time.Duration
	Timeout     time.Duration
}

// StepResult is the outcome of one command. Command is the masked form.
type StepResult struct {
	Phase   State
	Index   int
	Command string
	Result  runner.Result
}

// Report describes a finished run.
type Report struct {
	RunID    string
	Key      string
	Final    State
	Steps    []StepResult
	FailedAt int
}

// Err returns the error of the connect step that aborted the run, or nil.
func (r *Report) Err() error {
	if r.Final != Aborted || r.FailedAt < 0 {
		return nil
	}
	for _, s := range r.Steps {
		if s.Phase == Connecting && s.Index == r.FailedAt {
			return fmt.Errorf("%s: %w", s.Command, s.Result.Err())
		}
	}
	return nil
}

type SleepFunc func(ctx context.Context, d time.Duration) error

type Option func(*Mapper)

// WithSleep replaces the delay primitive. Tests use it to avoid real waits.
func WithSleep(fn SleepFunc) Option {
	return func(m *Mapper) { m.sleep = fn }
}

// withObserver registers fn to be called synchronously on every transition.
func withObserver(fn func(Transition)) Option {
	return func(m *Mapper) { m.observers = append(m.observers, fn) }
}

type Mapper struct {
	runner    runner.Runner
	logger    logging.Logger
	opts      Options
	sleep     SleepFunc
	observers []func(Transition)

	mu     sync.Mutex
	active map[string]State
}

func New(r runner.Runner, logger logging.Logger, opts Options, options ...Option) *Mapper {
	m := &Mapper{
		runner: r,
		logger: logger,
		opts:   opts,
		sleep:  Sleep,
		active: make(map[string]State),
	}
	for _, o := range options {
		o(m)
	}
	return m
}

// state returns the current state of the run for key, Idle if none.
func (m *Mapper) state(key string) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active[key]
}

// Busy reports whether a run for key is in progress.
func (m *Mapper) Busy(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.active[key]
	return ok
}

// Run executes plan to completion. It blocks; interactive callers should
// call it from a goroutine. The returned error is non-nil only when the
// run could not start (busy key) or ctx ended during a delay; command
// failures are reported in the Report.
func (m *Mapper) Run(ctx context.Context, plan Plan) (*Report, error) {
	if err := m.acquire(plan.Key); err != nil {
		return nil, err
	}
	defer m.release(plan.Key)

	runID := uuid.NewString()
	r := &run{
		m:      m,
		plan:   plan,
		logger: m.logger.With("run_id", runID, "profile", plan.Key),
		report: &Report{RunID: runID, Key: plan.Key, FailedAt: -1},
	}

	err := r.loop(ctx)
	return r.report, err
}

func (m *Mapper) acquire(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, busy := m.active[key]; busy {
		return fmt.Errorf("mapping %s: %w", key, common.ErrProfileBusy)
	}
	m.active[key] = Idle
	return nil
}

func (m *Mapper) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, key)
}

func (m *Mapper) setState(key string, s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[key] = s
}

// run is the state of one Run call.
type run struct {
	m      *Mapper
	plan   Plan
	logger logging.Logger
	report *Report
	state  State
	index  int
}

func (r *run) loop(ctx context.Context) error {
	for {
		switch r.state {
		case Idle:
			if len(r.plan.Disconnect) > 0 {
				r.enter(ctx, Disconnecting, 0)
			} else {
				r.enter(ctx, Waiting, -1)
			}

		case Disconnecting:
			r.disconnect(ctx, r.index)
			if err := r.m.sleep(ctx, r.m.opts.SettleDelay); err != nil {
				r.enter(ctx, Aborted, -1)
				return err
			}
			if next := r.index + 1; next < len(r.plan.Disconnect) {
				r.enter(ctx, Disconnecting, next)
			} else {
				r.enter(ctx, Waiting, -1)
			}

		case Waiting:
			if err := r.m.sleep(ctx, r.m.opts.WaitDelay); err != nil {
				r.enter(ctx, Aborted, -1)
				return err
			}
			r.enter(ctx, Connecting, 0)

		case Connecting:
			if failed := r.connect(ctx); failed >= 0 {
				r.report.FailedAt = failed
				r.enter(ctx, Aborted, failed)
			} else {
				r.enter(ctx, Done, -1)
			}
		}
		if r.state.Terminal() {
			r.report.Final = r.state
			r.logger.Info(ctx, "drive mapping finished", "state", r.state.String(), "steps", len(r.report.Steps))
			return nil
		}
	}
}

func (r *run) enter(ctx context.Context, to State, index int) {
	t := Transition{RunID: r.report.RunID, Key: r.plan.Key, From: r.state, To: to, Index: index}
	r.state = to
	r.index = index
	r.report.Final = to
	r.m.setState(r.plan.Key, to)

	r.logger.Debug(ctx, "mapping state", "from", t.From.String(), "to", to.String(), "index", index)
	for _, fn := range r.m.observers {
		fn(t)
	}
}

func (r *run) exec(ctx context.Context, phase State, i int, c shellcmd.Command) runner.Result {
	res := r.m.runner.Run(ctx, r.m.opts.Timeout, c.Argv...)
	r.report.Steps = append(r.report.Steps, StepResult{Phase: phase, Index: i, Command: c.String(), Result: res})
	return res
}

func (r *run) disconnect(ctx context.Context, i int) {
	c := r.plan.Disconnect[i]
	res := r.exec(ctx, Disconnecting, i, c)
	if res.OK() {
		r.logger.Info(ctx, "drive disconnected", "command", c.String())
		return
	}
	r.logger.Warn(ctx, "disconnect failed, continuing", "command", c.String(), "error", res.Err())
}

// connect runs every connect command in order and returns the index of the
// first one that did not succeed, or -1.
func (r *run) connect(ctx context.Context) int {
	for i, c := range r.plan.Connect {
		r.index = i
		res := r.exec(ctx, Connecting, i, c)
		if !res.OK() {
			r.logger.Error(ctx, "drive mapping failed", "command", c.String(), "error", res.Err())
			return i
		}
		r.logger.Info(ctx, "drive mapped", "command", c.String())
	}
	return -1
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
