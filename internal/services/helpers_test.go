package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/vpnkeeper/internal/config"
	"github.com/dmitrijs2005/vpnkeeper/internal/logging"
	"github.com/dmitrijs2005/vpnkeeper/internal/mapper"
	"github.com/dmitrijs2005/vpnkeeper/internal/runner/runnertest"
	"github.com/dmitrijs2005/vpnkeeper/internal/store"
)

// sleepRecorder records requested delays without waiting.
type sleepRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.delays = append(s.delays, d)
	s.mu.Unlock()
	return ctx.Err()
}

func (s *sleepRecorder) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.delays...)
}

type fixture struct {
	cfg     *config.Config
	repo    *store.JSONStore
	fake    *runnertest.Fake
	sleeps  *sleepRecorder
	browser *Browser
	drives  DriveService
	logger  logging.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StorePath = filepath.Join(t.TempDir(), "credentials.json")

	f := &fixture{
		cfg:     cfg,
		repo:    store.NewJSONStore(cfg.StorePath, logging.Discard()),
		fake:    &runnertest.Fake{},
		sleeps:  &sleepRecorder{},
		browser: NewBrowser(t.TempDir()),
		logger:  logging.Discard(),
	}
	m := mapper.New(f.fake, f.logger, mapper.Options{
		SettleDelay: cfg.SettleDelay,
		WaitDelay:   cfg.WaitDelay,
		Timeout:     cfg.CommandTimeout,
	}, mapper.WithSleep(f.sleeps.sleep))
	f.drives = NewDriveService(cfg, f.repo, f.fake, m, f.browser, f.logger)
	return f
}

func (f *fixture) vpn() VPNService {
	return NewVPNService(f.cfg, f.repo, f.fake, f.drives, f.browser, f.logger, WithVPNSleep(f.sleeps.sleep))
}
