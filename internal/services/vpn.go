package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/vpnkeeper/internal/common"
	"github.com/dmitrijs2005/vpnkeeper/internal/config"
	"github.com/dmitrijs2005/vpnkeeper/internal/logging"
	"github.com/dmitrijs2005/vpnkeeper/internal/mapper"
	"github.com/dmitrijs2005/vpnkeeper/internal/models"
	"github.com/dmitrijs2005/vpnkeeper/internal/runner"
	"github.com/dmitrijs2005/vpnkeeper/internal/shellcmd"
	"github.com/dmitrijs2005/vpnkeeper/internal/store"
	"github.com/google/uuid"
)

// StatusNone is reported while no profile is connected.
const StatusNone = "none"

// VPNService drives the SSL VPN client.
//
// Contract:
//   - Connect: kill any running client, wait, connect with the saved (or
//     default) credentials of id, then map the profile's drives. Only the
//     connect outcome is returned; mapping results are logged.
//   - Disconnect: ask the client to disconnect.
//   - ClientRunning: whether a client process exists.
//   - Status: the connected profile label, or StatusNone.
//
// A second Connect while one is in progress fails with common.ErrProfileBusy.
type VPNService interface {
	Connect(ctx context.Context, id models.ProfileID) error
	Disconnect(ctx context.Context) error
	ClientRunning(ctx context.Context) (bool, error)
	Status() string
}

// VPNOption customises a VPNService.
type VPNOption func(*vpnService)

// WithVPNSleep replaces the delay primitive used for the shutdown and map
// delays.
func WithVPNSleep(fn mapper.SleepFunc) VPNOption {
	return func(s *vpnService) { s.sleep = fn }
}

type vpnService struct {
	cfg     *config.Config
	repo    store.Repository
	runner  runner.Runner
	drives  DriveService
	browser *Browser
	logger  logging.Logger
	sleep   mapper.SleepFunc

	mu         sync.Mutex
	connecting bool
	connected  models.ProfileID
}

// NewVPNService constructs a VPNService. drives and browser may be nil.
func NewVPNService(cfg *config.Config, repo store.Repository, r runner.Runner, drives DriveService, browser *Browser, logger logging.Logger, opts ...VPNOption) VPNService {
	s := &vpnService{
		cfg:     cfg,
		repo:    repo,
		runner:  r,
		drives:  drives,
		browser: browser,
		logger:  logger,
		sleep:   mapper.Sleep,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *vpnService) Connect(ctx context.Context, id models.ProfileID) error {
	if !s.begin() {
		return fmt.Errorf("connect %s: %w", id, common.ErrProfileBusy)
	}
	defer s.end()

	logger := s.logger.With("run_id", uuid.NewString(), "profile", string(id))

	p, ok := s.repo.GetProfile(ctx, id)
	if !ok {
		pc := s.cfg.Profile(id)
		p = models.Profile{Server: pc.Server, Username: pc.UsernamePrefix}
		logger.Warn(ctx, "no saved credentials, using profile defaults")
	}

	s.killExisting(ctx, logger)

	logger.Info(ctx, "waiting for client shutdown", "delay", s.cfg.ShutdownDelay)
	if err := s.sleep(ctx, s.cfg.ShutdownDelay); err != nil {
		return err
	}

	logger.Info(ctx, "connecting", "server", p.Server)
	if strings.HasSuffix(p.Username, `\`) {
		logger.Warn(ctx, `enter your username after the domain prefix, e.g. domain\username`)
	}

	cmd := shellcmd.VPNConnect(s.cfg.VPNClientPath, p.Server, p.Username, p.Password)
	logger.Info(ctx, "command", "command", cmd.String())

	res := s.runner.Run(ctx, s.cfg.ConnectTimeout, cmd.Argv...)
	if !res.OK() {
		s.setConnected("")
		logger.Error(ctx, "connection failed", "error", res.Err())
		if res.Outcome == runner.TimedOut || res.Outcome == runner.LaunchError {
			logger.Info(ctx, "check your network connection and VPN server availability")
		}
		return fmt.Errorf("connect %s: %w", id, res.Err())
	}

	s.setConnected(id)
	logger.Info(ctx, "connection successful")

	if s.drives == nil {
		return nil
	}
	if err := s.sleep(ctx, s.cfg.MapDelay); err != nil {
		return err
	}
	s.mapDrives(ctx, logger, id)
	return nil
}

func (s *vpnService) mapDrives(ctx context.Context, logger logging.Logger, id models.ProfileID) {
	report, err := s.drives.Map(ctx, id)
	switch {
	case err != nil && report == nil:
		logger.Info(ctx, "drive mapping skipped", "reason", err)
	case err != nil:
		logger.Error(ctx, "drive mapping interrupted", "error", err)
	case report.Final == mapper.Aborted:
		logger.Error(ctx, "drive mapping aborted", "error", report.Err())
	}
}

// killExisting terminates any running client. The outcome is only logged;
// taskkill fails when nothing is running.
func (s *vpnService) killExisting(ctx context.Context, logger logging.Logger) {
	cmd := shellcmd.TaskKill(s.cfg.VPNImageName)
	res := s.runner.Run(ctx, s.cfg.KillTimeout, cmd.Argv...)
	if res.OK() {
		logger.Info(ctx, "existing VPN client instance terminated")
		return
	}
	logger.Debug(ctx, "no client instance terminated", "error", res.Err())
}

func (s *vpnService) Disconnect(ctx context.Context) error {
	logger := s.logger.With("run_id", uuid.NewString())
	logger.Info(ctx, "disconnecting VPN")

	cmd := shellcmd.VPNDisconnect(s.cfg.VPNClientPath)
	res := s.runner.Run(ctx, s.cfg.CommandTimeout, cmd.Argv...)
	if !res.OK() {
		logger.Error(ctx, "error disconnecting VPN", "error", res.Err())
		return fmt.Errorf("disconnect: %w", res.Err())
	}

	s.setConnected("")
	if s.browser != nil {
		s.browser.Home()
	}
	logger.Info(ctx, "VPN disconnected")
	return nil
}

func (s *vpnService) ClientRunning(ctx context.Context) (bool, error) {
	res := s.runner.Run(ctx, s.cfg.KillTimeout, shellcmd.TaskList(s.cfg.VPNImageName).Argv...)
	if !res.OK() {
		return false, fmt.Errorf("tasklist: %w", res.Err())
	}
	return shellcmd.TaskListHas(res.Stdout, s.cfg.VPNImageName), nil
}

func (s *vpnService) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.connected == "" {
		return StatusNone
	}
	return s.connected.Label()
}

func (s *vpnService) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.connecting {
		return false
	}
	s.connecting = true
	return true
}

func (s *vpnService) end() {
	s.mu.Lock()
	s.connecting = false
	s.mu.Unlock()
}

func (s *vpnService) setConnected(id models.ProfileID) {
	s.mu.Lock()
	s.connected = id
	s.mu.Unlock()
}
