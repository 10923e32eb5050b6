package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vpnkeeper/internal/common"
	"github.com/dmitrijs2005/vpnkeeper/internal/config"
	"github.com/dmitrijs2005/vpnkeeper/internal/filex"
	"github.com/dmitrijs2005/vpnkeeper/internal/logging"
	"github.com/dmitrijs2005/vpnkeeper/internal/mapper"
	"github.com/dmitrijs2005/vpnkeeper/internal/models"
	"github.com/dmitrijs2005/vpnkeeper/internal/runner"
	"github.com/dmitrijs2005/vpnkeeper/internal/shellcmd"
	"github.com/dmitrijs2005/vpnkeeper/internal/store"
)

// DriveService maps network folders onto drive letters.
//
// Contract:
//   - Plan: build the mapper plan for a profile; deletes in folder order,
//     then maps in folder order.
//   - Map: load folders and credentials and run the plan. Falls back to the
//     profile's configured folders, mapped with the session credentials,
//     when none are saved. Returns common.ErrNotFound if there is nothing
//     to map.
//   - Mapped: raw `net use` listing.
//   - Busy: whether a mapping run for the profile is in progress.
type DriveService interface {
	Plan(id models.ProfileID, p models.Profile, folders []models.FolderMapping) mapper.Plan
	Map(ctx context.Context, id models.ProfileID) (*mapper.Report, error)
	Mapped(ctx context.Context) (string, error)
	Busy(id models.ProfileID) bool
}

type driveService struct {
	cfg     *config.Config
	repo    store.Repository
	runner  runner.Runner
	mapper  *mapper.Mapper
	browser *Browser
	logger  logging.Logger
}

// NewDriveService constructs a DriveService. browser may be nil; when set
// its root follows the first drive of every completed mapping.
func NewDriveService(cfg *config.Config, repo store.Repository, r runner.Runner, m *mapper.Mapper, browser *Browser, logger logging.Logger) DriveService {
	return &driveService{cfg: cfg, repo: repo, runner: r, mapper: m, browser: browser, logger: logger}
}

func (s *driveService) Plan(id models.ProfileID, p models.Profile, folders []models.FolderMapping) mapper.Plan {
	user := shellcmd.DriveUser(s.cfg.Profile(id).DriveDomain, p.Username)

	plan := mapper.Plan{
		Key:        string(id),
		Disconnect: make([]shellcmd.Command, 0, len(folders)),
		Connect:    make([]shellcmd.Command, 0, len(folders)),
	}
	for _, f := range folders {
		plan.Disconnect = append(plan.Disconnect, shellcmd.NetUseDelete(f.Drive))
	}
	for _, f := range folders {
		plan.Connect = append(plan.Connect, shellcmd.NetUseMap(f.Drive, f.Path, user, p.Password))
	}
	return plan
}

func (s *driveService) Map(ctx context.Context, id models.ProfileID) (*mapper.Report, error) {
	folders := s.repo.Folders(ctx, id)
	profile, _ := s.repo.GetProfile(ctx, id)

	if len(folders) == 0 {
		folders = s.cfg.Profile(id).Folders
		profile = models.Profile{}
	}
	if len(folders) == 0 {
		return nil, fmt.Errorf("folders of %s: %w", id, common.ErrNotFound)
	}

	report, err := s.mapper.Run(ctx, s.Plan(id, profile, folders))
	if err != nil {
		return report, err
	}

	if report.Final == mapper.Done && s.browser != nil {
		s.browser.SetRoot(filex.DriveRoot(folders[0].Drive))
	}
	return report, nil
}

func (s *driveService) Mapped(ctx context.Context) (string, error) {
	res := s.runner.Run(ctx, s.cfg.CommandTimeout, shellcmd.NetUseList().Argv...)
	if !res.OK() {
		return "", fmt.Errorf("net use: %w", res.Err())
	}
	return res.Stdout, nil
}

func (s *driveService) Busy(id models.ProfileID) bool {
	return s.mapper.Busy(string(id))
}
