package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vpnkeeper/internal/common"
	"github.com/dmitrijs2005/vpnkeeper/internal/config"
	"github.com/dmitrijs2005/vpnkeeper/internal/logging"
	"github.com/dmitrijs2005/vpnkeeper/internal/models"
	"github.com/dmitrijs2005/vpnkeeper/internal/runner"
	"github.com/dmitrijs2005/vpnkeeper/internal/shellcmd"
)

// RemoteDesktop opens the remote desktop web portal of a region.
type RemoteDesktop struct {
	cfg      *config.Config
	launcher runner.Launcher
	logger   logging.Logger
}

func NewRemoteDesktop(cfg *config.Config, l runner.Launcher, logger logging.Logger) *RemoteDesktop {
	return &RemoteDesktop{cfg: cfg, launcher: l, logger: logger}
}

// Open launches the browser on the portal of region ("german", "us", ...).
func (r *RemoteDesktop) Open(ctx context.Context, region string) error {
	id, err := models.ParseProfileID(region)
	if err != nil {
		return err
	}
	url := r.cfg.Profile(id).PortalURL
	if url == "" {
		return fmt.Errorf("no portal for %s: %w", id, common.ErrUnknownProfile)
	}

	cmd := shellcmd.Browser(r.cfg.BrowserPath, url)
	if err := r.launcher.Start(ctx, cmd.Argv...); err != nil {
		r.logger.Error(ctx, "error opening remote desktop", "url", url, "error", err)
		return fmt.Errorf("open %s: %w", url, err)
	}
	r.logger.Info(ctx, "remote desktop opened", "url", url)
	return nil
}
