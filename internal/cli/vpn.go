package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vpnkeeper/internal/common"
	"github.com/dmitrijs2005/vpnkeeper/internal/services"
)

func (a *App) Connect(ctx context.Context, args []string) error {
	id, err := a.profileArg(ctx, "connect", args)
	if err != nil {
		return err
	}
	a.background(ctx, "connect "+string(id), func(ctx context.Context) error {
		return a.vpn.Connect(ctx, id)
	})
	return nil
}

func (a *App) Disconnect(ctx context.Context, args []string) error {
	a.background(ctx, "disconnect", a.vpn.Disconnect)
	return nil
}

func (a *App) Map(ctx context.Context, args []string) error {
	id, err := a.profileArg(ctx, "map", args)
	if err != nil {
		return err
	}
	if a.drives.Busy(id) {
		fmt.Fprintf(a.out, "Mapping for %s is already running\n", id)
		return fmt.Errorf("map %s: %w", id, common.ErrProfileBusy)
	}
	a.background(ctx, "map "+string(id), func(ctx context.Context) error {
		report, err := a.drives.Map(ctx, id)
		if err != nil {
			return err
		}
		return report.Err()
	})
	return nil
}

func (a *App) Status(ctx context.Context, args []string) error {
	st, err := services.StatusReport(ctx, a.vpn, a.drives)
	if err != nil {
		a.logger.Warn(ctx, "status incomplete", "error", err)
	}

	fmt.Fprintf(a.out, "VPN:     %s\n", st.Profile)
	fmt.Fprintf(a.out, "Client:  %s\n", runningText(st.ClientRunning))
	fmt.Fprintf(a.out, "Browser: %s\n", a.browser.Root())
	if mapped := strings.TrimSpace(st.Mapped); mapped != "" {
		fmt.Fprintln(a.out, "Drives:")
		fmt.Fprintln(a.out, mapped)
	}
	return err
}

func (a *App) RDP(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: rdp <german|us>")
		return errUsage
	}
	if err := a.remote.Open(ctx, args[0]); err != nil {
		a.logger.Error(ctx, "remote desktop", "error", err)
		return err
	}
	return nil
}

func runningText(running bool) string {
	if running {
		return "running"
	}
	return "not running"
}
