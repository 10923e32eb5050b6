package services

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Status combines the connection state with what the system reports.
type Status struct {
	Profile       string
	ClientRunning bool
	Mapped        string
}

// StatusReport probes the client process and the drive mappings
// concurrently. A failing probe does not cancel the other one; on error
// the fields of the probes that succeeded are still filled in.
func StatusReport(ctx context.Context, vpn VPNService, drives DriveService) (*Status, error) {
	st := &Status{Profile: vpn.Status()}

	var g errgroup.Group
	g.Go(func() error {
		running, err := vpn.ClientRunning(ctx)
		if err != nil {
			return err
		}
		st.ClientRunning = running
		return nil
	})
	g.Go(func() error {
		mapped, err := drives.Mapped(ctx)
		if err != nil {
			return err
		}
		st.Mapped = mapped
		return nil
	})

	return st, g.Wait()
}
