package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vpnkeeper/internal/common"
	"github.com/dmitrijs2005/vpnkeeper/internal/models"
)

func (a *App) Folders(ctx context.Context, args []string) error {
	id, err := a.profileArg(ctx, "folders", args)
	if err != nil {
		return err
	}

	folders := a.repo.Folders(ctx, id)
	if len(folders) == 0 {
		defaults := a.config.Profile(id).Folders
		if len(defaults) == 0 {
			fmt.Fprintf(a.out, "No folders for %s\n", id)
			return nil
		}
		fmt.Fprintf(a.out, "No folders saved for %s, default mapping:\n", id)
		folders = defaults
	}
	for i, f := range folders {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, f)
	}
	return nil
}

func (a *App) AddFolder(ctx context.Context, args []string) error {
	id, err := a.profileArg(ctx, "addfolder", args)
	if err != nil {
		return err
	}

	drive, err := GetRequiredText(a.reader, "Enter drive letter (e.g. N:)", a.out)
	if err != nil {
		a.logger.Error(ctx, "read drive", "error", err)
		return err
	}
	path, err := GetRequiredText(a.reader, `Enter network path (e.g. \\server\share)`, a.out)
	if err != nil {
		a.logger.Error(ctx, "read path", "error", err)
		return err
	}

	f := models.FolderMapping{Drive: drive, Path: path}
	if err := a.repo.AddFolder(ctx, id, f); err != nil {
		a.logger.Error(ctx, "save folder", "error", err)
		return err
	}
	fmt.Fprintf(a.out, "Folder %s added to %s\n", f, id)
	return nil
}

func (a *App) Servers(ctx context.Context, args []string) error {
	servers := a.repo.CustomServers(ctx)
	if len(servers) == 0 {
		fmt.Fprintln(a.out, "No custom servers")
		return nil
	}
	for i, s := range servers {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, s)
	}
	return nil
}

func (a *App) AddServer(ctx context.Context, args []string) error {
	desc, err := GetRequiredText(a.reader, "Enter description", a.out)
	if err != nil {
		a.logger.Error(ctx, "read description", "error", err)
		return err
	}
	addr, err := GetRequiredText(a.reader, `Enter address (e.g. \\fs02\uschi)`, a.out)
	if err != nil {
		a.logger.Error(ctx, "read address", "error", err)
		return err
	}

	if err := a.repo.AddCustomServer(ctx, models.CustomServer{Description: desc, Address: addr}); err != nil {
		a.logger.Error(ctx, "save server", "error", err)
		return err
	}
	fmt.Fprintf(a.out, "Server %q added\n", desc)
	return nil
}

// DelServer deletes every custom server with the description given as
// arguments, or prompted for when there are none.
func (a *App) DelServer(ctx context.Context, args []string) error {
	desc := strings.Join(args, " ")
	if desc == "" {
		var err error
		desc, err = GetRequiredText(a.reader, "Enter description", a.out)
		if err != nil {
			a.logger.Error(ctx, "read description", "error", err)
			return err
		}
	}

	n, err := a.repo.DeleteCustomServer(ctx, desc)
	if errors.Is(err, common.ErrNotFound) {
		fmt.Fprintf(a.out, "No server %q\n", desc)
		return err
	}
	if err != nil {
		a.logger.Error(ctx, "delete server", "error", err)
		return err
	}
	fmt.Fprintf(a.out, "Deleted %d server(s) %q\n", n, desc)
	return nil
}
