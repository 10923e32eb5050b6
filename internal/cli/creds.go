package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vpnkeeper/internal/common"
	"github.com/dmitrijs2005/vpnkeeper/internal/models"
)

func (a *App) Creds(ctx context.Context, args []string) error {
	id, err := a.profileArg(ctx, "creds", args)
	if err != nil {
		return err
	}
	p, ok := a.repo.GetProfile(ctx, id)
	if !ok {
		fmt.Fprintf(a.out, "No credentials saved for %s\n", id)
		return nil
	}
	p = p.Masked()
	fmt.Fprintf(a.out, "Server:   %s\nUsername: %s\nPassword: %s\n", p.Server, p.Username, p.Password)
	return nil
}

// SetCreds prompts for server, username and password. Server and username
// default to the saved values, or the profile defaults; an empty password
// keeps the saved one.
func (a *App) SetCreds(ctx context.Context, args []string) error {
	id, err := a.profileArg(ctx, "setcreds", args)
	if err != nil {
		return err
	}

	current, ok := a.repo.GetProfile(ctx, id)
	if !ok {
		pc := a.config.Profile(id)
		current = models.Profile{Server: pc.Server, Username: pc.UsernamePrefix}
	}

	server, err := GetTextWithDefault(a.reader, "Enter server", current.Server, a.out)
	if err != nil {
		a.logger.Error(ctx, "read server", "error", err)
		return err
	}
	username, err := GetTextWithDefault(a.reader, "Enter username", current.Username, a.out)
	if err != nil {
		a.logger.Error(ctx, "read username", "error", err)
		return err
	}
	pw, err := GetPassword(a.out)
	if err != nil {
		a.logger.Error(ctx, "read password", "error", err)
		return err
	}
	defer common.WipeByteArray(pw)

	password := current.Password
	if len(pw) > 0 {
		password = string(pw)
	}

	p := models.Profile{Server: server, Username: username, Password: password}
	if err := a.repo.SaveProfile(ctx, id, p); err != nil {
		a.logger.Error(ctx, "save credentials", "error", err)
		return err
	}
	fmt.Fprintf(a.out, "Credentials for %s saved\n", id)
	return nil
}

func (a *App) ClearCreds(ctx context.Context, args []string) error {
	id, err := a.profileArg(ctx, "clearcreds", args)
	if err != nil {
		return err
	}
	if err := a.repo.ClearProfile(ctx, id); err != nil {
		a.logger.Error(ctx, "clear credentials", "error", err)
		return err
	}
	fmt.Fprintf(a.out, "Credentials for %s cleared\n", id)
	return nil
}
