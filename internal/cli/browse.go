package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) Ls(ctx context.Context, args []string) error {
	entries, err := a.browser.List(strings.Join(args, " "))
	if err != nil {
		a.logger.Error(ctx, "list", "error", err)
		return err
	}
	for _, e := range entries {
		if e.IsDir {
			fmt.Fprintf(a.out, "%-6s %12s  %s\n", "<DIR>", "", e.Name)
			continue
		}
		fmt.Fprintf(a.out, "%-6s %12d  %s\n", "", e.Size, e.Name)
	}
	return nil
}

func (a *App) Cd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: cd <path>")
		return errUsage
	}
	dir, err := a.browser.Cd(strings.Join(args, " "))
	if err != nil {
		a.logger.Error(ctx, "cd", "error", err)
		return err
	}
	fmt.Fprintln(a.out, dir)
	return nil
}

func (a *App) Home(ctx context.Context, args []string) error {
	fmt.Fprintln(a.out, a.browser.Home())
	return nil
}

func (a *App) Docs(ctx context.Context, args []string) error {
	fmt.Fprintln(a.out, a.browser.Documents())
	return nil
}
