package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/vpnkeeper/internal/config"
	"github.com/dmitrijs2005/vpnkeeper/internal/filex"
	"github.com/dmitrijs2005/vpnkeeper/internal/logging"
	"github.com/dmitrijs2005/vpnkeeper/internal/mapper"
	"github.com/dmitrijs2005/vpnkeeper/internal/models"
	"github.com/dmitrijs2005/vpnkeeper/internal/runner"
	"github.com/dmitrijs2005/vpnkeeper/internal/services"
	"github.com/dmitrijs2005/vpnkeeper/internal/store"
)

var errUsage = errors.New("usage")

// commandRunner runs short commands and starts long-lived ones.
type commandRunner interface {
	runner.Runner
	runner.Launcher
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	repo    store.Repository
	vpn     services.VPNService
	drives  services.DriveService
	remote  *services.RemoteDesktop
	browser *services.Browser
	reader  *bufio.Reader
	out     io.Writer
	jobs    sync.WaitGroup
}

// NewApp builds the App from c, logging to stderr and reading commands
// from stdin.
func NewApp(c *config.Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(os.Stderr, level)

	return newApp(c, logger, runner.NewExecRunner(logger), os.Stdin, os.Stdout, mapper.Sleep), nil
}

func newApp(c *config.Config, logger logging.Logger, r commandRunner, in io.Reader, out io.Writer, sleep mapper.SleepFunc) *App {
	home, err := filex.HomeDir()
	if err != nil {
		logger.Warn(context.Background(), "home directory unknown, browsing from working directory", "error", err)
		home = "."
	}

	repo := store.NewJSONStore(c.StorePath, logger)
	browser := services.NewBrowser(home)
	m := mapper.New(r, logger, mapper.Options{
		SettleDelay: c.SettleDelay,
		WaitDelay:   c.WaitDelay,
		Timeout:     c.CommandTimeout,
	}, mapper.WithSleep(sleep))
	drives := services.NewDriveService(c, repo, r, m, browser, logger)

	return &App{
		config:  c,
		logger:  logger,
		repo:    repo,
		vpn:     services.NewVPNService(c, repo, r, drives, browser, logger, services.WithVPNSleep(sleep)),
		drives:  drives,
		remote:  services.NewRemoteDesktop(c, r, logger),
		browser: browser,
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Run starts the REPL and returns when the user leaves. Background jobs
// are cancelled and waited for before Run returns.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer a.wait()
	defer cancel()

	a.logger.Info(ctx, "vpnkeeper started", "store", a.config.StorePath)
	printlnFn("Welcome to vpnkeeper (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) getStatus() string {
	return fmt.Sprintf("(%s) %s", a.vpn.Status(), a.browser.Root())
}

// background runs fn in its own goroutine. Errors are logged; the prompt
// returns immediately.
func (a *App) background(ctx context.Context, name string, fn func(ctx context.Context) error) {
	a.jobs.Add(1)
	fmt.Fprintf(a.out, "%s started in background\n", name)
	go func() {
		defer a.jobs.Done()
		if err := fn(ctx); err != nil {
			a.logger.Error(ctx, name+" failed", "error", err)
		}
	}()
}

// wait blocks until every background job has finished.
func (a *App) wait() {
	a.jobs.Wait()
}

func (a *App) profileArg(ctx context.Context, cmd string, args []string) (models.ProfileID, error) {
	if len(args) == 0 {
		fmt.Fprintf(a.out, "Usage: %s <german|us>\n", cmd)
		return "", errUsage
	}
	id, err := models.ParseProfileID(args[0])
	if err != nil {
		a.logger.Error(ctx, "invalid profile", "error", err)
		return "", err
	}
	return id, nil
}
