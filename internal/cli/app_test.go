package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/vpnkeeper/internal/common"
	"github.com/dmitrijs2005/vpnkeeper/internal/config"
	"github.com/dmitrijs2005/vpnkeeper/internal/logging"
	"github.com/dmitrijs2005/vpnkeeper/internal/models"
	"github.com/dmitrijs2005/vpnkeeper/internal/runner/runnertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noSleep(ctx context.Context, d time.Duration) error {
	return ctx.Err()
}

type testApp struct {
	*App
	fake *runnertest.Fake
	buf  *bytes.Buffer
	home string
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StorePath = filepath.Join(t.TempDir(), "credentials.json")

	fake := &runnertest.Fake{}
	buf := &bytes.Buffer{}
	a := newApp(cfg, logging.Discard(), fake, strings.NewReader(input), buf, noSleep)
	return &testApp{App: a, fake: fake, buf: buf, home: home}
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
}

func TestApp_SetCredsAndCreds(t *testing.T) {
	ctx := context.Background()
	stubPassword(t, "s3cr3t")
	a := newTestApp(t, "\nba-us.com\\jdoe\n")

	require.NoError(t, a.SetCreds(ctx, []string{"us"}))

	p, ok := a.repo.GetProfile(ctx, models.American)
	require.True(t, ok)
	assert.Equal(t, models.Profile{Server: "vpn.ba-us.com", Username: `ba-us.com\jdoe`, Password: "s3cr3t"}, p)

	a.buf.Reset()
	require.NoError(t, a.Creds(ctx, []string{"american"}))
	assert.Contains(t, a.buf.String(), "Server:   vpn.ba-us.com")
	assert.Contains(t, a.buf.String(), common.Mask)
	assert.NotContains(t, a.buf.String(), "s3cr3t")
}

func TestApp_SetCredsEmptyPasswordKeepsSaved(t *testing.T) {
	ctx := context.Background()
	stubPassword(t, "")
	a := newTestApp(t, "vpn2.broetje-automation.de\n\n")
	require.NoError(t, a.repo.SaveProfile(ctx, models.German, models.Profile{
		Server: "vpn.broetje-automation.de", Username: `banet.loc\jdoe`, Password: "old",
	}))

	require.NoError(t, a.SetCreds(ctx, []string{"de"}))

	p, _ := a.repo.GetProfile(ctx, models.German)
	assert.Equal(t, models.Profile{Server: "vpn2.broetje-automation.de", Username: `banet.loc\jdoe`, Password: "old"}, p)
}

func TestApp_ClearCreds(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, "")
	require.NoError(t, a.repo.SaveProfile(ctx, models.German, models.Profile{Server: "s", Username: "u", Password: "p"}))
	require.NoError(t, a.repo.SaveProfile(ctx, models.American, models.Profile{Server: "s2", Username: "u2", Password: "p2"}))

	require.NoError(t, a.ClearCreds(ctx, []string{"german"}))

	de, _ := a.repo.GetProfile(ctx, models.German)
	assert.Equal(t, models.Profile{}, de)
	us, ok := a.repo.GetProfile(ctx, models.American)
	require.True(t, ok)
	assert.Equal(t, "p2", us.Password)
}

func TestApp_ProfileArgument(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, "")

	assert.ErrorIs(t, a.Creds(ctx, nil), errUsage)
	assert.Contains(t, a.buf.String(), "Usage: creds <german|us>")
	assert.ErrorIs(t, a.Connect(ctx, []string{"french"}), common.ErrUnknownProfile)
	assert.Empty(t, a.fake.Calls())
}

func TestApp_Folders(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, "Z:\n\\\\fs02\\uschi\n\n")

	require.NoError(t, a.Folders(ctx, []string{"german"}))
	assert.Contains(t, a.buf.String(), "default mapping")
	assert.Contains(t, a.buf.String(), `N: -> \\banet.loc\baw`)

	a.buf.Reset()
	require.NoError(t, a.Folders(ctx, []string{"us"}))
	assert.Contains(t, a.buf.String(), "No folders for american")

	require.NoError(t, a.AddFolder(ctx, []string{"us"}))
	assert.Equal(t, []models.FolderMapping{{Drive: "Z:", Path: `\\fs02\uschi`}}, a.repo.Folders(ctx, models.American))

	a.buf.Reset()
	require.NoError(t, a.Folders(ctx, []string{"us"}))
	assert.Contains(t, a.buf.String(), `1. Z: -> \\fs02\uschi`)

	assert.ErrorIs(t, a.AddFolder(ctx, []string{"us"}), common.ErrEmptyInput)
	assert.Len(t, a.repo.Folders(ctx, models.American), 1)
}

func TestApp_CustomServers(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, "Chicago\n\\\\fs02\\chi\nChicago\n\\\\fs03\\chi\nChicago\n")

	require.NoError(t, a.Servers(ctx, nil))
	assert.Contains(t, a.buf.String(), "No custom servers")

	require.NoError(t, a.AddServer(ctx, nil))
	require.NoError(t, a.AddServer(ctx, nil))
	require.Len(t, a.repo.CustomServers(ctx), 2)

	a.buf.Reset()
	require.NoError(t, a.Servers(ctx, nil))
	assert.Contains(t, a.buf.String(), `2. Chicago: \\fs03\chi`)

	require.NoError(t, a.DelServer(ctx, nil))
	assert.Contains(t, a.buf.String(), `Deleted 2 server(s) "Chicago"`)
	assert.Empty(t, a.repo.CustomServers(ctx))

	assert.ErrorIs(t, a.DelServer(ctx, []string{"Chicago"}), common.ErrNotFound)
}

func TestApp_ConnectRunsInBackground(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, "")
	require.NoError(t, a.repo.SaveProfile(ctx, models.American, models.Profile{Server: "vpn.ba-us.com", Username: "jdoe", Password: "pw"}))
	require.NoError(t, a.repo.AddFolder(ctx, models.American, models.FolderMapping{Drive: "Z:", Path: `\\fs02\uschi`}))

	require.NoError(t, a.Connect(ctx, []string{"us"}))
	assert.Contains(t, a.buf.String(), "connect american started in background")
	a.wait()

	assert.Equal(t, "us", a.vpn.Status())
	assert.Equal(t, []string{
		"taskkill /IM wgsslvpnc.exe /F",
		a.config.VPNClientPath + " /connect /server:vpn.ba-us.com /username:jdoe /password:pw",
		"net use Z: /delete /Y",
		`net use Z: \\fs02\uschi /user:BA-US\jdoe pw`,
	}, a.fake.Commands())
	assert.Contains(t, a.getStatus(), `(us) Z:\`)

	require.NoError(t, a.Disconnect(ctx, nil))
	a.wait()
	assert.Equal(t, "none", a.vpn.Status())
	assert.Contains(t, a.getStatus(), a.home)
}

func TestApp_MapInBackground(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, "")

	require.NoError(t, a.Map(ctx, []string{"german"}))
	a.wait()

	assert.Equal(t, []string{"net use N: /delete /Y", `net use N: \\banet.loc\baw`}, a.fake.Commands())
}

func TestApp_Status(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, "")
	a.fake.On(runnertest.OK("INFO: No tasks are running which match the specified criteria."), "tasklist")
	a.fake.On(runnertest.OK("New connections will be remembered.\r\nOK  N:  \\\\banet.loc\\baw\r\n"), "net", "use")

	require.NoError(t, a.Status(ctx, nil))

	out := a.buf.String()
	assert.Contains(t, out, "VPN:     none")
	assert.Contains(t, out, "Client:  not running")
	assert.Contains(t, out, `\\banet.loc\baw`)
}

func TestApp_RDP(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, "")

	require.NoError(t, a.RDP(ctx, []string{"us"}))
	assert.Equal(t, [][]string{{a.config.BrowserPath, "https://rdweb.ba-us.com/RDWeb/webclient/"}}, a.fake.Started())

	assert.ErrorIs(t, a.RDP(ctx, nil), errUsage)
	assert.ErrorIs(t, a.RDP(ctx, []string{"mars"}), common.ErrUnknownProfile)
}

func TestApp_Browsing(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, "")
	require.NoError(t, os.MkdirAll(filepath.Join(a.home, "Documents", "reports"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(a.home, "notes.txt"), []byte("hello"), 0o600))

	require.NoError(t, a.Ls(ctx, nil))
	out := a.buf.String()
	assert.Less(t, strings.Index(out, "Documents"), strings.Index(out, "notes.txt"))
	assert.Contains(t, out, "<DIR>")

	require.NoError(t, a.Docs(ctx, nil))
	assert.Equal(t, filepath.Join(a.home, "Documents"), a.browser.Root())

	require.NoError(t, a.Cd(ctx, []string{"reports"}))
	assert.Equal(t, filepath.Join(a.home, "Documents", "reports"), a.browser.Root())

	assert.Error(t, a.Cd(ctx, []string{"missing"}))
	assert.ErrorIs(t, a.Cd(ctx, nil), errUsage)

	require.NoError(t, a.Home(ctx, nil))
	assert.Equal(t, a.home, a.browser.Root())
}

func TestApp_Run(t *testing.T) {
	printed := capturePrint(t)
	a := newTestApp(t, "servers\nbogus\nexit\n")

	a.Run(context.Background())

	assert.Contains(t, a.buf.String(), "No custom servers")
	assert.Contains(t, *printed, "Unknown command: bogus")
	assert.Contains(t, *printed, "Bye!")
}

func TestApp_MapRefusedWhileRunning(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, "")

	started := make(chan struct{})
	release := make(chan struct{})
	a.fake.OnRun = func(argv []string) {
		if len(argv) > 3 && argv[3] == "/delete" {
			close(started)
			<-release
		}
	}

	require.NoError(t, a.Map(ctx, []string{"german"}))
	<-started

	a.buf.Reset()
	err := a.Map(ctx, []string{"de"})
	require.ErrorIs(t, err, common.ErrProfileBusy)
	assert.Contains(t, a.buf.String(), "Mapping for german is already running")
	assert.NotContains(t, a.buf.String(), "started in background")

	close(release)
	a.wait()
	assert.Equal(t, []string{"net use N: /delete /Y", `net use N: \\banet.loc\baw`}, a.fake.Commands())
}
