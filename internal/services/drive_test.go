package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/vpnkeeper/internal/common"
	"github.com/dmitrijs2005/vpnkeeper/internal/mapper"
	"github.com/dmitrijs2005/vpnkeeper/internal/models"
	"github.com/dmitrijs2005/vpnkeeper/internal/runner"
	"github.com/dmitrijs2005/vpnkeeper/internal/runner/runnertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrivePlan_USProfile(t *testing.T) {
	f := newFixture(t)

	plan := f.drives.Plan(models.American,
		models.Profile{Username: `ba-us.com\jdoe`, Password: "pw"},
		[]models.FolderMapping{{Drive: "Z:", Path: `\\fs02\uschi`}, {Drive: "Y:", Path: `\\fs02\eng`}})

	assert.Equal(t, "american", plan.Key)
	require.Len(t, plan.Disconnect, 2)
	require.Len(t, plan.Connect, 2)
	assert.Equal(t, []string{"net", "use", "Z:", "/delete", "/Y"}, plan.Disconnect[0].Argv)
	assert.Equal(t, []string{"net", "use", "Y:", "/delete", "/Y"}, plan.Disconnect[1].Argv)
	assert.Equal(t, []string{"net", "use", "Z:", `\\fs02\uschi`, `/user:BA-US\jdoe`, "pw"}, plan.Connect[0].Argv)
	assert.Equal(t, `net use Y: \\fs02\eng /user:BA-US\jdoe `+common.Mask, plan.Connect[1].String())
}

func TestDriveMap_SavedFolders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.repo.SaveProfile(ctx, models.American, models.Profile{Server: "vpn.ba-us.com", Username: "jdoe", Password: "pw"}))
	require.NoError(t, f.repo.AddFolder(ctx, models.American, models.FolderMapping{Drive: "Z:", Path: `\\fs02\uschi`}))

	report, err := f.drives.Map(ctx, models.American)

	require.NoError(t, err)
	assert.Equal(t, mapper.Done, report.Final)
	assert.Equal(t, []string{
		"net use Z: /delete /Y",
		`net use Z: \\fs02\uschi /user:BA-US\jdoe pw`,
	}, f.fake.Commands())
	assert.Equal(t, `Z:\`, f.browser.Root())
}

func TestDriveMap_DefaultFoldersUseSessionCredentials(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.repo.SaveProfile(ctx, models.German, models.Profile{Username: `banet.loc\jdoe`, Password: "pw"}))

	report, err := f.drives.Map(ctx, models.German)

	require.NoError(t, err)
	assert.Equal(t, mapper.Done, report.Final)
	assert.Equal(t, []string{
		"net use N: /delete /Y",
		`net use N: \\banet.loc\baw`,
	}, f.fake.Commands())
	assert.Equal(t, `N:\`, f.browser.Root())
}

func TestDriveMap_NothingToMap(t *testing.T) {
	f := newFixture(t)

	report, err := f.drives.Map(context.Background(), models.American)

	require.ErrorIs(t, err, common.ErrNotFound)
	assert.Nil(t, report)
	assert.Empty(t, f.fake.Calls())
}

func TestDriveMap_AbortKeepsBrowserRoot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.repo.AddFolder(ctx, models.American, models.FolderMapping{Drive: "Z:", Path: `\\fs02\uschi`}))
	require.NoError(t, f.repo.AddFolder(ctx, models.American, models.FolderMapping{Drive: "Y:", Path: `\\fs02\eng`}))
	f.fake.On(runnertest.Fail(2, "System error 67 has occurred."), "net", "use", "Z:", `\\fs02\uschi`)
	home := f.browser.Root()

	report, err := f.drives.Map(ctx, models.American)

	require.NoError(t, err)
	assert.Equal(t, mapper.Aborted, report.Final)
	assert.Equal(t, 0, report.FailedAt)
	assert.ErrorIs(t, report.Err(), runner.ErrNonZeroExit)
	assert.NotContains(t, f.fake.Commands(), `net use Y: \\fs02\eng`)
	assert.Equal(t, home, f.browser.Root())
}

func TestDriveMapped(t *testing.T) {
	f := newFixture(t)
	f.fake.On(runnertest.OK("OK  N:  \\\\banet.loc\\baw  Microsoft Windows Network\r\n"), "net", "use")

	out, err := f.drives.Mapped(context.Background())

	require.NoError(t, err)
	assert.Contains(t, out, `\\banet.loc\baw`)
	require.Len(t, f.fake.Calls(), 1)
	assert.Equal(t, f.cfg.CommandTimeout, f.fake.Calls()[0].Timeout)
}

func TestDriveMapped_Error(t *testing.T) {
	f := newFixture(t)
	f.fake.On(runner.Result{Outcome: runner.TimedOut}, "net", "use")

	_, err := f.drives.Mapped(context.Background())

	require.ErrorIs(t, err, runner.ErrTimeout)
}

func TestDriveBusy(t *testing.T) {
	f := newFixture(t)

	started := make(chan struct{})
	release := make(chan struct{})
	f.fake.OnRun = func(argv []string) {
		if len(argv) > 3 && argv[3] == "/delete" {
			close(started)
			<-release
		}
	}

	assert.False(t, f.drives.Busy(models.German))

	done := make(chan error, 1)
	go func() {
		_, err := f.drives.Map(context.Background(), models.German)
		done <- err
	}()
	<-started

	assert.True(t, f.drives.Busy(models.German))
	assert.False(t, f.drives.Busy(models.American))

	close(release)
	require.NoError(t, <-done)
	assert.False(t, f.drives.Busy(models.German))
}
