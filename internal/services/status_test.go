package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/vpnkeeper/internal/runner"
	"github.com/dmitrijs2005/vpnkeeper/internal/runner/runnertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusReport(t *testing.T) {
	f := newFixture(t)
	f.fake.On(runnertest.OK("wgsslvpnc.exe 4242 Console"), "tasklist")
	f.fake.On(runnertest.OK("OK  N:  \\\\banet.loc\\baw"), "net", "use")

	st, err := StatusReport(context.Background(), f.vpn(), f.drives)

	require.NoError(t, err)
	assert.Equal(t, StatusNone, st.Profile)
	assert.True(t, st.ClientRunning)
	assert.Contains(t, st.Mapped, "N:")
	assert.Len(t, f.fake.Calls(), 2)
}

func TestStatusReport_ProbeFailure(t *testing.T) {
	f := newFixture(t)
	f.fake.On(runnertest.Fail(2, "The network connection could not be found."), "net", "use")

	st, err := StatusReport(context.Background(), f.vpn(), f.drives)

	require.ErrorIs(t, err, runner.ErrNonZeroExit)
	require.NotNil(t, st)
	assert.Empty(t, st.Mapped)
}

func TestStatusReport_FailingProbeKeepsSlowerOne(t *testing.T) {
	f := newFixture(t)
	f.fake.On(runnertest.Fail(1, "access denied"), "tasklist")
	f.fake.On(runnertest.OK("OK  N:  \\\\banet.loc\\baw"), "net", "use")

	tasklistDone := make(chan struct{})
	f.fake.OnRun = func(argv []string) {
		switch argv[0] {
		case "tasklist":
			close(tasklistDone)
		case "net":
			<-tasklistDone
			time.Sleep(50 * time.Millisecond)
		}
	}

	st, err := StatusReport(context.Background(), f.vpn(), f.drives)

	require.ErrorIs(t, err, runner.ErrNonZeroExit)
	assert.Contains(t, err.Error(), "access denied")
	assert.False(t, st.ClientRunning)
	assert.Contains(t, st.Mapped, `\\banet.loc\baw`)
}
