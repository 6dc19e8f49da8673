package retrofmt

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimUI(t *testing.T) *UI {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	u := &UI{s: s, stopChan: make(chan struct{})}
	go u.eventLoop()
	return u
}

func TestRequestStopAfterClose(t *testing.T) {
	u := newSimUI(t)
	u.Close()
	u.RequestStop()
	assert.True(t, u.IsStopped())
}

func TestRequestStopIdempotent(t *testing.T) {
	u := newSimUI(t)
	defer u.Close()
	u.RequestStop()
	u.RequestStop()
	assert.True(t, u.IsStopped())
}

func TestIsStoppedBeforeRequest(t *testing.T) {
	u := newSimUI(t)
	defer u.Close()
	assert.False(t, u.IsStopped())
}

func TestMarkTrackBounds(t *testing.T) {
	u := newSimUI(t)
	defer u.Close()
	u.SetTrackCount(3)
	u.MarkTrack(-1)
	u.MarkTrack(3)
	u.MarkTrack(1)
	assert.Equal(t, []bool{false, true, false}, u.trackDone)
}
