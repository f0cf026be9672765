package breathing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunnerStartUnknownExerciseLeavesStateUntouched(t *testing.T) {
	r := NewRunner(time.Hour)

	_, err := r.Start("box-breathing")
	require.NoError(t, err)
	before := r.Snapshot()

	_, err = r.Start("nonexistent")
	require.Error(t, err)
	assert.Equal(t, before, r.Snapshot(), "failed start must not touch the previous session")

	r.Stop()
}

func TestRunnerStop(t *testing.T) {
	r := NewRunner(time.Hour)

	_, err := r.Start("box-breathing")
	require.NoError(t, err)
	require.False(t, r.Snapshot().Idle())

	r.Stop()
	assert.True(t, r.Snapshot().Idle())

	// stop when already idle is a no-op
	r.Stop()
	assert.True(t, r.Snapshot().Idle())
}

func TestRunnerRestartReplacesSession(t *testing.T) {
	r := NewRunner(time.Hour)

	_, err := r.Start("box-breathing")
	require.NoError(t, err)

	s, err := r.Restart("calming-breath")
	require.NoError(t, err)
	assert.Equal(t, "calming-breath", string(s.Exercise))
	assert.Equal(t, 1, s.CycleIndex)

	r.Stop()
}

func TestRunnerCompletesToIdle(t *testing.T) {
	r := NewRunner(time.Millisecond)

	_, err := r.Start("box-breathing")
	require.NoError(t, err)
	done := r.Done()
	require.NotNil(t, done)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("session did not complete")
	}

	assert.True(t, r.Snapshot().Idle(), "completed session must collapse to idle")
}

func TestRunnerStartCancelsPreviousTicker(t *testing.T) {
	r := NewRunner(time.Millisecond)

	_, err := r.Start("box-breathing")
	require.NoError(t, err)
	firstDone := r.Done()

	_, err = r.Start("calming-breath")
	require.NoError(t, err)

	// the first ticker was cancelled, so its done channel never closes
	select {
	case <-firstDone:
		t.Fatal("cancelled session reported completion")
	case <-time.After(200 * time.Millisecond):
	}

	r.Stop()
}

func TestRegistryOneRunnerPerUser(t *testing.T) {
	g := NewRegistry(time.Hour)

	a := g.ForUser(1)
	b := g.ForUser(2)
	assert.NotSame(t, a, b)
	assert.Same(t, a, g.ForUser(1))

	_, err := a.Start("box-breathing")
	require.NoError(t, err)
	g.StopAll()
	assert.True(t, a.Snapshot().Idle())
}
