package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriver_RunsToFinished(t *testing.T) {
	// Given a driver over a short window with no forcing active,
	ctx, _, _, _ := newTestContext(t)
	ctx.Config.DisableRain = true
	ctx.Config.DisableET = true
	driver := NewDriver(ctx)

	// When it runs to completion,
	err := driver.Run()

	// Then it finishes cleanly in the Finished state.
	require.NoError(t, err)
	assert.Equal(t, StateFinished, driver.State())
}

func TestDriver_PauseThenHaltExitsHalted(t *testing.T) {
	// Given a driver over a long-enough window that it won't finish before
	// the test can pause it,
	ctx, _, _, _ := newTestContext(t)
	ctx.Clock.End = ctx.Clock.Start.Add(24 * time.Hour)
	driver := NewDriver(ctx)

	done := make(chan error, 1)
	go func() { done <- driver.Run() }()
	time.Sleep(10 * time.Millisecond)

	// When Pause is requested,
	driver.Pause()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, StatePaused, driver.State())
	driver.Halt()

	// Then the run unblocks and exits in the Halted state.
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("driver did not exit after Halt")
	}
	assert.Equal(t, StateHalted, driver.State())
}

func TestDriver_HaltFromRunningStopsAtNextStep(t *testing.T) {
	// Given a long-running driver,
	ctx, _, _, _ := newTestContext(t)
	ctx.Clock.End = ctx.Clock.Start.Add(24 * time.Hour)
	driver := NewDriver(ctx)

	done := make(chan error, 1)
	go func() { done <- driver.Run() }()

	// When Halt is requested,
	driver.Halt()

	// Then the run exits promptly in the Halted state.
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("driver did not exit after Halt")
	}
	assert.Equal(t, StateHalted, driver.State())
}
