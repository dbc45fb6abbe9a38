package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdownRunsToDone(t *testing.T) {
	c := NewCountdown(mustParse(t, "10:00"), false)
	c.Start()

	events := 0
	for i := 0; i < 6000; i++ {
		if c.Tick(1) == ReachedZero {
			events++
		}
	}
	assert.Equal(t, 1, events, "exactly one ReachedZero across the whole run")
	assert.Equal(t, Done, c.State())
	assert.True(t, c.Current().IsZero())

	// Saturated ticks stay silent.
	for i := 0; i < 100; i++ {
		assert.Equal(t, NoTransition, c.Tick(1))
	}
}

func TestCountdownMetContinuesPastZero(t *testing.T) {
	c := NewCountdown(mustParse(t, "5"), true)
	c.Start()

	events := 0
	for i := 0; i < 100; i++ {
		if c.Tick(1) == ReachedZero {
			events++
		}
	}
	require.Equal(t, 1, events)
	assert.True(t, c.InMet())
	assert.True(t, c.Current().IsZero())
	assert.Equal(t, int64(100-50), c.Elapsed().Decis())

	// Elapsed keeps growing, the edge never refires.
	prev := c.Elapsed()
	for i := 0; i < 100; i++ {
		assert.Equal(t, NoTransition, c.Tick(1))
		assert.Equal(t, -1, prev.Cmp(c.Elapsed()))
		prev = c.Elapsed()
	}
}

func TestCountdownMetOvershootCarries(t *testing.T) {
	c := NewCountdown(mustParse(t, "1"), true)
	c.Start()
	// One lagged step of 3.4s: 1s to zero, 2.4s past it.
	assert.Equal(t, ReachedZero, c.Tick(34))
	assert.Equal(t, int64(24), c.Elapsed().Decis())
}

func TestCountdownMetPauseResume(t *testing.T) {
	c := NewCountdown(mustParse(t, "1"), true)
	c.Start()
	c.Tick(10)
	require.True(t, c.InMet())

	c.Pause()
	c.Tick(10)
	assert.True(t, c.Elapsed().IsZero(), "paused MET does not accumulate")

	c.Start()
	c.Tick(10)
	assert.Equal(t, int64(10), c.Elapsed().Decis())
}

func TestCountdownResetClearsMet(t *testing.T) {
	c := NewCountdown(mustParse(t, "1"), true)
	c.Start()
	c.Tick(30)
	require.False(t, c.Elapsed().IsZero())

	c.Reset()
	assert.Equal(t, Initial, c.State())
	assert.False(t, c.InMet())
	assert.True(t, c.Elapsed().IsZero())
	assert.Equal(t, mustParse(t, "1"), c.Current())
}

func TestCountdownSetInitialClearsMet(t *testing.T) {
	c := NewCountdown(mustParse(t, "1"), true)
	c.Start()
	c.Tick(30)

	c.SetInitial(mustParse(t, "2:00"))
	assert.False(t, c.InMet())
	assert.True(t, c.Elapsed().IsZero())
	assert.Equal(t, mustParse(t, "2:00"), c.Current())
	assert.Equal(t, Initial, c.State())
}

func TestCountdownDisableMetFreezesElapsed(t *testing.T) {
	c := NewCountdown(mustParse(t, "1"), true)
	c.Start()
	c.Tick(25)
	frozen := c.Elapsed()

	c.SetMetEnabled(false)
	c.Tick(25)
	assert.Equal(t, frozen, c.Elapsed())

	c.SetMetEnabled(true)
	c.Tick(25)
	assert.Equal(t, frozen.AddTicks(25), c.Elapsed())
}

func TestRestoreCountdownRunningBecomesPaused(t *testing.T) {
	c := RestoreCountdown(mustParse(t, "10"), mustParse(t, "4"), Running, false, Duration{})
	assert.Equal(t, Paused, c.State())
	assert.Equal(t, mustParse(t, "4"), c.Current())
}
