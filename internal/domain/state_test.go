package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefaults(t *testing.T) Defaults {
	t.Helper()
	return Defaults{
		Mode:      ModeCountdown,
		Countdown: mustParse(t, "10:00"),
		Work:      mustParse(t, "25:00"),
		Break:     mustParse(t, "5:00"),
		Style:     StyleFull,
		Notify:    true,
		Blink:     true,
	}
}

func TestNewAppState(t *testing.T) {
	now := time.Date(2025, 6, 1, 15, 0, 0, 0, time.Local)
	s := NewAppState(testDefaults(t), now)

	assert.Equal(t, ModeCountdown, s.ActiveMode)
	assert.Equal(t, mustParse(t, "10:00"), s.Countdown.Current())
	assert.Equal(t, mustParse(t, "25:00"), s.Pomodoro.WorkClock().Initial())
	assert.Equal(t, mustParse(t, "5:00"), s.Pomodoro.BreakClock().Initial())
	assert.True(t, s.Timer.Current().IsZero())

	// Default event target is the next midnight.
	want := time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local)
	assert.True(t, s.Event.Target().Equal(want))
}

func TestCycleMode(t *testing.T) {
	s := NewAppState(testDefaults(t), time.Now())

	order := []Mode{ModeTimer, ModePomodoro, ModeEvent, ModeLocalTime, ModeCountdown}
	for _, want := range order {
		s.CycleMode(false)
		assert.Equal(t, want, s.ActiveMode)
	}
	s.CycleMode(true)
	assert.Equal(t, ModeLocalTime, s.ActiveMode)
}

func TestModeSwitchIsLossless(t *testing.T) {
	s := NewAppState(testDefaults(t), time.Now())
	s.Countdown.Start()
	s.Countdown.Tick(600)
	before := s.Countdown.Current()

	s.CycleMode(false)
	s.CycleMode(false)
	s.CycleMode(true)
	s.CycleMode(true)

	assert.Equal(t, ModeCountdown, s.ActiveMode)
	assert.Equal(t, before, s.Countdown.Current())
	assert.Equal(t, Running, s.Countdown.State())
}

func TestModeAndStyleNames(t *testing.T) {
	for _, name := range ModeNames() {
		m, err := ModeFromName(name)
		require.NoError(t, err)
		assert.Equal(t, name, m.String())
	}
	for _, name := range StyleNames() {
		st, err := StyleFromName(name)
		require.NoError(t, err)
		assert.Equal(t, name, st.String())
	}

	_, err := ModeFromName("stopwatch")
	assert.Error(t, err)
	_, err = StyleFromName("neon")
	assert.Error(t, err)
}

func TestStyleNext(t *testing.T) {
	s := StyleFull
	for i := 0; i < len(StyleNames()); i++ {
		s = s.Next()
	}
	assert.Equal(t, StyleFull, s, "cycling all styles wraps around")
}

func TestLocalTimeFormats(t *testing.T) {
	now := time.Date(2025, 6, 1, 15, 4, 5, 0, time.Local)
	l := NewLocalTime(FormatHMS)

	assert.Equal(t, "15:04:05", l.Render(now))
	l.CycleFormat()
	assert.Equal(t, "15:04", l.Render(now))
	l.CycleFormat()
	assert.Equal(t, "3:04:05 PM", l.Render(now))
	l.CycleFormat()
	assert.Equal(t, "15:04:05", l.Render(now))
}
