package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPomodoro(t *testing.T) Pomodoro {
	t.Helper()
	return NewPomodoro(mustParse(t, "25:00"), mustParse(t, "5:00"))
}

func TestPomodoroAutoFlip(t *testing.T) {
	p := newTestPomodoro(t)
	assert.Equal(t, Work, p.ActiveSide())
	assert.Equal(t, uint32(0), p.Rounds())

	p.Start()
	events := 0
	for i := 0; i < 25*60*10; i++ {
		if p.Tick(1) == ReachedZero {
			events++
		}
	}
	assert.Equal(t, 1, events)
	assert.Equal(t, Break, p.ActiveSide())
	assert.Equal(t, uint32(0), p.Rounds(), "work completing does not count a round")
	assert.Equal(t, Running, p.State(), "incoming side starts automatically")
	assert.Equal(t, mustParse(t, "5:00"), p.Current())

	for i := 0; i < 5*60*10; i++ {
		if p.Tick(1) == ReachedZero {
			events++
		}
	}
	assert.Equal(t, 2, events)
	assert.Equal(t, Work, p.ActiveSide())
	assert.Equal(t, uint32(1), p.Rounds(), "break completing counts one round")
	assert.Equal(t, mustParse(t, "25:00"), p.Current())
}

func TestPomodoroAlternation(t *testing.T) {
	p := NewPomodoro(mustParse(t, "2"), mustParse(t, "1"))
	p.Start()

	flips := 0
	side := p.ActiveSide()
	const rounds = 3
	for p.Rounds() < rounds {
		p.Tick(1)
		if p.ActiveSide() != side {
			flips++
			side = p.ActiveSide()
		}
	}
	assert.Equal(t, 2*rounds, flips)
	assert.Equal(t, Work, p.ActiveSide())
}

func TestPomodoroManualSwitch(t *testing.T) {
	p := newTestPomodoro(t)
	p.Start()
	p.Tick(600)

	p.SwitchSide()
	assert.Equal(t, Break, p.ActiveSide())
	assert.Equal(t, uint32(0), p.Rounds(), "manual switch never counts a round")
	assert.Equal(t, Paused, p.WorkClock().State(), "left side keeps its value paused")
	assert.Equal(t, mustParse(t, "24:00"), p.WorkClock().Current())

	p.SwitchSide()
	assert.Equal(t, Work, p.ActiveSide())
	assert.Equal(t, mustParse(t, "24:00"), p.Current())
}

func TestPomodoroOvershootSpansIncomingSide(t *testing.T) {
	p := NewPomodoro(mustParse(t, "1"), mustParse(t, "1"))
	p.Start()
	// One huge lagged step: work (10) + break (10) + 5 into the next work.
	require.Equal(t, ReachedZero, p.Tick(25))
	assert.Equal(t, Work, p.ActiveSide())
	assert.Equal(t, uint32(1), p.Rounds())
	assert.Equal(t, int64(5), p.Current().Decis())
}

func TestPomodoroResetAll(t *testing.T) {
	p := newTestPomodoro(t)
	p.Start()
	for p.Rounds() < 1 {
		p.Tick(100)
	}
	p.SwitchSide()

	p.ResetAll()
	assert.Equal(t, Work, p.ActiveSide())
	assert.Equal(t, uint32(0), p.Rounds())
	assert.Equal(t, Initial, p.WorkClock().State())
	assert.Equal(t, Initial, p.BreakClock().State())
	assert.Equal(t, mustParse(t, "25:00"), p.Current())
}

func TestPomodoroEditActiveSide(t *testing.T) {
	p := newTestPomodoro(t)
	p.EnterEdit()
	require.True(t, p.InEdit())

	// Edits apply to the active (work) side only.
	p.WorkClock().EditNextField()
	p.WorkClock().AdjustEdit(5)
	p.CommitEdit()

	assert.Equal(t, mustParse(t, "30:00"), p.WorkClock().Initial())
	assert.Equal(t, mustParse(t, "5:00"), p.BreakClock().Initial())
}

func TestPomodoroZeroBreakParksDone(t *testing.T) {
	p := NewPomodoro(mustParse(t, "0:01"), Duration{})
	p.Start()

	require.Equal(t, ReachedZero, p.Tick(10))
	assert.Equal(t, Break, p.ActiveSide())
	assert.Equal(t, Done, p.State(), "a zero break has nothing to run")

	// The parked side never ticks and never flips back by itself.
	for i := 0; i < 100; i++ {
		assert.Equal(t, NoTransition, p.Tick(1))
	}
	assert.Equal(t, Break, p.ActiveSide())
	assert.Equal(t, uint32(0), p.Rounds())

	// Switching sides recovers: the work side resets and can run again.
	p.SwitchSide()
	assert.Equal(t, Work, p.ActiveSide())
	p.Start()
	assert.Equal(t, Running, p.State())
}
