package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) Duration {
	t.Helper()
	d, err := ParseDuration(text)
	require.NoError(t, err)
	return d
}

func TestClockLifecycle(t *testing.T) {
	c := NewClock(CountDown, mustParse(t, "1"))
	assert.Equal(t, Initial, c.State())

	c.Start()
	assert.Equal(t, Running, c.State())

	c.Pause()
	assert.Equal(t, Paused, c.State())

	c.Start()
	assert.Equal(t, Running, c.State())

	assert.Equal(t, NoTransition, c.Tick(9))
	assert.Equal(t, ReachedZero, c.Tick(1))
	assert.Equal(t, Done, c.State())

	// Done clocks ignore Start until reset.
	c.Start()
	assert.Equal(t, Done, c.State())

	c.Reset()
	assert.Equal(t, Initial, c.State())
	assert.Equal(t, mustParse(t, "1"), c.Current())
}

func TestClockTickOnlyWhileRunning(t *testing.T) {
	c := NewClock(CountDown, mustParse(t, "10"))

	assert.Equal(t, NoTransition, c.Tick(50))
	assert.Equal(t, mustParse(t, "10"), c.Current(), "Initial clocks do not step")

	c.Start()
	c.Pause()
	c.Tick(50)
	assert.Equal(t, mustParse(t, "10"), c.Current(), "Paused clocks do not step")
}

func TestClockReachedZeroExactlyOnce(t *testing.T) {
	c := NewClock(CountDown, mustParse(t, "10"))
	c.Start()

	events := 0
	for i := 0; i < 200; i++ {
		if c.Tick(1) == ReachedZero {
			events++
		}
	}
	assert.Equal(t, 1, events)
	assert.True(t, c.Current().IsZero())

	// After reset and another full run, the edge fires again.
	c.Reset()
	c.Start()
	for i := 0; i < 200; i++ {
		if c.Tick(1) == ReachedZero {
			events++
		}
	}
	assert.Equal(t, 2, events)
}

func TestClockCoalescedTickCrossing(t *testing.T) {
	c := NewClock(CountDown, mustParse(t, "1"))
	c.Start()
	assert.Equal(t, ReachedZero, c.Tick(500), "a lagged multi-tick step still crosses once")
	assert.True(t, c.Current().IsZero())
}

func TestCountUpClock(t *testing.T) {
	c := NewClock(CountUp, Duration{})
	c.Start()
	c.Tick(25)
	assert.Equal(t, int64(25), c.Current().Decis())
	assert.Equal(t, Running, c.State())

	c.Reset()
	assert.True(t, c.Current().IsZero())
}

func TestCountUpSaturatesAsDone(t *testing.T) {
	c := RestoreClock(CountUp, Duration{}, FromDecis(Max().Decis()-1), Paused)
	c.Start()
	assert.Equal(t, ReachedZero, c.Tick(1))
	assert.Equal(t, Done, c.State())
	assert.Equal(t, NoTransition, c.Tick(1))
	assert.True(t, c.Current().IsMax())
}

func TestClockEditCancelRestores(t *testing.T) {
	c := NewClock(CountDown, mustParse(t, "5:00"))
	c.Start()
	c.Tick(100)
	before := c.Current()

	c.EnterEdit()
	require.NotNil(t, c.Edit())
	assert.Equal(t, NoTransition, c.Tick(100), "editing suspends ticking")

	c.AdjustEdit(30)
	c.EditNextField()
	c.AdjustEdit(2)
	c.CancelEdit()

	assert.Nil(t, c.Edit())
	assert.Equal(t, before, c.Current())
	assert.Equal(t, mustParse(t, "5:00"), c.Initial())
	assert.Equal(t, Running, c.State())
}

func TestClockEditCommit(t *testing.T) {
	c := NewClock(CountDown, mustParse(t, "5:00"))
	c.Start()
	c.Pause()

	c.EnterEdit()
	c.EditNextField() // minutes
	c.AdjustEdit(10)
	c.CommitEdit()

	want := mustParse(t, "15:00")
	assert.Equal(t, want, c.Initial())
	assert.Equal(t, want, c.Current())
	assert.Equal(t, Paused, c.State())
}

func TestClockEditFieldCursor(t *testing.T) {
	c := NewClock(CountDown, Duration{})
	c.EnterEdit()
	assert.Equal(t, FieldSeconds, c.Edit().Field)
	c.EditNextField()
	assert.Equal(t, FieldMinutes, c.Edit().Field)
	c.EditNextField()
	assert.Equal(t, FieldHours, c.Edit().Field)
	c.EditNextField()
	assert.Equal(t, FieldSeconds, c.Edit().Field)
	c.EditPrevField()
	assert.Equal(t, FieldHours, c.Edit().Field)
}

func TestClockEditIllegalFromDone(t *testing.T) {
	c := NewClock(CountDown, mustParse(t, "1"))
	c.Start()
	c.Tick(10)
	require.Equal(t, Done, c.State())

	c.EnterEdit()
	assert.Nil(t, c.Edit())
}

func TestClockAdjustSaturates(t *testing.T) {
	c := NewClock(CountDown, Duration{})
	c.EnterEdit()
	c.AdjustEdit(-5)
	assert.True(t, c.Edit().Pending.IsZero())
}

func TestRestoreClockNeverRunning(t *testing.T) {
	c := RestoreClock(CountDown, mustParse(t, "10"), mustParse(t, "5"), Running)
	assert.Equal(t, Paused, c.State())
	assert.Equal(t, mustParse(t, "5"), c.Current())

	c = RestoreClock(CountDown, mustParse(t, "10"), mustParse(t, "10"), Initial)
	assert.Equal(t, Initial, c.State())
}

func TestSaveAsInitial(t *testing.T) {
	c := NewClock(CountDown, mustParse(t, "10:00"))
	c.Start()
	c.Tick(600)
	c.SaveAsInitial()
	assert.Equal(t, c.Current(), c.Initial())
	c.Reset()
	assert.Equal(t, mustParse(t, "9:00"), c.Current())
}

func TestStartZeroCountdownGoesStraightDone(t *testing.T) {
	c := NewClock(CountDown, Duration{})
	c.Start()
	assert.Equal(t, Done, c.State())
	assert.Equal(t, NoTransition, c.Tick(1), "no crossing happened")

	// Count-up clocks start from zero by definition and must still run.
	up := NewClock(CountUp, Duration{})
	up.Start()
	assert.Equal(t, Running, up.State())
}

func TestCommitZeroEditWhileRunningGoesDone(t *testing.T) {
	c := NewClock(CountDown, mustParse(t, "10"))
	c.Start()
	c.EnterEdit()
	c.AdjustEdit(-10)
	require.True(t, c.Edit().Pending.IsZero())
	c.CommitEdit()
	assert.Equal(t, Done, c.State())
	assert.Equal(t, NoTransition, c.Tick(1))
}
