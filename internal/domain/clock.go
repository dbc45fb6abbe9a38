package domain

// RunState is the lifecycle phase of a stepped timer.
type RunState int

const (
	Initial RunState = iota
	Running
	Paused
	Done
)

func (s RunState) String() string {
	switch s {
	case Initial:
		return "initial"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// TransitionEvent is the edge-triggered outcome of a tick step.
type TransitionEvent int

const (
	// NoTransition means the tick changed nothing noteworthy.
	NoTransition TransitionEvent = iota
	// ReachedZero fires exactly once, on the tick that first crosses
	// the boundary (zero for countdowns, Max for count-ups).
	ReachedZero
)

// Direction selects whether a Clock steps toward zero or away from it.
type Direction int

const (
	CountDown Direction = iota
	CountUp
)

// EditField is the cursor position inside an edit session.
type EditField int

const (
	FieldSeconds EditField = iota
	FieldMinutes
	FieldHours
)

// EditSession is the overlay state while the user revises a clock's
// value. It keeps enough of the prior state to restore it on cancel.
type EditSession struct {
	Field     EditField
	Pending   Duration
	prevValue Duration
	prevState RunState
}

// Clock is the run/pause/done state machine shared by the countdown,
// timer and both pomodoro sides. It owns an initial value, a current
// value and a RunState, and steps in deciseconds.
type Clock struct {
	direction Direction
	initial   Duration
	current   Duration
	state     RunState
	edit      *EditSession
}

// NewClock builds a clock in Initial with current set to initial.
// Count-up clocks start from zero regardless of initial.
func NewClock(direction Direction, initial Duration) Clock {
	c := Clock{direction: direction, initial: initial}
	if direction == CountDown {
		c.current = initial
	}
	return c
}

// RestoreClock rebuilds a clock from persisted fields. A persisted
// Running state reloads as Paused so a restart never silently burns
// time in the background.
func RestoreClock(direction Direction, initial, current Duration, state RunState) Clock {
	if state == Running {
		state = Paused
	}
	return Clock{direction: direction, initial: initial, current: current, state: state}
}

func (c *Clock) Initial() Duration { return c.initial }
func (c *Clock) Current() Duration { return c.current }
func (c *Clock) State() RunState   { return c.state }
func (c *Clock) IsRunning() bool   { return c.state == Running }
func (c *Clock) IsDone() bool      { return c.state == Done }

// Edit returns the active edit session, or nil.
func (c *Clock) Edit() *EditSession { return c.edit }

// Start moves Initial or Paused into Running. Illegal states no-op.
// A countdown already at zero has nothing left to run and goes
// straight to Done; Tick only reports a crossing while decis remain,
// so such a clock would otherwise sit Running forever.
func (c *Clock) Start() {
	if c.edit != nil || c.state == Done {
		return
	}
	if c.direction == CountDown && c.current.IsZero() {
		c.state = Done
		return
	}
	c.state = Running
}

// Pause moves Running into Paused. Illegal states no-op.
func (c *Clock) Pause() {
	if c.edit != nil || c.state != Running {
		return
	}
	c.state = Paused
}

// Toggle flips between Running and Paused (Initial counts as paused).
func (c *Clock) Toggle() {
	if c.state == Running {
		c.Pause()
	} else {
		c.Start()
	}
}

// Reset returns to Initial with current restored. It also discards
// any open edit session.
func (c *Clock) Reset() {
	c.edit = nil
	c.state = Initial
	if c.direction == CountDown {
		c.current = c.initial
	} else {
		c.current = Duration{}
	}
}

// SetInitial replaces the initial value and resets the clock.
func (c *Clock) SetInitial(d Duration) {
	c.initial = d
	c.Reset()
}

// Tick advances the clock by n deciseconds. It does nothing unless
// the clock is Running and no edit is open. ReachedZero is returned
// only on the step that crosses the boundary.
func (c *Clock) Tick(n int64) TransitionEvent {
	if c.state != Running || c.edit != nil {
		return NoTransition
	}
	if c.direction == CountDown {
		next, crossed := c.current.SubTicks(n)
		c.current = next
		if crossed {
			c.state = Done
			return ReachedZero
		}
		return NoTransition
	}
	wasMax := c.current.IsMax()
	c.current = c.current.AddTicks(n)
	if c.current.IsMax() && !wasMax {
		c.state = Done
		return ReachedZero
	}
	return NoTransition
}

// EnterEdit opens the edit overlay. Only legal from Initial, Running
// or Paused; ticking is implicitly suspended while the edit is open.
func (c *Clock) EnterEdit() {
	if c.edit != nil || c.state == Done {
		return
	}
	c.edit = &EditSession{
		Field:     FieldSeconds,
		Pending:   c.current,
		prevValue: c.current,
		prevState: c.state,
	}
}

// EditNextField moves the cursor toward larger units, wrapping.
func (c *Clock) EditNextField() {
	if c.edit == nil {
		return
	}
	c.edit.Field = (c.edit.Field + 1) % 3
}

// EditPrevField moves the cursor toward smaller units, wrapping.
func (c *Clock) EditPrevField() {
	if c.edit == nil {
		return
	}
	c.edit.Field = (c.edit.Field + 2) % 3
}

// AdjustEdit changes the pending value by delta units of the selected
// field, saturating at the range bounds.
func (c *Clock) AdjustEdit(delta int64) {
	if c.edit == nil {
		return
	}
	var step int64
	switch c.edit.Field {
	case FieldSeconds:
		step = decisPerSecond
	case FieldMinutes:
		step = decisPerMinute
	case FieldHours:
		step = decisPerHour
	}
	if delta >= 0 {
		c.edit.Pending = c.edit.Pending.AddTicks(delta * step)
	} else {
		c.edit.Pending, _ = c.edit.Pending.SubTicks(-delta * step)
	}
}

// CommitEdit makes the pending value the new initial (and current)
// value and restores the RunState from before the edit.
func (c *Clock) CommitEdit() {
	if c.edit == nil {
		return
	}
	c.initial = c.edit.Pending
	c.current = c.edit.Pending
	c.state = c.edit.prevState
	c.edit = nil
	if c.direction == CountDown && c.current.IsZero() && c.state == Running {
		c.state = Done
	}
}

// CancelEdit discards the pending value, leaving the clock exactly as
// it was before EnterEdit.
func (c *Clock) CancelEdit() {
	if c.edit == nil {
		return
	}
	c.current = c.edit.prevValue
	c.state = c.edit.prevState
	c.edit = nil
}

// SaveAsInitial records the current value as the new initial without
// resetting. Used by the "keep this as my new default" command.
func (c *Clock) SaveAsInitial() {
	if c.edit != nil {
		return
	}
	c.initial = c.current
}
