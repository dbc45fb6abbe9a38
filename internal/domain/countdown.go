package domain

// Countdown counts down from an initial value. With MET enabled,
// reaching zero does not stop the mode: a secondary count-up clock
// takes over and tracks time elapsed past the target.
type Countdown struct {
	clock      Clock
	elapsed    Clock // mission elapsed time, counts up past zero
	metEnabled bool
}

// NewCountdown builds a countdown in Initial.
func NewCountdown(initial Duration, metEnabled bool) Countdown {
	return Countdown{
		clock:      NewClock(CountDown, initial),
		elapsed:    NewClock(CountUp, Duration{}),
		metEnabled: metEnabled,
	}
}

// RestoreCountdown rebuilds a countdown from persisted fields.
func RestoreCountdown(initial, current Duration, state RunState, metEnabled bool, elapsed Duration) Countdown {
	c := Countdown{
		clock:      RestoreClock(CountDown, initial, current, state),
		elapsed:    RestoreClock(CountUp, Duration{}, elapsed, Paused),
		metEnabled: metEnabled,
	}
	return c
}

func (c *Countdown) Clock() *Clock     { return &c.clock }
func (c *Countdown) Initial() Duration { return c.clock.Initial() }
func (c *Countdown) Current() Duration { return c.clock.Current() }
func (c *Countdown) State() RunState   { return c.clock.State() }
func (c *Countdown) MetEnabled() bool  { return c.metEnabled }
func (c *Countdown) Elapsed() Duration { return c.elapsed.Current() }

// InMet reports whether the countdown has crossed zero and is now
// tracking elapsed time past the target.
func (c *Countdown) InMet() bool {
	return c.metEnabled && c.clock.IsDone()
}

// SetMetEnabled toggles MET. Disabling it while past zero freezes the
// elapsed clock; the countdown stays Done.
func (c *Countdown) SetMetEnabled(on bool) {
	c.metEnabled = on
	if !on {
		c.elapsed.Pause()
	} else if c.clock.IsDone() {
		c.elapsed.Start()
	}
}

// Start resumes ticking. Past zero with MET it resumes the elapsed
// clock instead of the main one.
func (c *Countdown) Start() {
	if c.InMet() {
		c.elapsed.Start()
		return
	}
	c.clock.Start()
}

// Pause suspends whichever clock is ticking.
func (c *Countdown) Pause() {
	if c.InMet() {
		c.elapsed.Pause()
		return
	}
	c.clock.Pause()
}

// Toggle flips run/pause on the ticking clock.
func (c *Countdown) Toggle() {
	if c.InMet() {
		c.elapsed.Toggle()
		return
	}
	c.clock.Toggle()
}

// Reset returns to Initial and clears any accumulated elapsed time.
func (c *Countdown) Reset() {
	c.clock.Reset()
	c.elapsed = NewClock(CountUp, Duration{})
}

// SetInitial replaces the initial value and resets, clearing MET.
func (c *Countdown) SetInitial(d Duration) {
	c.clock.SetInitial(d)
	c.elapsed = NewClock(CountUp, Duration{})
}

// Tick advances by n deciseconds. The ReachedZero edge fires exactly
// once at the crossing; with MET enabled the mode keeps going and the
// elapsed clock starts from the overshoot remainder.
func (c *Countdown) Tick(n int64) TransitionEvent {
	if c.InMet() {
		c.elapsed.Tick(n)
		return NoTransition
	}
	remaining := c.clock.Current().Decis()
	ev := c.clock.Tick(n)
	if ev == ReachedZero && c.metEnabled {
		overshoot := n - remaining
		c.elapsed = NewClock(CountUp, Duration{})
		c.elapsed.Start()
		if overshoot > 0 {
			c.elapsed.Tick(overshoot)
		}
	}
	return ev
}

// Edit hooks delegate to the main clock. Committing or cancelling an
// edit clears MET state since the target moved.

func (c *Countdown) EnterEdit()   { c.clock.EnterEdit() }
func (c *Countdown) InEdit() bool { return c.clock.Edit() != nil }

func (c *Countdown) CommitEdit() {
	c.clock.CommitEdit()
	c.elapsed = NewClock(CountUp, Duration{})
}

func (c *Countdown) CancelEdit() { c.clock.CancelEdit() }
