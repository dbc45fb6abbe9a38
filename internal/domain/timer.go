package domain

// Timer counts up from zero. It only stops by saturating at the range
// maximum, which is treated as Done.
type Timer struct {
	clock Clock
}

// NewTimer builds a timer at zero in Initial.
func NewTimer() Timer {
	return Timer{clock: NewClock(CountUp, Duration{})}
}

// RestoreTimer rebuilds a timer from persisted fields.
func RestoreTimer(current Duration, state RunState) Timer {
	return Timer{clock: RestoreClock(CountUp, Duration{}, current, state)}
}

func (t *Timer) Clock() *Clock     { return &t.clock }
func (t *Timer) Current() Duration { return t.clock.Current() }
func (t *Timer) State() RunState   { return t.clock.State() }

func (t *Timer) Start()  { t.clock.Start() }
func (t *Timer) Pause()  { t.clock.Pause() }
func (t *Timer) Toggle() { t.clock.Toggle() }
func (t *Timer) Reset()  { t.clock.Reset() }

func (t *Timer) Tick(n int64) TransitionEvent { return t.clock.Tick(n) }

func (t *Timer) EnterEdit()   { t.clock.EnterEdit() }
func (t *Timer) InEdit() bool { return t.clock.Edit() != nil }
func (t *Timer) CommitEdit()  { t.clock.CommitEdit() }
func (t *Timer) CancelEdit()  { t.clock.CancelEdit() }
