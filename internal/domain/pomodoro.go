package domain

// PomodoroSide names the two halves of a pomodoro cycle.
type PomodoroSide int

const (
	Work PomodoroSide = iota
	Break
)

func (s PomodoroSide) String() string {
	if s == Break {
		return "break"
	}
	return "work"
}

// Pomodoro alternates a work countdown and a break countdown. When the
// active side runs out, the other side resets to its initial value and
// starts automatically; a completed break-to-work flip counts one
// round.
type Pomodoro struct {
	work   Clock
	brk    Clock
	active PomodoroSide
	rounds uint32
}

// NewPomodoro builds a pomodoro on the work side in Initial.
func NewPomodoro(workInitial, breakInitial Duration) Pomodoro {
	return Pomodoro{
		work: NewClock(CountDown, workInitial),
		brk:  NewClock(CountDown, breakInitial),
	}
}

// RestorePomodoro rebuilds a pomodoro from persisted fields.
func RestorePomodoro(work, brk Clock, active PomodoroSide, rounds uint32) Pomodoro {
	return Pomodoro{work: work, brk: brk, active: active, rounds: rounds}
}

func (p *Pomodoro) ActiveSide() PomodoroSide { return p.active }
func (p *Pomodoro) Rounds() uint32           { return p.rounds }
func (p *Pomodoro) WorkClock() *Clock        { return &p.work }
func (p *Pomodoro) BreakClock() *Clock       { return &p.brk }

func (p *Pomodoro) activeClock() *Clock {
	if p.active == Break {
		return &p.brk
	}
	return &p.work
}

// ActiveClock exposes the clock of the active side.
func (p *Pomodoro) ActiveClock() *Clock { return p.activeClock() }

func (p *Pomodoro) Current() Duration { return p.activeClock().Current() }
func (p *Pomodoro) Initial() Duration { return p.activeClock().Initial() }
func (p *Pomodoro) State() RunState   { return p.activeClock().State() }

func (p *Pomodoro) Start()  { p.activeClock().Start() }
func (p *Pomodoro) Pause()  { p.activeClock().Pause() }
func (p *Pomodoro) Toggle() { p.activeClock().Toggle() }

// Reset restores the active side to Initial. The round counter and the
// inactive side are untouched; use ResetAll for a full reset.
func (p *Pomodoro) Reset() { p.activeClock().Reset() }

// ResetAll resets both sides, returns to Work and zeroes the rounds.
func (p *Pomodoro) ResetAll() {
	p.work.Reset()
	p.brk.Reset()
	p.active = Work
	p.rounds = 0
}

// SwitchSide manually flips the active side without touching the round
// counter. The side being left keeps its value; the incoming side is
// used as-is (a Done incoming side is reset so it can run again).
func (p *Pomodoro) SwitchSide() {
	if p.activeClock().Edit() != nil {
		return
	}
	p.activeClock().Pause()
	if p.active == Work {
		p.active = Break
	} else {
		p.active = Work
	}
	if p.activeClock().IsDone() {
		p.activeClock().Reset()
	}
}

// Tick advances the active side. On the side reaching zero the other
// side resets and starts automatically, carrying the overshoot; the
// round counter increments when a break completes (one full cycle).
func (p *Pomodoro) Tick(n int64) TransitionEvent {
	remaining := p.activeClock().Current().Decis()
	ev := p.activeClock().Tick(n)
	if ev != ReachedZero {
		return ev
	}
	overshoot := n - remaining

	if p.active == Work {
		p.active = Break
	} else {
		p.active = Work
		p.rounds++
	}
	incoming := p.activeClock()
	incoming.Reset()
	incoming.Start()
	if overshoot > 0 {
		// A lagged coalesced step may span the incoming side too.
		p.Tick(overshoot)
	}
	return ReachedZero
}

// Edit hooks apply to the active side.

func (p *Pomodoro) EnterEdit()   { p.activeClock().EnterEdit() }
func (p *Pomodoro) InEdit() bool { return p.activeClock().Edit() != nil }
func (p *Pomodoro) CommitEdit()  { p.activeClock().CommitEdit() }
func (p *Pomodoro) CancelEdit()  { p.activeClock().CancelEdit() }
