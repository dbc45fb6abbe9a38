// Package app holds the application reducer: the single goroutine that
// owns AppState, consumes the merged event stream and decides when to
// persist state or dispatch notifications.
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/dkrenn/tempus/internal/domain"
	"github.com/dkrenn/tempus/internal/events"
	"github.com/dkrenn/tempus/internal/ports"
)

const (
	// blinkWindowTicks is how long the visual done flag stays armed
	// after a completion (~3 s).
	blinkWindowTicks = 30
	// blinkPhaseTicks is the on/off cadence inside the window.
	blinkPhaseTicks = 5
	// statusTicks is how long transient status text stays visible.
	statusTicks = 50
)

// Options wires an Engine. State and Bus are required; everything else
// degrades to a no-op when absent.
type Options struct {
	State    *domain.AppState
	Bus      *events.Bus
	Notifier ports.Notifier
	Store    ports.StateStore
	History  ports.HistoryStore
	Detector ports.ContextDetector
	Logger   zerolog.Logger
	Render   func(Snapshot)
	Now      func() time.Time
	Workdir  string
}

// Engine is the reducer loop. All AppState mutation happens on the
// goroutine running Run; producers only ever publish events.
type Engine struct {
	state    *domain.AppState
	bus      *events.Bus
	notifier ports.Notifier
	store    ports.StateStore
	history  ports.HistoryStore
	log      zerolog.Logger
	render   func(Snapshot)
	now      func() time.Time

	repo          ports.RepoContext
	width, height int
	blinkLeft     int
	statusLeft    int
	statusMsg     string
	textEdit      *textEditor
	quitting      bool
}

// New builds an engine over an already-initialized state.
func New(opts Options) *Engine {
	e := &Engine{
		state:    opts.State,
		bus:      opts.Bus,
		notifier: opts.Notifier,
		store:    opts.Store,
		history:  opts.History,
		log:      opts.Logger,
		render:   opts.Render,
		now:      opts.Now,
	}
	if e.now == nil {
		e.now = time.Now
	}
	if opts.Detector != nil {
		if repo, ok := opts.Detector.Detect(opts.Workdir); ok {
			e.repo = repo
		}
	}
	return e
}

// State exposes the reduced state for tests.
func (e *Engine) State() *domain.AppState { return e.state }

// Run consumes the bus until quit or cancellation, rendering a
// snapshot after every step. State is saved once on the way out.
func (e *Engine) Run(ctx context.Context) error {
	e.bus.StartTicker(ctx)
	defer e.saveState()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-e.bus.Events():
			snap := e.Dispatch(ctx, ev)
			if e.render != nil {
				e.render(snap)
			}
			if e.quitting {
				return nil
			}
		}
	}
}

// Dispatch reduces one event and returns the resulting view.
func (e *Engine) Dispatch(ctx context.Context, ev events.Event) Snapshot {
	switch ev := ev.(type) {
	case events.Tick:
		e.handleTick(ctx, ev.Count)
	case events.Key:
		e.handleKey(ctx, ev.Msg)
	case events.Resize:
		e.width, e.height = ev.Width, ev.Height
	case events.NotifyDone:
		if ev.Err != nil {
			e.log.Warn().Str("kind", ev.Kind).Err(ev.Err).Msg("notification failed")
		} else {
			e.log.Debug().Str("kind", ev.Kind).Msg("notification delivered")
		}
	}
	return e.snapshot()
}

func (e *Engine) handleTick(ctx context.Context, n int64) {
	if e.blinkLeft > 0 {
		e.blinkLeft--
	}
	if e.statusLeft > 0 {
		e.statusLeft--
		if e.statusLeft == 0 {
			e.statusMsg = ""
		}
	}

	s := e.state
	switch s.ActiveMode {
	case domain.ModeCountdown:
		if s.Countdown.Tick(n) == domain.ReachedZero {
			e.onComplete(ctx, "countdown", "Countdown finished")
			e.recordSession(ctx, "countdown", s.Countdown.Initial().String(), s.Countdown.Initial())
		}
	case domain.ModeTimer:
		if s.Timer.Tick(n) == domain.ReachedZero {
			e.onComplete(ctx, "timer", "Timer saturated")
		}
	case domain.ModePomodoro:
		completed := s.Pomodoro.ActiveSide()
		if s.Pomodoro.Tick(n) == domain.ReachedZero {
			if completed == domain.Work {
				e.onComplete(ctx, "pomodoro", "Work done, take a break")
				e.recordSession(ctx, "pomodoro", "work", s.Pomodoro.WorkClock().Initial())
			} else {
				e.onComplete(ctx, "pomodoro", "Break over, back to work")
				e.recordSession(ctx, "pomodoro", "break", s.Pomodoro.BreakClock().Initial())
			}
		}
	case domain.ModeEvent:
		if s.Event.Observe(e.now()) == domain.ReachedZero {
			msg := s.Event.Title()
			if msg == "" {
				msg = "Event reached"
			}
			e.onComplete(ctx, "event", msg)
		}
	case domain.ModeLocalTime:
		// Mirrors the wall clock, nothing to step.
	}
}

// onComplete handles one ReachedZero edge: arms the blink window and
// dispatches the notification and sound side effects.
func (e *Engine) onComplete(ctx context.Context, kind, message string) {
	if e.state.BlinkEnabled {
		e.blinkLeft = blinkWindowTicks
	}
	if e.state.NotifyEnabled && e.notifier != nil {
		e.bus.Go(func() {
			err := e.notifier.Notify("tempus", message)
			e.bus.Publish(ctx, events.NotifyDone{Kind: kind, Err: err})
		})
	}
	if e.state.SoundEnabled && e.notifier != nil {
		e.bus.Go(func() {
			err := e.notifier.Beep()
			e.bus.Publish(ctx, events.NotifyDone{Kind: kind + "-sound", Err: err})
		})
	}
}

func (e *Engine) recordSession(ctx context.Context, mode, label string, d domain.Duration) {
	if e.history == nil {
		return
	}
	rec := ports.SessionRecord{
		Mode:        mode,
		Label:       label,
		Duration:    d,
		Branch:      e.repo.Branch,
		Commit:      e.repo.Commit,
		CompletedAt: e.now(),
	}
	e.bus.Go(func() {
		if err := e.history.Record(ctx, rec); err != nil {
			e.log.Warn().Err(err).Msg("history record failed")
		}
	})
}

func (e *Engine) handleKey(ctx context.Context, msg tea.KeyMsg) {
	if e.state.MenuOpen {
		e.handleMenuKey(msg)
		return
	}
	if e.textEdit != nil {
		e.handleTextEditKey(msg)
		return
	}
	if e.activeEdit() != nil {
		e.handleEditKey(msg)
		return
	}
	e.handleGlobalKey(ctx, msg)
}

func (e *Engine) handleMenuKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "m", "esc", "q":
		e.state.MenuOpen = false
	}
}

func (e *Engine) handleGlobalKey(ctx context.Context, msg tea.KeyMsg) {
	s := e.state
	switch msg.String() {
	case "q", "ctrl+c":
		e.quitting = true
	case "left", "shift+tab":
		s.CycleMode(true)
	case "right", "tab":
		s.CycleMode(false)
	case "1":
		s.ActiveMode = domain.ModeCountdown
	case "2":
		s.ActiveMode = domain.ModeTimer
	case "3":
		s.ActiveMode = domain.ModePomodoro
	case "4":
		s.ActiveMode = domain.ModeEvent
	case "5":
		s.ActiveMode = domain.ModeLocalTime
	case " ":
		e.toggleActive()
	case "r":
		e.resetActive()
	case "ctrl+r":
		if s.ActiveMode == domain.ModePomodoro {
			s.Pomodoro.ResetAll()
		} else {
			e.resetActive()
		}
	case "e":
		e.enterEdit()
	case "ctrl+e":
		if s.ActiveMode == domain.ModeCountdown {
			e.openCountdownByTime()
		}
	case "ctrl+left", "ctrl+right":
		if s.ActiveMode == domain.ModePomodoro {
			s.Pomodoro.SwitchSide()
		}
	case "i":
		if c := e.activeClock(); c != nil {
			c.SaveAsInitial()
			e.setStatus("saved as new initial")
		}
	case "s":
		s.Style = s.Style.Next()
	case "d":
		s.ShowDecis = !s.ShowDecis
	case "n":
		s.NotifyEnabled = !s.NotifyEnabled
	case "b":
		s.BlinkEnabled = !s.BlinkEnabled
	case "f":
		if s.ActiveMode == domain.ModeLocalTime {
			s.LocalTime.CycleFormat()
		}
	case "m":
		s.MenuOpen = true
	case "ctrl+s":
		e.saveState()
		e.setStatus("state saved")
	}
}

func (e *Engine) handleEditKey(msg tea.KeyMsg) {
	c := e.activeClock()
	if c == nil {
		return
	}
	switch msg.String() {
	case "left":
		c.EditNextField() // cursor left means a larger unit
	case "right":
		c.EditPrevField()
	case "up":
		c.AdjustEdit(1)
	case "down":
		c.AdjustEdit(-1)
	case "enter", "ctrl+s":
		e.commitEdit()
	case "esc":
		e.cancelEdit()
	}
}

// toggleActive flips run/pause on the active stepped mode.
func (e *Engine) toggleActive() {
	switch e.state.ActiveMode {
	case domain.ModeCountdown:
		e.state.Countdown.Toggle()
	case domain.ModeTimer:
		e.state.Timer.Toggle()
	case domain.ModePomodoro:
		e.state.Pomodoro.Toggle()
	}
}

func (e *Engine) resetActive() {
	switch e.state.ActiveMode {
	case domain.ModeCountdown:
		e.state.Countdown.Reset()
	case domain.ModeTimer:
		e.state.Timer.Reset()
	case domain.ModePomodoro:
		e.state.Pomodoro.Reset()
	}
	e.blinkLeft = 0
}

func (e *Engine) enterEdit() {
	switch e.state.ActiveMode {
	case domain.ModeCountdown:
		e.state.Countdown.EnterEdit()
	case domain.ModeTimer:
		e.state.Timer.EnterEdit()
	case domain.ModePomodoro:
		e.state.Pomodoro.EnterEdit()
	case domain.ModeEvent:
		e.openEventEdit()
	}
}

func (e *Engine) commitEdit() {
	switch e.state.ActiveMode {
	case domain.ModeCountdown:
		// Mode-level commit so MET state resets with the new target.
		e.state.Countdown.CommitEdit()
	case domain.ModeTimer:
		e.state.Timer.CommitEdit()
	case domain.ModePomodoro:
		e.state.Pomodoro.CommitEdit()
	}
}

func (e *Engine) cancelEdit() {
	switch e.state.ActiveMode {
	case domain.ModeCountdown:
		e.state.Countdown.CancelEdit()
	case domain.ModeTimer:
		e.state.Timer.CancelEdit()
	case domain.ModePomodoro:
		e.state.Pomodoro.CancelEdit()
	}
}

// activeClock returns the clock of the active stepped mode, nil for
// the derived modes.
func (e *Engine) activeClock() *domain.Clock {
	switch e.state.ActiveMode {
	case domain.ModeCountdown:
		return e.state.Countdown.Clock()
	case domain.ModeTimer:
		return e.state.Timer.Clock()
	case domain.ModePomodoro:
		return e.state.Pomodoro.ActiveClock()
	default:
		return nil
	}
}

func (e *Engine) activeEdit() *domain.EditSession {
	if c := e.activeClock(); c != nil {
		return c.Edit()
	}
	return nil
}

func (e *Engine) blinkOn() bool {
	if e.blinkLeft <= 0 {
		return false
	}
	return (e.blinkLeft/blinkPhaseTicks)%2 == 1
}

func (e *Engine) setStatus(msg string) {
	e.statusMsg = msg
	e.statusLeft = statusTicks
}

func (e *Engine) saveState() {
	if e.store == nil {
		return
	}
	if err := e.store.Save(e.state); err != nil {
		e.log.Warn().Err(err).Msg("state save failed")
	}
}
