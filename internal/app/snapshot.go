package app

import "github.com/dkrenn/tempus/internal/domain"

// Snapshot is the immutable view handed to the display layer after
// every reducer step. It contains everything needed to draw a frame
// without touching application state.
type Snapshot struct {
	Mode      domain.Mode
	Style     domain.Style
	ShowDecis bool
	MenuOpen  bool
	Width     int
	Height    int

	// BlinkOn is the visual done flag: true during the "on" phases of
	// the blink window following a completion.
	BlinkOn bool

	// StatusMsg carries transient feedback such as edit parse errors.
	StatusMsg string

	Countdown CountdownView
	Timer     TimerView
	Pomodoro  PomodoroView
	Event     EventView
	LocalTime string

	// Edit is non-nil while a field-cursor edit overlay is open.
	Edit *EditView
	// TextEdit is non-nil while a text edit overlay is open.
	TextEdit *TextEditView

	// Quitting tells the display layer to tear down.
	Quitting bool
}

// CountdownView is the drawable state of the countdown mode.
type CountdownView struct {
	Value   domain.Duration
	State   domain.RunState
	InMet   bool
	Elapsed domain.Duration
	// Percent of the initial value still remaining, in [0, 1].
	Percent float64
}

// TimerView is the drawable state of the timer mode.
type TimerView struct {
	Value domain.Duration
	State domain.RunState
}

// PomodoroView is the drawable state of the pomodoro mode.
type PomodoroView struct {
	Side    domain.PomodoroSide
	Value   domain.Duration
	State   domain.RunState
	Rounds  uint32
	Percent float64
}

// EventView is the drawable state of the event mode.
type EventView struct {
	Value    domain.Duration
	Polarity domain.Polarity
	Title    string
	Target   string
}

// EditView is the drawable state of a field-cursor edit session.
type EditView struct {
	Field   domain.EditField
	Pending domain.Duration
}

// TextEditKind says what a text edit overlay is editing.
type TextEditKind int

const (
	// EditEventTarget edits the event datetime and title.
	EditEventTarget TextEditKind = iota
	// EditCountdownByTime picks a wall-clock target for the countdown.
	EditCountdownByTime
)

// TextEditView is the drawable state of a text edit overlay. The
// input fields arrive pre-rendered by their textinput models.
type TextEditView struct {
	Kind       TextEditKind
	TimeInput  string
	TitleInput string
	TitleFocus bool
	ErrMsg     string
}

func clockPercent(current, initial domain.Duration) float64 {
	if initial.IsZero() {
		return 0
	}
	return float64(current.Decis()) / float64(initial.Decis())
}

// snapshot builds the view for the current state.
func (e *Engine) snapshot() Snapshot {
	s := e.state
	snap := Snapshot{
		Mode:      s.ActiveMode,
		Style:     s.Style,
		ShowDecis: s.ShowDecis,
		MenuOpen:  s.MenuOpen,
		Width:     e.width,
		Height:    e.height,
		BlinkOn:   e.blinkOn(),
		StatusMsg: e.statusMsg,
		Quitting:  e.quitting,
		Countdown: CountdownView{
			Value:   s.Countdown.Current(),
			State:   s.Countdown.State(),
			InMet:   s.Countdown.InMet(),
			Elapsed: s.Countdown.Elapsed(),
			Percent: clockPercent(s.Countdown.Current(), s.Countdown.Initial()),
		},
		Timer: TimerView{
			Value: s.Timer.Current(),
			State: s.Timer.State(),
		},
		Pomodoro: PomodoroView{
			Side:    s.Pomodoro.ActiveSide(),
			Value:   s.Pomodoro.Current(),
			State:   s.Pomodoro.State(),
			Rounds:  s.Pomodoro.Rounds(),
			Percent: clockPercent(s.Pomodoro.Current(), s.Pomodoro.Initial()),
		},
		LocalTime: s.LocalTime.Render(e.now()),
	}

	value, pol := s.Event.Remaining(e.now())
	snap.Event = EventView{
		Value:    value,
		Polarity: pol,
		Title:    s.Event.Title(),
		Target:   domain.FormatEventTime(s.Event.Target()),
	}

	if edit := e.activeEdit(); edit != nil {
		snap.Edit = &EditView{Field: edit.Field, Pending: edit.Pending}
	}
	if e.textEdit != nil {
		snap.TextEdit = &TextEditView{
			Kind:       e.textEdit.kind,
			TimeInput:  e.textEdit.timeInput.View(),
			TitleInput: e.textEdit.titleInput.View(),
			TitleFocus: e.textEdit.titleFocus,
			ErrMsg:     e.textEdit.errMsg,
		}
	}
	return snap
}
