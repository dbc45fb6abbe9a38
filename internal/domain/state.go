package domain

import (
	"fmt"
	"time"
)

// Mode names the five display modes. Exactly one is active at a time;
// inactive modes keep their state, so switching is lossless.
type Mode int

const (
	ModeCountdown Mode = iota
	ModeTimer
	ModePomodoro
	ModeEvent
	ModeLocalTime
)

var modeNames = []string{"countdown", "timer", "pomodoro", "event", "localtime"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ModeNames lists the canonical mode names for flag resolution.
func ModeNames() []string { return modeNames }

// ModeFromName resolves a canonical mode name.
func ModeFromName(name string) (Mode, error) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", name)
}

// Style selects the glyph set for big-digit rendering.
type Style int

const (
	StyleFull Style = iota
	StyleLight
	StyleMedium
	StyleDark
	StyleThick
	StyleCross
	StyleBraille
)

var styleNames = []string{"full", "light", "medium", "dark", "thick", "cross", "braille"}

func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return "unknown"
}

// StyleNames lists the canonical style names for flag resolution.
func StyleNames() []string { return styleNames }

// StyleFromName resolves a canonical style name.
func StyleFromName(name string) (Style, error) {
	for i, n := range styleNames {
		if n == name {
			return Style(i), nil
		}
	}
	return 0, fmt.Errorf("unknown style %q", name)
}

// Next cycles to the following style, wrapping.
func (s Style) Next() Style {
	return (s + 1) % Style(len(styleNames))
}

// AppState is the full application state. It is created once at
// startup and mutated exclusively by the reducer; everything else sees
// read-only snapshots.
type AppState struct {
	ActiveMode Mode

	Countdown Countdown
	Timer     Timer
	Pomodoro  Pomodoro
	Event     Event
	LocalTime LocalTime

	Style         Style
	ShowDecis     bool
	MenuOpen      bool
	NotifyEnabled bool
	BlinkEnabled  bool
	SoundEnabled  bool
}

// Defaults holds the effective startup values after merging built-in
// defaults, config file and CLI flags.
type Defaults struct {
	Mode        Mode
	Countdown   Duration
	Work        Duration
	Break       Duration
	EventTarget time.Time
	EventTitle  string
	Style       Style
	ShowDecis   bool
	Notify      bool
	Blink       bool
	Sound       bool
	Met         bool
}

// NewAppState builds a fresh state from effective defaults.
func NewAppState(d Defaults, now time.Time) *AppState {
	target := d.EventTarget
	if target.IsZero() {
		// Default event target: next midnight.
		target = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	}
	return &AppState{
		ActiveMode:    d.Mode,
		Countdown:     NewCountdown(d.Countdown, d.Met),
		Timer:         NewTimer(),
		Pomodoro:      NewPomodoro(d.Work, d.Break),
		Event:         NewEvent(target, d.EventTitle, now),
		LocalTime:     NewLocalTime(FormatHMS),
		Style:         d.Style,
		ShowDecis:     d.ShowDecis,
		NotifyEnabled: d.Notify,
		BlinkEnabled:  d.Blink,
		SoundEnabled:  d.Sound,
	}
}

// CycleMode moves to the next mode in display order, skipping nothing.
func (s *AppState) CycleMode(backwards bool) {
	n := Mode(len(modeNames))
	if backwards {
		s.ActiveMode = (s.ActiveMode + n - 1) % n
	} else {
		s.ActiveMode = (s.ActiveMode + 1) % n
	}
}
