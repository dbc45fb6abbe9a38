// Package statefile persists the application state as a single JSON
// snapshot, replaced atomically on every save.
package statefile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"

	"github.com/dkrenn/tempus/internal/domain"
)

// Store reads and writes the snapshot file. A missing or malformed
// file is never an error for the caller; Load falls back to defaults.
type Store struct {
	path string
	log  zerolog.Logger
}

func New(path string, log zerolog.Logger) *Store {
	return &Store{path: path, log: log}
}

type clockJSON struct {
	Initial int64  `json:"initial"`
	Current int64  `json:"current"`
	State   string `json:"state"`
}

type countdownJSON struct {
	Clock      clockJSON `json:"clock"`
	MetEnabled bool      `json:"met_enabled"`
	Elapsed    int64     `json:"elapsed"`
}

type pomodoroJSON struct {
	Work       clockJSON `json:"work"`
	Break      clockJSON `json:"break"`
	ActiveSide string    `json:"active_side"`
	Rounds     uint32    `json:"rounds"`
}

type eventJSON struct {
	Target time.Time `json:"target"`
	Title  string    `json:"title"`
}

type fileState struct {
	ActiveMode string        `json:"active_mode"`
	Countdown  countdownJSON `json:"countdown"`
	Timer      clockJSON     `json:"timer"`
	Pomodoro   pomodoroJSON  `json:"pomodoro"`
	Event      eventJSON     `json:"event"`
	Style      string        `json:"style"`
	TimeFormat int           `json:"time_format"`
	ShowDecis  bool          `json:"show_decis"`
	Notify     bool          `json:"notify"`
	Blink      bool          `json:"blink"`
	Sound      bool          `json:"sound"`
}

func clockToJSON(c *domain.Clock) clockJSON {
	return clockJSON{
		Initial: c.Initial().Decis(),
		Current: c.Current().Decis(),
		State:   c.State().String(),
	}
}

func runStateFromName(name string) domain.RunState {
	switch name {
	case "running":
		return domain.Running
	case "paused":
		return domain.Paused
	case "done":
		return domain.Done
	default:
		return domain.Initial
	}
}

// Load builds the startup state: the persisted snapshot when present
// and readable, the given defaults otherwise.
func (s *Store) Load(defaults domain.Defaults, now time.Time) (*domain.AppState, error) {
	state := domain.NewAppState(defaults, now)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("state file unreadable, using defaults")
		}
		return state, nil
	}

	var fs fileState
	if err := json.Unmarshal(data, &fs); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("state file malformed, using defaults")
		return state, nil
	}

	if mode, err := domain.ModeFromName(fs.ActiveMode); err == nil {
		state.ActiveMode = mode
	}
	state.Countdown = domain.RestoreCountdown(
		domain.FromDecis(fs.Countdown.Clock.Initial),
		domain.FromDecis(fs.Countdown.Clock.Current),
		runStateFromName(fs.Countdown.Clock.State),
		fs.Countdown.MetEnabled,
		domain.FromDecis(fs.Countdown.Elapsed),
	)
	state.Timer = domain.RestoreTimer(
		domain.FromDecis(fs.Timer.Current),
		runStateFromName(fs.Timer.State),
	)
	side := domain.Work
	if fs.Pomodoro.ActiveSide == domain.Break.String() {
		side = domain.Break
	}
	state.Pomodoro = domain.RestorePomodoro(
		restoreClock(fs.Pomodoro.Work),
		restoreClock(fs.Pomodoro.Break),
		side,
		fs.Pomodoro.Rounds,
	)
	if !fs.Event.Target.IsZero() {
		state.Event = domain.NewEvent(fs.Event.Target, fs.Event.Title, now)
	}
	if style, err := domain.StyleFromName(fs.Style); err == nil {
		state.Style = style
	}
	if fs.TimeFormat >= 0 && fs.TimeFormat <= int(domain.Format12Hour) {
		state.LocalTime = domain.NewLocalTime(domain.TimeFormat(fs.TimeFormat))
	}
	state.ShowDecis = fs.ShowDecis
	state.NotifyEnabled = fs.Notify
	state.BlinkEnabled = fs.Blink
	state.SoundEnabled = fs.Sound
	return state, nil
}

func restoreClock(cj clockJSON) domain.Clock {
	return domain.RestoreClock(
		domain.CountDown,
		domain.FromDecis(cj.Initial),
		domain.FromDecis(cj.Current),
		runStateFromName(cj.State),
	)
}

// Save writes the snapshot atomically (write-to-temp then rename).
func (s *Store) Save(state *domain.AppState) error {
	fs := fileState{
		ActiveMode: state.ActiveMode.String(),
		Countdown: countdownJSON{
			Clock:      clockToJSON(state.Countdown.Clock()),
			MetEnabled: state.Countdown.MetEnabled(),
			Elapsed:    state.Countdown.Elapsed().Decis(),
		},
		Timer: clockToJSON(state.Timer.Clock()),
		Pomodoro: pomodoroJSON{
			Work:       clockToJSON(state.Pomodoro.WorkClock()),
			Break:      clockToJSON(state.Pomodoro.BreakClock()),
			ActiveSide: state.Pomodoro.ActiveSide().String(),
			Rounds:     state.Pomodoro.Rounds(),
		},
		Event: eventJSON{
			Target: state.Event.Target(),
			Title:  state.Event.Title(),
		},
		Style:      state.Style.String(),
		TimeFormat: int(state.LocalTime.Format()),
		ShowDecis:  state.ShowDecis,
		Notify:     state.NotifyEnabled,
		Blink:      state.BlinkEnabled,
		Sound:      state.SoundEnabled,
	}

	data, err := json.MarshalIndent(fs, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return renameio.WriteFile(s.path, data, 0o644)
}

// Reset discards the persisted snapshot.
func (s *Store) Reset() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
