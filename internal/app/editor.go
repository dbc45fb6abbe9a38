package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkrenn/tempus/internal/domain"
)

// textEditor is the overlay for free-text editing: the event target
// (datetime plus title) and the countdown-by-wall-clock picker.
// Invalid input never commits; the prior value stays in place.
type textEditor struct {
	kind       TextEditKind
	timeInput  textinput.Model
	titleInput textinput.Model
	titleFocus bool
	errMsg     string
}

func newTimeInput(value, placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 32
	in.Width = 24
	in.SetValue(value)
	in.Focus()
	return in
}

func (e *Engine) openEventEdit() {
	ev := &e.state.Event
	ed := &textEditor{
		kind:      EditEventTarget,
		timeInput: newTimeInput(domain.FormatEventTime(ev.Target()), "YYYY-MM-DD HH:MM:SS"),
	}
	ed.titleInput = textinput.New()
	ed.titleInput.Placeholder = "title"
	ed.titleInput.CharLimit = 64
	ed.titleInput.Width = 24
	ed.titleInput.SetValue(ev.Title())
	e.textEdit = ed
}

func (e *Engine) openCountdownByTime() {
	e.textEdit = &textEditor{
		kind:      EditCountdownByTime,
		timeInput: newTimeInput("", "HH:MM:SS"),
	}
}

func (e *Engine) handleTextEditKey(msg tea.KeyMsg) {
	ed := e.textEdit
	switch msg.String() {
	case "esc":
		e.textEdit = nil
		return
	case "enter":
		e.commitTextEdit()
		return
	case "tab", "shift+tab":
		if ed.kind == EditEventTarget {
			ed.titleFocus = !ed.titleFocus
			if ed.titleFocus {
				ed.timeInput.Blur()
				ed.titleInput.Focus()
			} else {
				ed.titleInput.Blur()
				ed.timeInput.Focus()
			}
			return
		}
	}
	if ed.titleFocus {
		ed.titleInput, _ = ed.titleInput.Update(msg)
	} else {
		ed.timeInput, _ = ed.timeInput.Update(msg)
	}
}

func (e *Engine) commitTextEdit() {
	ed := e.textEdit
	switch ed.kind {
	case EditEventTarget:
		target, err := domain.ParseEventTime(ed.timeInput.Value())
		if err != nil {
			ed.errMsg = err.Error()
			return
		}
		e.state.Event.SetTarget(target, e.now())
		e.state.Event.SetTitle(ed.titleInput.Value())
	case EditCountdownByTime:
		target, err := parseWallClock(ed.timeInput.Value(), e.now())
		if err != nil {
			ed.errMsg = err.Error()
			return
		}
		d, _ := domain.Difference(target, e.now())
		e.state.Countdown.SetInitial(d)
	}
	e.textEdit = nil
}

// parseWallClock resolves "HH:MM:SS" to the next occurrence of that
// wall-clock time: today if still ahead, otherwise tomorrow.
func parseWallClock(text string, now time.Time) (time.Time, error) {
	t, err := time.ParseInLocation("15:04:05", text, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not HH:MM:SS", domain.ErrInvalidFormat, text)
	}
	target := time.Date(now.Year(), now.Month(), now.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target, nil
}
