package domain

import (
	"fmt"
	"strings"
	"time"
)

// eventTimeLayout is the wire and edit format for event targets.
const eventTimeLayout = "2006-01-02 15:04:05"

// Event tracks an absolute target instant. Its displayed value is
// derived on every pass as the difference between the target and now,
// with a polarity flag; nothing is stepped.
type Event struct {
	target time.Time
	title  string

	// crossed latches whether the target has been observed in the
	// past, so the polarity flip edge fires only once per target.
	crossed bool
}

// NewEvent builds an event for the given target. An already-past
// target starts with the crossing latched, so no flip edge fires.
func NewEvent(target time.Time, title string, now time.Time) Event {
	return Event{
		target:  target,
		title:   title,
		crossed: target.Before(now) || target.Equal(now),
	}
}

func (e *Event) Target() time.Time { return e.target }
func (e *Event) Title() string     { return e.title }

// SetTarget replaces the target and re-latches the crossing.
func (e *Event) SetTarget(target time.Time, now time.Time) {
	e.target = target
	e.crossed = target.Before(now) || target.Equal(now)
}

// SetTitle replaces the title.
func (e *Event) SetTitle(title string) { e.title = title }

// Remaining derives the current display value.
func (e *Event) Remaining(now time.Time) (Duration, Polarity) {
	return Difference(e.target, now)
}

// Observe recomputes the derived value for now and reports whether the
// target was crossed by this observation. The crossing fires at most
// once per target.
func (e *Event) Observe(now time.Time) TransitionEvent {
	_, pol := e.Remaining(now)
	if pol == Since && !e.crossed {
		e.crossed = true
		return ReachedZero
	}
	return NoTransition
}

// ParseEventTarget parses an event target: either a bare
// "YYYY-MM-DD HH:MM:SS" or "time=<same>,title=<text>".
func ParseEventTarget(text string) (time.Time, string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, "", fmt.Errorf("%w: empty event target", ErrInvalidFormat)
	}

	if !strings.Contains(text, "=") {
		target, err := ParseEventTime(text)
		return target, "", err
	}

	var target time.Time
	var title string
	haveTime := false
	for _, field := range strings.Split(text, ",") {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return time.Time{}, "", fmt.Errorf("%w: expected key=value in %q", ErrInvalidFormat, field)
		}
		switch strings.TrimSpace(key) {
		case "time":
			t, err := ParseEventTime(value)
			if err != nil {
				return time.Time{}, "", err
			}
			target = t
			haveTime = true
		case "title":
			title = strings.TrimSpace(value)
		default:
			return time.Time{}, "", fmt.Errorf("%w: unknown key %q", ErrInvalidFormat, key)
		}
	}
	if !haveTime {
		return time.Time{}, "", fmt.Errorf("%w: event target missing time", ErrInvalidFormat)
	}
	return target, title, nil
}

// ParseEventTime parses "YYYY-MM-DD HH:MM:SS" in local time.
func ParseEventTime(text string) (time.Time, error) {
	t, err := time.ParseInLocation(eventTimeLayout, strings.TrimSpace(text), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not YYYY-MM-DD HH:MM:SS", ErrInvalidFormat, text)
	}
	return t, nil
}

// FormatEventTime renders a target in the edit format.
func FormatEventTime(t time.Time) string {
	return t.Format(eventTimeLayout)
}
