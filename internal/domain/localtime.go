package domain

import "time"

// TimeFormat selects how the local time mode renders the wall clock.
type TimeFormat int

const (
	FormatHMS TimeFormat = iota
	FormatHM
	Format12Hour
)

func (f TimeFormat) String() string {
	switch f {
	case FormatHM:
		return "hh:mm"
	case Format12Hour:
		return "12h"
	default:
		return "hh:mm:ss"
	}
}

// LocalTime passively mirrors the wall clock. It has no RunState and
// takes no part in the tick lifecycle; only the display format cycles.
type LocalTime struct {
	format TimeFormat
}

func NewLocalTime(format TimeFormat) LocalTime {
	return LocalTime{format: format}
}

func (l *LocalTime) Format() TimeFormat { return l.format }

// CycleFormat advances hh:mm:ss -> hh:mm -> 12-hour -> hh:mm:ss.
func (l *LocalTime) CycleFormat() {
	l.format = (l.format + 1) % 3
}

// Render formats now under the selected format.
func (l *LocalTime) Render(now time.Time) string {
	switch l.format {
	case FormatHM:
		return now.Format("15:04")
	case Format12Hour:
		return now.Format("3:04:05 PM")
	default:
		return now.Format("15:04:05")
	}
}
