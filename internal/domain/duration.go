// Package domain contains the time-tracking data model and the mode
// state machines. Everything in here is pure: no I/O, no goroutines.
package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TickInterval is the resolution of all stepped-clock arithmetic.
const TickInterval = 100 * time.Millisecond

const (
	decisPerSecond = 10
	secsPerMinute  = 60
	minsPerHour    = 60
	hoursPerDay    = 24
	// Fixed 365-day years; leap years are ignored for duration math.
	daysPerYear = 365

	decisPerMinute = decisPerSecond * secsPerMinute
	decisPerHour   = decisPerMinute * minsPerHour
	decisPerDay    = decisPerHour * hoursPerDay
	decisPerYear   = decisPerDay * daysPerYear

	// maxDecis is 10000 years minus one decisecond,
	// i.e. 9999y 364d 23:59:59.9.
	maxDecis = 10000*int64(decisPerYear) - 1
)

// Parse errors. Callers report these in the edit UI; they are never fatal.
var (
	ErrInvalidFormat = errors.New("invalid duration format")
	ErrOutOfRange    = errors.New("duration out of range")
)

// Duration is a non-negative time quantity normalized to deciseconds.
// The zero value is a zero-length duration. All arithmetic saturates
// at [0, Max()].
type Duration struct {
	decis int64
}

// Max returns the largest representable Duration (9999y 364d 23:59:59.9).
func Max() Duration {
	return Duration{decis: maxDecis}
}

// FromDecis builds a Duration from a raw decisecond count, clamped to
// [0, Max()].
func FromDecis(n int64) Duration {
	if n < 0 {
		n = 0
	}
	if n > maxDecis {
		n = maxDecis
	}
	return Duration{decis: n}
}

// FromStd converts a time.Duration, clamping negative values to zero.
func FromStd(d time.Duration) Duration {
	return FromDecis(int64(d / TickInterval))
}

// FromComponents builds a Duration from broken-down fields.
func FromComponents(years, days, hours, minutes, seconds, decis int64) Duration {
	total := years*decisPerYear +
		days*decisPerDay +
		hours*decisPerHour +
		minutes*decisPerMinute +
		seconds*decisPerSecond +
		decis
	return FromDecis(total)
}

// Std converts back to a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d.decis) * TickInterval
}

// Decis returns the normalized decisecond count.
func (d Duration) Decis() int64 { return d.decis }

// IsZero reports whether the duration is zero.
func (d Duration) IsZero() bool { return d.decis == 0 }

// IsMax reports whether the duration is saturated at the upper bound.
func (d Duration) IsMax() bool { return d.decis == maxDecis }

// Cmp compares two durations over their normalized counts.
func (d Duration) Cmp(other Duration) int {
	switch {
	case d.decis < other.decis:
		return -1
	case d.decis > other.decis:
		return 1
	default:
		return 0
	}
}

// AddTicks adds n ticks, saturating at Max().
func (d Duration) AddTicks(n int64) Duration {
	if n < 0 {
		return d
	}
	if d.decis > maxDecis-n {
		return Duration{decis: maxDecis}
	}
	return Duration{decis: d.decis + n}
}

// SubTicks subtracts n ticks, saturating at zero. The second return
// value reports whether the zero boundary was crossed (or exactly
// reached) by this call.
func (d Duration) SubTicks(n int64) (Duration, bool) {
	if n < 0 {
		return d, false
	}
	if d.decis <= n {
		return Duration{}, d.decis > 0
	}
	return Duration{decis: d.decis - n}, false
}

// Add adds another duration, saturating at Max().
func (d Duration) Add(other Duration) Duration {
	return d.AddTicks(other.decis)
}

// Broken-down accessors. "Mod" variants are the component within the
// next-larger unit, used for display.

func (d Duration) Years() int64    { return d.decis / decisPerYear }
func (d Duration) Days() int64     { return d.decis / decisPerDay }
func (d Duration) DaysMod() int64  { return d.Days() % daysPerYear }
func (d Duration) Hours() int64    { return d.decis / decisPerHour }
func (d Duration) HoursMod() int64 { return d.Hours() % hoursPerDay }
func (d Duration) Minutes() int64  { return d.decis / decisPerMinute }
func (d Duration) MinutesMod() int64 {
	return d.Minutes() % minsPerHour
}
func (d Duration) Seconds() int64 { return d.decis / decisPerSecond }
func (d Duration) SecondsMod() int64 {
	return d.Seconds() % secsPerMinute
}
func (d Duration) DecisMod() int64 { return d.decis % decisPerSecond }

// HoursMod12 maps the hour-of-day component onto a 12-hour clock (1-12).
func (d Duration) HoursMod12() int64 {
	return (d.HoursMod()+11)%12 + 1
}

// String renders the duration in the most compact contextual form:
// "1y 10d 10:00:01", "2d 10:00:01", "10:00:01", "1:00:01", "1:11",
// "11" or "1".
func (d Duration) String() string {
	switch {
	case d.Years() >= 1:
		return fmt.Sprintf("%dy %dd %02d:%02d:%02d",
			d.Years(), d.DaysMod(), d.HoursMod(), d.MinutesMod(), d.SecondsMod())
	case d.Hours() >= hoursPerDay:
		return fmt.Sprintf("%dd %02d:%02d:%02d",
			d.DaysMod(), d.HoursMod(), d.MinutesMod(), d.SecondsMod())
	case d.Hours() >= 10:
		return fmt.Sprintf("%02d:%02d:%02d", d.HoursMod(), d.MinutesMod(), d.SecondsMod())
	case d.Hours() >= 1:
		return fmt.Sprintf("%d:%02d:%02d", d.Hours(), d.MinutesMod(), d.SecondsMod())
	case d.Minutes() >= 10:
		return fmt.Sprintf("%02d:%02d", d.MinutesMod(), d.SecondsMod())
	case d.Minutes() >= 1:
		return fmt.Sprintf("%d:%02d", d.Minutes(), d.SecondsMod())
	case d.Seconds() >= 10:
		return fmt.Sprintf("%02d", d.SecondsMod())
	default:
		return fmt.Sprintf("%d", d.Seconds())
	}
}

// StringWithDecis is String plus a trailing tenths-of-a-second digit.
func (d Duration) StringWithDecis() string {
	return fmt.Sprintf("%s.%d", d.String(), d.DecisMod())
}

// Polarity is the direction of a difference between two instants.
type Polarity int

const (
	// Until means the target lies in the future.
	Until Polarity = iota
	// Since means the target lies in the past.
	Since
)

func (p Polarity) String() string {
	if p == Since {
		return "since"
	}
	return "until"
}

// Difference returns the magnitude and polarity of target relative to
// now. A target at or after now yields Until.
func Difference(target, now time.Time) (Duration, Polarity) {
	diff := target.Sub(now)
	if diff < 0 {
		return FromStd(-diff), Since
	}
	return FromStd(diff), Until
}

// ParseDuration parses the duration grammar: optional "<N>y" and "<N>d"
// tokens followed by up to three colon-separated fields read
// right-to-left as seconds, minutes, hours. Examples: "5:03",
// "1d 10", "1y 5d 10:30:00".
func ParseDuration(text string) (Duration, error) {
	parts := strings.Fields(strings.TrimSpace(text))
	if len(parts) == 0 {
		return Duration{}, fmt.Errorf("%w: empty input", ErrInvalidFormat)
	}
	if len(parts) > 3 {
		return Duration{}, fmt.Errorf("%w: too many parts in %q", ErrInvalidFormat, text)
	}

	var total int64
	var timePart string
	seenYears, seenDays := false, false

	for _, part := range parts {
		switch {
		case strings.HasSuffix(part, "y"):
			if seenYears {
				return Duration{}, fmt.Errorf("%w: duplicate years in %q", ErrInvalidFormat, text)
			}
			years, err := parseField(strings.TrimSuffix(part, "y"), "years", -1)
			if err != nil {
				return Duration{}, err
			}
			// Bound before multiplying so the product cannot wrap.
			if years > maxDecis/decisPerYear {
				return Duration{}, fmt.Errorf("%w: %q exceeds 9999y 364d 23:59:59.9", ErrOutOfRange, text)
			}
			total += years * decisPerYear
			seenYears = true
		case strings.HasSuffix(part, "d"):
			if seenDays {
				return Duration{}, fmt.Errorf("%w: duplicate days in %q", ErrInvalidFormat, text)
			}
			days, err := parseField(strings.TrimSuffix(part, "d"), "days", -1)
			if err != nil {
				return Duration{}, err
			}
			if days > maxDecis/decisPerDay {
				return Duration{}, fmt.Errorf("%w: %q exceeds 9999y 364d 23:59:59.9", ErrOutOfRange, text)
			}
			total += days * decisPerDay
			seenDays = true
		default:
			if timePart != "" {
				return Duration{}, fmt.Errorf("%w: multiple time parts in %q", ErrInvalidFormat, text)
			}
			timePart = part
		}
	}

	if timePart != "" {
		decis, err := parseClockFields(timePart)
		if err != nil {
			return Duration{}, err
		}
		total += decis
	}

	if total > maxDecis {
		return Duration{}, fmt.Errorf("%w: %q exceeds 9999y 364d 23:59:59.9", ErrOutOfRange, text)
	}
	return Duration{decis: total}, nil
}

// parseClockFields parses "hh:mm:ss", "mm:ss" or "ss" into deciseconds.
func parseClockFields(s string) (int64, error) {
	fields := strings.Split(s, ":")
	if len(fields) > 3 {
		return 0, fmt.Errorf("%w: %q has too many clock fields", ErrInvalidFormat, s)
	}
	// Read right-to-left: seconds, minutes, hours.
	var secs, mins, hours int64
	var err error
	switch len(fields) {
	case 1:
		if secs, err = parseField(fields[0], "seconds", secsPerMinute); err != nil {
			return 0, err
		}
	case 2:
		if mins, err = parseField(fields[0], "minutes", minsPerHour); err != nil {
			return 0, err
		}
		if secs, err = parseField(fields[1], "seconds", secsPerMinute); err != nil {
			return 0, err
		}
	case 3:
		if hours, err = parseField(fields[0], "hours", -1); err != nil {
			return 0, err
		}
		if hours > maxDecis/decisPerHour {
			return 0, fmt.Errorf("%w: %q exceeds 9999y 364d 23:59:59.9", ErrOutOfRange, s)
		}
		if mins, err = parseField(fields[1], "minutes", minsPerHour); err != nil {
			return 0, err
		}
		if secs, err = parseField(fields[2], "seconds", secsPerMinute); err != nil {
			return 0, err
		}
	}
	return hours*decisPerHour + mins*decisPerMinute + secs*decisPerSecond, nil
}

// parseField parses a single numeric field. limit < 0 means unbounded.
func parseField(s, name string, limit int64) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrInvalidFormat, name, s)
	}
	if limit > 0 && v >= limit {
		return 0, fmt.Errorf("%w: %s must be less than %d", ErrInvalidFormat, name, limit)
	}
	return v, nil
}
