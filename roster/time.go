package roster

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar-day abstraction (the engine never does timezone arithmetic)
// =============================================================================

// Date is a calendar day. All roster reconciliation happens in whole days;
// the wire format is always "2006-01-02".
type Date struct {
	Time time.Time
}

const dateLayout = "2006-01-02"

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// MustParseDate is for literals in tests and seeds; it panics on bad input.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
func (d Date) IsZero() bool { return d.Time.IsZero() }

func (d Date) String() string { return d.Time.Format(dateLayout) }

// DaysBetween returns the whole-day distance from one date to another.
func DaysBetween(from, to Date) int {
	return int(to.normalize().Sub(from.normalize()).Hours() / 24)
}

// =============================================================================
// DATE RANGE - Inclusive [Start, End] span of calendar days
// =============================================================================

// DateRange is an inclusive span of calendar days. Leave periods and
// replacement sub-ranges are both ranges.
type DateRange struct {
	Start Date
	End   Date
}

// Valid reports whether the range is well-formed (start not after end).
func (r DateRange) Valid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && r.Start.BeforeOrEqual(r.End)
}

// Contains returns true if the date is within [Start, End].
func (r DateRange) Contains(d Date) bool {
	return d.AfterOrEqual(r.Start) && d.BeforeOrEqual(r.End)
}

// ContainsRange returns true if other lies entirely within this range.
func (r DateRange) ContainsRange(other DateRange) bool {
	return r.Contains(other.Start) && r.Contains(other.End)
}

// Overlaps uses the inclusive-bounds test: a.start <= b.end AND a.end >= b.start.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.BeforeOrEqual(other.End) && r.End.AfterOrEqual(other.Start)
}

// Days enumerates every calendar day in the range, inclusive.
func (r DateRange) Days() []Date {
	var days []Date
	current := r.Start
	for current.BeforeOrEqual(r.End) {
		days = append(days, current)
		current = current.AddDays(1)
	}
	return days
}

// Len returns the number of days in the range, inclusive.
func (r DateRange) Len() int {
	if !r.Valid() {
		return 0
	}
	return DaysBetween(r.Start, r.End) + 1
}

func (r DateRange) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}

// =============================================================================
// CLOCK TIME - "HH:MM" shift bounds
// =============================================================================

// ClockTime is a minute-resolution time of day, wire format "15:04".
// Shift start/end bounds on duty assignments use it.
type ClockTime struct {
	Hour   int
	Minute int
}

const clockLayout = "15:04"

var (
	// DayStart and DayEnd are the full-day bounds used on leave placeholders.
	DayStart = ClockTime{Hour: 0, Minute: 0}
	DayEnd   = ClockTime{Hour: 23, Minute: 59}
)

// ParseClockTime parses an "HH:MM" string.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
