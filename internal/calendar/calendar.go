// Package calendar maps instants onto the shop's local business days.
//
// Date-only values (expense dates, commission calculation dates) are carried
// as time.Time at UTC midnight of the local calendar day so that they compare
// and store identically on every backend.
package calendar

import "time"

type Calendar struct {
	loc *time.Location
	now func() time.Time
}

type Option func(*Calendar)

// WithClock overrides the wall clock, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Calendar) {
		c.now = now
	}
}

func New(loc *time.Location, opts ...Option) *Calendar {
	if loc == nil {
		loc = time.UTC
	}

	c := &Calendar{loc: loc, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

func (c *Calendar) Now() time.Time {
	return c.now()
}

// Today returns the current local date.
func (c *Calendar) Today() time.Time {
	return c.DateOf(c.now())
}

// DateOf returns the local calendar date t falls on.
func (c *Calendar) DateOf(t time.Time) time.Time {
	local := t.In(c.loc)
	return Date(local.Year(), local.Month(), local.Day())
}

// DayBounds returns the half-open UTC interval [start, end) covering the
// local day identified by day.
func (c *Calendar) DayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, c.loc)
	end := time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, c.loc)

	return start.UTC(), end.UTC()
}

// RangeBounds covers every local day from first to last inclusive.
func (c *Calendar) RangeBounds(first, last time.Time) (time.Time, time.Time) {
	start, _ := c.DayBounds(first)
	_, end := c.DayBounds(last)

	return start, end
}

// MonthBounds returns the half-open UTC interval covering a local month.
func (c *Calendar) MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, c.loc)
	end := time.Date(year, month+1, 1, 0, 0, 0, 0, c.loc)

	return start.UTC(), end.UTC()
}

// Date builds a date-only value.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MonthDates returns the first date of the month and the first date of the
// following one, for filtering date-only columns.
func MonthDates(year int, month time.Month) (time.Time, time.Time) {
	return Date(year, month, 1), Date(year, month+1, 1)
}

// Yesterday returns the date before day.
func Yesterday(day time.Time) time.Time {
	return Date(day.Year(), day.Month(), day.Day()-1)
}
