package sampler

import (
	"fmt"
	"time"
)

// Date is a civil calendar date with no time zone attached
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Calendar derives the calendar date and hour-of-day of an instant
type Calendar interface {
	DateHour(t time.Time) (Date, int)
}

// CalendarFunc adapts a plain function to the Calendar interface
type CalendarFunc func(t time.Time) (Date, int)

// DateHour calls f(t)
func (f CalendarFunc) DateHour(t time.Time) (Date, int) {
	return f(t)
}

// ZoneCalendar reads dates and hours on the wall clock of a fixed location
type ZoneCalendar struct {
	loc *time.Location
}

// InLocation returns a calendar for loc. A nil loc means UTC.
func InLocation(loc *time.Location) ZoneCalendar {
	if loc == nil {
		loc = time.UTC
	}
	return ZoneCalendar{loc: loc}
}

// Location returns the zone the calendar reads wall clocks in
func (c ZoneCalendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// DateHour implements Calendar
func (c ZoneCalendar) DateHour(t time.Time) (Date, int) {
	local := t.In(c.Location())
	year, month, day := local.Date()
	return Date{Year: year, Month: month, Day: day}, local.Hour()
}

// DateOf returns only the calendar date of t
func DateOf(cal Calendar, t time.Time) Date {
	date, _ := cal.DateHour(t)
	return date
}

// Ensure ZoneCalendar and CalendarFunc implement Calendar
var (
	_ Calendar = ZoneCalendar{}
	_ Calendar = CalendarFunc(nil)
)
