package services

import (
	"time"

	"mrp-multilevel/pkg/domain/entities"
)

// CalendarService resolves lead-time offsets against a working calendar.
// Areas without a configured calendar fall back to plain calendar-day
// arithmetic at the caller.
type CalendarService interface {
	HasCalendar(area entities.AreaID) bool

	// OffsetWorkingDays returns the date reached by moving the given number
	// of working days from the start date. Negative days move backwards.
	OffsetWorkingDays(area entities.AreaID, from time.Time, days int) time.Time
}

// WorkingCalendar is a weekday mask plus a holiday list.
type WorkingCalendar struct {
	ID       string
	Weekdays [7]bool // indexed by time.Weekday, true = working day
	Holidays map[time.Time]bool
}

// NewWeekdayCalendar creates a Monday-to-Friday calendar.
func NewWeekdayCalendar(id string) *WorkingCalendar {
	var wd [7]bool
	for d := time.Monday; d <= time.Friday; d++ {
		wd[d] = true
	}
	return &WorkingCalendar{ID: id, Weekdays: wd, Holidays: make(map[time.Time]bool)}
}

// AddHoliday marks a non-working date.
func (c *WorkingCalendar) AddHoliday(day time.Time) {
	c.Holidays[dateOnly(day)] = true
}

// IsWorkingDay reports whether the date falls on a working weekday that is
// not a holiday.
func (c *WorkingCalendar) IsWorkingDay(day time.Time) bool {
	day = dateOnly(day)
	return c.Weekdays[day.Weekday()] && !c.Holidays[day]
}

// PlanDays walks the given number of working days from the start date and
// returns the date reached. Zero days returns the start date unchanged.
func (c *WorkingCalendar) PlanDays(from time.Time, days int) time.Time {
	day := dateOnly(from)
	if days == 0 {
		return day
	}
	step := 1
	if days < 0 {
		step = -1
		days = -days
	}
	for remaining := days; remaining > 0; {
		day = day.AddDate(0, 0, step)
		if c.IsWorkingDay(day) {
			remaining--
		}
	}
	return day
}

// CalendarResolver is the default CalendarService: a static mapping of areas
// to working calendars.
type CalendarResolver struct {
	byArea map[entities.AreaID]*WorkingCalendar
}

var _ CalendarService = (*CalendarResolver)(nil)

// NewCalendarResolver creates an empty resolver; every area falls back to
// plain calendar arithmetic until a calendar is attached.
func NewCalendarResolver() *CalendarResolver {
	return &CalendarResolver{byArea: make(map[entities.AreaID]*WorkingCalendar)}
}

// SetCalendar attaches a working calendar to an area.
func (r *CalendarResolver) SetCalendar(area entities.AreaID, cal *WorkingCalendar) {
	r.byArea[area] = cal
}

// HasCalendar reports whether the area has a working calendar configured.
func (r *CalendarResolver) HasCalendar(area entities.AreaID) bool {
	return r.byArea[area] != nil
}

// OffsetWorkingDays offsets the date by working days against the area's
// calendar, or by plain calendar days when no calendar is configured.
func (r *CalendarResolver) OffsetWorkingDays(area entities.AreaID, from time.Time, days int) time.Time {
	cal := r.byArea[area]
	if cal == nil {
		return dateOnly(from).AddDate(0, 0, days)
	}
	return cal.PlanDays(from, days)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
