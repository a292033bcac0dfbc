package services

import (
	"testing"
	"time"

	"mrp-multilevel/pkg/domain/entities"
)

func TestWorkingCalendar_PlanDaysBackwardSkipsWeekends(t *testing.T) {
	cal := NewWeekdayCalendar("weekdays")

	// Tuesday 2026-09-08 minus 6 working days lands on Monday 2026-08-31.
	from := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	got := cal.PlanDays(from, -6)
	want := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestWorkingCalendar_PlanDaysForward(t *testing.T) {
	cal := NewWeekdayCalendar("weekdays")

	// Friday 2026-09-04 plus 2 working days lands on Tuesday 2026-09-08.
	from := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	got := cal.PlanDays(from, 2)
	want := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestWorkingCalendar_HolidaySkipped(t *testing.T) {
	cal := NewWeekdayCalendar("weekdays")
	cal.AddHoliday(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)) // Monday

	// One working day back from Tuesday 2026-09-08 skips the Monday holiday
	// and the weekend.
	from := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	got := cal.PlanDays(from, -1)
	want := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestWorkingCalendar_ZeroDaysReturnsStart(t *testing.T) {
	cal := NewWeekdayCalendar("weekdays")

	from := time.Date(2026, 9, 6, 15, 30, 0, 0, time.UTC) // Sunday, with a time component
	got := cal.PlanDays(from, 0)
	want := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestCalendarResolver_FallsBackToPlainDays(t *testing.T) {
	resolver := NewCalendarResolver()

	if resolver.HasCalendar("MAIN") {
		t.Error("Expected no calendar for an unconfigured area")
	}

	from := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	got := resolver.OffsetWorkingDays("MAIN", from, -6)
	want := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected plain calendar arithmetic %v, got %v", want, got)
	}

	resolver.SetCalendar("MAIN", NewWeekdayCalendar("weekdays"))
	if !resolver.HasCalendar("MAIN") {
		t.Error("Expected a calendar after SetCalendar")
	}
	got = resolver.OffsetWorkingDays(entities.AreaID("MAIN"), from, -6)
	want = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected working-day arithmetic %v, got %v", want, got)
	}
}
