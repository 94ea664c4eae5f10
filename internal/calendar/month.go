package calendar

import (
	"time"

	"github.com/username/calendar-pager/pkg/dateutil"
)

// Month is a calendar month laid out as whole weeks.
// The grid starts on the configured week start and pads into the
// neighbouring months so that its length is always a multiple of seven.
type Month struct {
	start     time.Time
	weekStart time.Weekday
	days      []Day
}

// NewMonth builds the month containing anchor with weeks beginning on weekStart
func NewMonth(anchor time.Time, weekStart time.Weekday) Month {
	m := Month{
		start:     dateutil.StartOfMonth(anchor),
		weekStart: weekStart,
	}
	m.days = m.grid()
	return m
}

func (m Month) grid() []Day {
	leadOffset := dateutil.WeekdayOffset(m.weekStart, m.start.Weekday())
	monthLen := dateutil.MonthLength(m.start.Year(), m.start.Month())
	tailOffset := (dateutil.DaysInWeek - (leadOffset+monthLen)%dateutil.DaysInWeek) % dateutil.DaysInWeek

	gridStart := Day{
		Date:     dateutil.AddDays(m.start, -leadOffset),
		Month:    m.start,
		HasMonth: true,
	}
	gridEnd := gridStart.Plus(leadOffset + monthLen + tailOffset - 1)

	return gridStart.RangeTo(gridEnd).Days()
}

// Start returns the 1st of the month
func (m Month) Start() time.Time {
	return m.start
}

// WeekStart returns the weekday the grid rows begin on
func (m Month) WeekStart() time.Weekday {
	return m.weekStart
}

// Length returns the number of days in the calendar month itself
func (m Month) Length() int {
	return dateutil.MonthLength(m.start.Year(), m.start.Month())
}

// Days returns a copy of the grid
func (m Month) Days() []Day {
	days := make([]Day, len(m.days))
	copy(days, m.days)
	return days
}

// Len returns the number of grid cells
func (m Month) Len() int {
	return len(m.days)
}

// Weeks returns the grid split into rows of seven days
func (m Month) Weeks() [][]Day {
	days := m.Days()
	weeks := make([][]Day, 0, len(days)/dateutil.DaysInWeek)
	for i := 0; i < len(days); i += dateutil.DaysInWeek {
		weeks = append(weeks, days[i:i+dateutil.DaysInWeek])
	}
	return weeks
}

// Contains reports whether date falls in this calendar month (not merely the grid)
func (m Month) Contains(date time.Time) bool {
	return dateutil.IsSameMonth(m.start, date)
}

// Plus returns the month n months later with the same week start
func (m Month) Plus(n int) Month {
	if n == 0 {
		return m
	}
	return NewMonth(dateutil.AddMonths(m.start, n), m.weekStart)
}

// Minus returns the month n months earlier
func (m Month) Minus(n int) Month {
	return m.Plus(-n)
}

// WithWeekStart returns the same month laid out with a different week start
func (m Month) WithWeekStart(weekStart time.Weekday) Month {
	if weekStart == m.weekStart && m.days != nil {
		return m
	}
	return NewMonth(m.start, weekStart)
}

// MonthsUntil returns the signed number of months from m to other
func (m Month) MonthsUntil(other Month) int {
	return dateutil.MonthsBetween(m.start, other.start)
}

// Compare orders months chronologically, ignoring the week start
func (m Month) Compare(other Month) int {
	switch diff := m.MonthsUntil(other); {
	case diff > 0:
		return -1
	case diff < 0:
		return 1
	default:
		return 0
	}
}

// Equal reports whether both months cover the same month with the same week start
func (m Month) Equal(other Month) bool {
	return m.start.Equal(other.start) && m.weekStart == other.weekStart
}

func (m Month) String() string {
	return dateutil.FormatMonth(m.start)
}
