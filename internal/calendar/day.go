package calendar

import (
	"time"

	"github.com/username/calendar-pager/pkg/dateutil"
)

// Day is a single calendar cell.
// Two days are equal and ordered by Date alone; Month and Selected are annotations.
type Day struct {
	Date time.Time

	// Month is the 1st of the month this day was generated for.
	// Only meaningful when HasMonth is set; standalone days have no owning month.
	Month    time.Time
	HasMonth bool

	Selected bool
}

// NewDay creates a standalone day for the calendar date of t
func NewDay(t time.Time) Day {
	return Day{Date: dateutil.DateOf(t)}
}

// DayOf creates a standalone day from year, month and day numbers
func DayOf(year int, month time.Month, day int) Day {
	return Day{Date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// InSelectedMonth reports whether the day lies inside the month it was generated for
func (d Day) InSelectedMonth() bool {
	return d.HasMonth && dateutil.IsSameMonth(d.Date, d.Month)
}

// Compare returns -1, 0 or +1 depending on whether d is before, on or after other
func (d Day) Compare(other Day) int {
	switch diff := dateutil.DaysBetween(other.Date, d.Date); {
	case diff < 0:
		return -1
	case diff > 0:
		return 1
	default:
		return 0
	}
}

// Equal reports whether both days fall on the same calendar date
func (d Day) Equal(other Day) bool {
	return dateutil.IsSameDay(d.Date, other.Date)
}

// Before reports whether d is strictly before other
func (d Day) Before(other Day) bool {
	return d.Compare(other) < 0
}

// After reports whether d is strictly after other
func (d Day) After(other Day) bool {
	return d.Compare(other) > 0
}

// Plus returns the day n days later, keeping the owning month but not the selection flag
func (d Day) Plus(n int) Day {
	return Day{
		Date:     dateutil.AddDays(d.Date, n),
		Month:    d.Month,
		HasMonth: d.HasMonth,
	}
}

// Minus returns the day n days earlier
func (d Day) Minus(n int) Day {
	return d.Plus(-n)
}

// Weekday returns the day of the week
func (d Day) Weekday() time.Weekday {
	return d.Date.Weekday()
}

// Key returns the YYYY-MM-DD form used for persistence and lookups
func (d Day) Key() string {
	return dateutil.FormatDate(d.Date)
}

func (d Day) String() string {
	return d.Key()
}

// RangeTo returns the inclusive range [d, end]
func (d Day) RangeTo(end Day) DayRange {
	return DayRange{Start: d, End: end}
}

// RangeUntil returns the half-open range [d, end)
func (d Day) RangeUntil(end Day) DayRange {
	return DayRange{Start: d, End: end.Minus(1)}
}
