package holidays

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/username/calendar-pager/pkg/dateutil"
)

// DayType represents the type of day
type DayType int

const (
	DayTypeUnknown DayType = iota
	DayTypeWorkday
	DayTypeWeekend
	DayTypeHoliday
	DayTypeShortened
)

func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "workday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	case DayTypeShortened:
		return "shortened"
	default:
		return "unknown"
	}
}

// IsDayOff reports whether nobody works on a day of this type
func (t DayType) IsDayOff() bool {
	return t == DayTypeWeekend || t == DayTypeHoliday
}

// ParseDayType parses the names produced by DayType.String
func ParseDayType(s string) (DayType, error) {
	switch s {
	case "workday":
		return DayTypeWorkday, nil
	case "weekend":
		return DayTypeWeekend, nil
	case "holiday":
		return DayTypeHoliday, nil
	case "shortened":
		return DayTypeShortened, nil
	}
	return DayTypeUnknown, fmt.Errorf("unknown day type: %s", s)
}

// ErrMonthNotFound is returned by providers that have no data for a month
var ErrMonthNotFound = errors.New("month not found")

// DayInfo represents information about a specific day
type DayInfo struct {
	Date time.Time
	Type DayType
	Note string
}

// MonthInfo represents day types for a whole month
type MonthInfo struct {
	Year     int
	Month    time.Month
	Workdays int
	Weekends int
	Holidays int
	Days     []DayInfo
}

// Key returns "YYYY-MM"
func (mi *MonthInfo) Key() string {
	return monthKey(mi.Year, mi.Month)
}

// Day returns the info for date if the month holds it
func (mi *MonthInfo) Day(date time.Time) (DayInfo, bool) {
	if date.Year() != mi.Year || date.Month() != mi.Month {
		return DayInfo{}, false
	}
	i := date.Day() - 1
	if i < len(mi.Days) && dateutil.IsSameDay(mi.Days[i].Date, date) {
		return mi.Days[i], true
	}
	for _, day := range mi.Days {
		if dateutil.IsSameDay(day.Date, date) {
			return day, true
		}
	}
	return DayInfo{}, false
}

func (mi *MonthInfo) add(day DayInfo) {
	mi.Days = append(mi.Days, day)
	switch day.Type {
	case DayTypeWorkday, DayTypeShortened:
		mi.Workdays++
	case DayTypeWeekend:
		mi.Weekends++
	case DayTypeHoliday:
		mi.Holidays++
	}
}

// Provider supplies day types a month at a time
type Provider interface {
	MonthInfo(ctx context.Context, year int, month time.Month) (*MonthInfo, error)
}

// weekendOrHoliday classifies a non-working day by its weekday
func weekendOrHoliday(date time.Time) DayType {
	if dateutil.IsWeekend(date) {
		return DayTypeWeekend
	}
	return DayTypeHoliday
}

func monthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
