package dateutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DaysInWeek is the number of columns in a calendar grid
	DaysInWeek = 7

	dateLayout    = "2006-01-02"
	monthLayout   = "2006-01"
	secondsPerDay = 24 * 60 * 60
)

var weekdaysByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// DateOf returns the calendar date of t as midnight UTC.
// Only the year, month and day of t are kept.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsLeapYear reports whether year is a leap year in the proleptic Gregorian calendar
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// MonthLength returns the number of days in the given month (28, 29, 30 or 31)
func MonthLength(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// StartOfMonth returns the 1st of the month containing date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths returns the 1st of the month n months away from date's month.
// Normalizing to the 1st first means day-of-month overflow can't happen.
func AddMonths(date time.Time, n int) time.Time {
	return StartOfMonth(date).AddDate(0, n, 0)
}

// AddDays returns the date n days away from date
func AddDays(date time.Time, n int) time.Time {
	return DateOf(date).AddDate(0, 0, n)
}

// DaysBetween returns the signed number of days from a to b
func DaysBetween(a, b time.Time) int {
	return int((DateOf(b).Unix() - DateOf(a).Unix()) / secondsPerDay)
}

// MonthsBetween returns the signed number of whole months from a's month to b's month
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// WeekdayOffset returns how many days to step back from a day falling on
// weekday to reach the nearest preceding (or same) weekStart.
func WeekdayOffset(weekStart, weekday time.Weekday) int {
	return (DaysInWeek - int(weekStart) + int(weekday)) % DaysInWeek
}

// StartOfWeek returns the first day of the week containing date,
// with weeks beginning on weekStart
func StartOfWeek(date time.Time, weekStart time.Weekday) time.Time {
	return AddDays(date, -WeekdayOffset(weekStart, date.Weekday()))
}

// EndOfWeek returns the last day of the week containing date
func EndOfWeek(date time.Time, weekStart time.Weekday) time.Time {
	return AddDays(StartOfWeek(date, weekStart), DaysInWeek-1)
}

// GetWeekNumber returns the ISO week number for the given date
func GetWeekNumber(date time.Time) (year int, week int) {
	year, week = date.ISOWeek()
	return
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// IsSameMonth returns true if two dates are in the same month of the same year
func IsSameMonth(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() && date1.Month() == date2.Month()
}

// FormatDate formats date as YYYY-MM-DD
func FormatDate(date time.Time) string {
	return date.Format(dateLayout)
}

// FormatMonth formats date as YYYY-MM
func FormatMonth(date time.Time) string {
	return date.Format(monthLayout)
}

// ParseDate parses date string in various formats
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		dateLayout,
		"02.01.2006",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, strings.TrimSpace(dateStr)); err == nil {
			return DateOf(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", dateStr)
}

// ParseMonth parses YYYY-MM (or any full date) into the 1st of that month
func ParseMonth(monthStr string) (time.Time, error) {
	if t, err := time.Parse(monthLayout, strings.TrimSpace(monthStr)); err == nil {
		return StartOfMonth(t), nil
	}

	t, err := ParseDate(monthStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized month %q", monthStr)
	}
	return StartOfMonth(t), nil
}

// ParseWeekday parses an English weekday name ("monday", "Mon") case-insensitively
func ParseWeekday(name string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if wd, ok := weekdaysByName[key]; ok {
		return wd, nil
	}
	if len(key) >= 3 {
		for full, wd := range weekdaysByName {
			if strings.HasPrefix(full, key) {
				return wd, nil
			}
		}
	}
	return time.Sunday, fmt.Errorf("invalid day of week %q", name)
}

// Today returns today's date
func Today() time.Time {
	return DateOf(time.Now())
}
