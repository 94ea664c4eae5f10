package dateutil

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{2024, true},
		{2023, false},
		{1900, false},
		{2000, true},
		{2100, false},
		{2400, true},
		{4, true},
	}

	for _, tt := range tests {
		if got := IsLeapYear(tt.year); got != tt.want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestMonthLength(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"January", 2025, time.January, 31},
		{"February leap", 2024, time.February, 29},
		{"February common", 2025, time.February, 28},
		{"February century", 1900, time.February, 28},
		{"February 400", 2000, time.February, 29},
		{"April", 2024, time.April, 30},
		{"December", 2024, time.December, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthLength(tt.year, tt.month); got != tt.want {
				t.Errorf("MonthLength(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
			}
		})
	}
}

func TestMonthLengthMatchesTimePackage(t *testing.T) {
	for year := 1890; year <= 2110; year++ {
		for m := time.January; m <= time.December; m++ {
			want := time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
			if got := MonthLength(year, m); got != want {
				t.Fatalf("MonthLength(%d, %v) = %d, want %d", year, m, got, want)
			}
		}
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		n     int
		want  time.Time
	}{
		{"forward", date(2024, 3, 1), 1, date(2024, 4, 1)},
		{"backward", date(2024, 3, 1), -1, date(2024, 2, 1)},
		{"end of month anchor", date(2024, 1, 31), 1, date(2024, 2, 1)},
		{"year wrap forward", date(2024, 12, 15), 1, date(2025, 1, 1)},
		{"year wrap backward", date(2024, 1, 15), -13, date(2022, 12, 1)},
		{"zero", date(2024, 5, 20), 0, date(2024, 5, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddMonths(tt.input, tt.n); !got.Equal(tt.want) {
				t.Errorf("AddMonths(%v, %d) = %v, want %v",
					FormatDate(tt.input), tt.n, FormatDate(got), FormatDate(tt.want))
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", date(2024, 4, 1), date(2024, 4, 1), 0},
		{"forward", date(2024, 4, 1), date(2024, 4, 10), 9},
		{"backward", date(2024, 4, 10), date(2024, 4, 1), -9},
		{"across leap day", date(2024, 2, 28), date(2024, 3, 1), 2},
		{"whole year", date(2023, 1, 1), date(2024, 1, 1), 365},
		{"ignores time of day", time.Date(2024, 4, 1, 23, 0, 0, 0, time.UTC), date(2024, 4, 2), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMonthsBetween(t *testing.T) {
	base := date(2024, 4, 1)

	if got := MonthsBetween(base, base); got != 0 {
		t.Errorf("MonthsBetween(a, a) = %d, want 0", got)
	}

	for n := -300; n <= 300; n++ {
		if got := MonthsBetween(base, AddMonths(base, n)); got != n {
			t.Fatalf("MonthsBetween(a, a%+d) = %d, want %d", n, got, n)
		}
	}
}

func TestWeekdayOffset(t *testing.T) {
	tests := []struct {
		weekStart time.Weekday
		weekday   time.Weekday
		want      int
	}{
		{time.Monday, time.Monday, 0},
		{time.Monday, time.Thursday, 3},
		{time.Monday, time.Sunday, 6},
		{time.Sunday, time.Sunday, 0},
		{time.Sunday, time.Saturday, 6},
		{time.Saturday, time.Friday, 6},
		{time.Wednesday, time.Tuesday, 6},
	}

	for _, tt := range tests {
		if got := WeekdayOffset(tt.weekStart, tt.weekday); got != tt.want {
			t.Errorf("WeekdayOffset(%v, %v) = %d, want %d", tt.weekStart, tt.weekday, got, tt.want)
		}
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name      string
		input     time.Time
		weekStart time.Weekday
		expected  time.Time
	}{
		{
			name:      "Wednesday returns Monday",
			input:     time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC), // Wednesday
			weekStart: time.Monday,
			expected:  date(2025, 1, 13),
		},
		{
			name:      "Monday returns same Monday",
			input:     date(2025, 1, 13),
			weekStart: time.Monday,
			expected:  date(2025, 1, 13),
		},
		{
			name:      "Sunday returns previous Monday",
			input:     date(2025, 1, 19),
			weekStart: time.Monday,
			expected:  date(2025, 1, 13),
		},
		{
			name:      "Sunday start returns same Sunday",
			input:     date(2025, 1, 19),
			weekStart: time.Sunday,
			expected:  date(2025, 1, 19),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StartOfWeek(tt.input, tt.weekStart)

			if !result.Equal(tt.expected) {
				t.Errorf("StartOfWeek(%v) = %v, want %v",
					tt.input.Format("2006-01-02 Mon"),
					result.Format("2006-01-02 Mon"),
					tt.expected.Format("2006-01-02 Mon"))
			}

			end := EndOfWeek(tt.input, tt.weekStart)
			if DaysBetween(result, end) != 6 {
				t.Errorf("EndOfWeek(%v) = %v, want six days after %v",
					FormatDate(tt.input), FormatDate(end), FormatDate(result))
			}
		})
	}
}

func TestGetWeekNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		wantYear int
		wantWeek int
	}{
		{"Mid January 2025", date(2025, 1, 15), 2025, 3},
		{"Start of year", date(2025, 1, 1), 2025, 1},
		{"Belongs to previous ISO year", date(2021, 1, 3), 2020, 53},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, week := GetWeekNumber(tt.input)

			if year != tt.wantYear || week != tt.wantWeek {
				t.Errorf("GetWeekNumber(%v) = (%v, %v), want (%v, %v)",
					tt.input, year, week, tt.wantYear, tt.wantWeek)
			}
		})
	}
}

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  bool
	}{
		{"Saturday is weekend", date(2025, 1, 18), true},
		{"Sunday is weekend", date(2025, 1, 19), true},
		{"Monday is not weekend", date(2025, 1, 13), false},
		{"Friday is not weekend", date(2025, 1, 17), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsWeekend(tt.input); result != tt.want {
				t.Errorf("IsWeekend(%v) = %v, want %v",
					tt.input.Format("2006-01-02 Mon"), result, tt.want)
			}
		})
	}
}

func TestIsSameDay(t *testing.T) {
	tests := []struct {
		name  string
		date1 time.Time
		date2 time.Time
		want  bool
	}{
		{
			"Same date different time",
			time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 15, 20, 0, 0, 0, time.UTC),
			true,
		},
		{
			"Different date",
			date(2025, 1, 15),
			date(2025, 1, 16),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsSameDay(tt.date1, tt.date2); result != tt.want {
				t.Errorf("IsSameDay(%v, %v) = %v, want %v",
					tt.date1, tt.date2, result, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"ISO format YYYY-MM-DD", "2025-01-15", date(2025, 1, 15), false},
		{"Dotted format DD.MM.YYYY", "15.01.2025", date(2025, 1, 15), false},
		{"ISO with time drops time", "2025-01-15T10:30:00", date(2025, 1, 15), false},
		{"Garbage", "not a date", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.input)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}

			if !tt.wantErr && !result.Equal(tt.want) {
				t.Errorf("ParseDate(%v) = %v, want %v", tt.input, result, tt.want)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"2024-04", date(2024, 4, 1), false},
		{"2024-04-16", date(2024, 4, 1), false},
		{"2024-13", time.Time{}, true},
	}

	for _, tt := range tests {
		result, err := ParseMonth(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMonth(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !result.Equal(tt.want) {
			t.Errorf("ParseMonth(%v) = %v, want %v", tt.input, result, tt.want)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Weekday
		wantErr bool
	}{
		{"monday", time.Monday, false},
		{"Sunday", time.Sunday, false},
		{" SAT ", time.Saturday, false},
		{"thu", time.Thursday, false},
		{"mo", time.Sunday, true},
		{"funday", time.Sunday, true},
	}

	for _, tt := range tests {
		got, err := ParseWeekday(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWeekday(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseWeekday(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
