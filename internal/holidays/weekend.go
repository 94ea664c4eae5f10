package holidays

import (
	"context"
	"time"

	"github.com/username/calendar-pager/pkg/dateutil"
)

// WeekendProvider marks Saturdays and Sundays and nothing else
type WeekendProvider struct{}

// MonthInfo never fails
func (WeekendProvider) MonthInfo(_ context.Context, year int, month time.Month) (*MonthInfo, error) {
	length := dateutil.MonthLength(year, month)
	info := &MonthInfo{
		Year:  year,
		Month: month,
		Days:  make([]DayInfo, 0, length),
	}

	for day := 1; day <= length; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		dayType := DayTypeWorkday
		if dateutil.IsWeekend(date) {
			dayType = DayTypeWeekend
		}
		info.add(DayInfo{Date: date, Type: dayType})
	}

	return info, nil
}
