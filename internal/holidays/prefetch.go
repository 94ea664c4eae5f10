package holidays

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/username/calendar-pager/pkg/dateutil"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentFetches bounds Prefetch parallelism
const maxConcurrentFetches = 4

// Lookup maps "YYYY-MM-DD" to day info
type Lookup map[string]DayInfo

// Type returns the day type of date, DayTypeUnknown when absent
func (l Lookup) Type(date time.Time) DayType {
	if info, ok := l[dateutil.FormatDate(date)]; ok {
		return info.Type
	}
	return DayTypeUnknown
}

// Note returns the note attached to date
func (l Lookup) Note(date time.Time) string {
	return l[dateutil.FormatDate(date)].Note
}

// Prefetch loads every month containing one of dates in parallel and merges them.
// A failing month does not stop the others: the returned Lookup holds every
// month that loaded, and the error reports the first one that did not.
func Prefetch(ctx context.Context, p Provider, dates []time.Time) (Lookup, error) {
	months := distinctMonths(dates)

	var mu sync.Mutex
	lookup := make(Lookup)

	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)

	for _, m := range months {
		m := m
		g.Go(func() error {
			info, err := p.MonthInfo(ctx, m.Year(), m.Month())
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", dateutil.FormatMonth(m), err)
			}

			mu.Lock()
			defer mu.Unlock()
			for _, day := range info.Days {
				lookup[dateutil.FormatDate(day.Date)] = day
			}
			return nil
		})
	}

	return lookup, g.Wait()
}

func distinctMonths(dates []time.Time) []time.Time {
	seen := make(map[string]bool)
	var months []time.Time
	for _, date := range dates {
		m := dateutil.StartOfMonth(date)
		key := dateutil.FormatMonth(m)
		if seen[key] {
			continue
		}
		seen[key] = true
		months = append(months, m)
	}
	return months
}
