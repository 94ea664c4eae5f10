package state

import (
	"fmt"
	"strings"

	"github.com/username/calendar-pager/internal/calendar"
	"github.com/username/calendar-pager/internal/pager"
	"github.com/username/calendar-pager/pkg/dateutil"
	"go.uber.org/zap"
)

// Snapshot is the persisted form of a CalendarState:
// (settled month, selection entries, week start, min month, max month)
type Snapshot struct {
	SettledMonth string           `json:"settled_month" yaml:"settled_month"`
	Selection    []SelectionEntry `json:"selection" yaml:"selection"`
	StartOfWeek  string           `json:"start_of_week" yaml:"start_of_week"`
	MinMonth     string           `json:"min_month" yaml:"min_month"`
	MaxMonth     string           `json:"max_month" yaml:"max_month"`
	SavedAt      string           `json:"saved_at,omitempty" yaml:"saved_at,omitempty"`
}

// SelectionEntry is one (date -> presence) pair
type SelectionEntry struct {
	Date     string `json:"date" yaml:"date"`
	Selected bool   `json:"selected" yaml:"selected"`
}

// Snapshot captures everything needed to rebuild an equivalent state
func (s *CalendarState) Snapshot() Snapshot {
	entries := s.selection.Entries()
	selection := make([]SelectionEntry, len(entries))
	for i, entry := range entries {
		selection[i] = SelectionEntry{
			Date:     dateutil.FormatDate(entry.Date),
			Selected: entry.Selected,
		}
	}

	return Snapshot{
		SettledMonth: dateutil.FormatDate(s.SettledMonth().Start()),
		Selection:    selection,
		StartOfWeek:  strings.ToLower(s.weekStart.String()),
		MinMonth:     dateutil.FormatDate(s.window.Min()),
		MaxMonth:     dateutil.FormatDate(s.window.Max()),
	}
}

// Restore rebuilds a CalendarState from snap on the given host
func Restore(snap Snapshot, host pager.Host, logger *zap.Logger) (*CalendarState, error) {
	settled, err := dateutil.ParseMonth(snap.SettledMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to parse settled month: %w", err)
	}
	minMonth, err := dateutil.ParseMonth(snap.MinMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to parse min month: %w", err)
	}
	maxMonth, err := dateutil.ParseMonth(snap.MaxMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to parse max month: %w", err)
	}
	weekStart, err := dateutil.ParseWeekday(snap.StartOfWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start of week: %w", err)
	}

	selection := calendar.NewSelection()
	for _, entry := range snap.Selection {
		if !entry.Selected {
			continue
		}
		date, err := dateutil.ParseDate(entry.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse selected day: %w", err)
		}
		selection.Add(calendar.NewDay(date))
	}

	return New(Options{
		InitialMonth: settled,
		StartOfWeek:  weekStart,
		Selection:    selection,
		MinMonth:     &minMonth,
		MaxMonth:     &maxMonth,
	}, host, logger)
}
