package calendar

import (
	"sync"
	"time"
)

// SelectionEntry is one persisted (date -> presence) pair
type SelectionEntry struct {
	Date     time.Time
	Selected bool
}

// Selection is the set of selected days, keyed by calendar date.
// Iteration follows insertion order. Safe for one writer and concurrent readers.
type Selection struct {
	mu    sync.RWMutex
	order []Day
	index map[string]struct{}
}

// NewSelection creates a selection holding the given days
func NewSelection(days ...Day) *Selection {
	s := &Selection{index: make(map[string]struct{})}
	s.AddAll(days)
	return s
}

// Contains reports whether a day with the same date is selected
func (s *Selection) Contains(day Day) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.index[day.Key()]
	return ok
}

// Add selects day; adding an already selected date is a no-op
func (s *Selection) Add(day Day) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.add(day)
}

func (s *Selection) add(day Day) {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}

	key := day.Key()
	if _, ok := s.index[key]; ok {
		return
	}
	s.index[key] = struct{}{}
	s.order = append(s.order, NewDay(day.Date))
}

// AddAll selects every day; duplicates collapse
func (s *Selection) AddAll(days []Day) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, day := range days {
		s.add(day)
	}
}

// Remove deselects the day with the same date, if any
func (s *Selection) Remove(day Day) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := day.Key()
	if _, ok := s.index[key]; !ok {
		return
	}
	delete(s.index, key)

	for i, selected := range s.order {
		if selected.Key() == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Toggle flips the selection state of day and returns the new state
func (s *Selection) Toggle(day Day) bool {
	if s.Contains(day) {
		s.Remove(day)
		return false
	}
	s.Add(day)
	return true
}

// Clear deselects everything
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = nil
	s.index = make(map[string]struct{})
}

// Len returns the number of selected dates
func (s *Selection) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order)
}

// Days returns the selected days in insertion order
func (s *Selection) Days() []Day {
	s.mu.RLock()
	defer s.mu.RUnlock()

	days := make([]Day, len(s.order))
	for i, day := range s.order {
		day.Selected = true
		days[i] = day
	}
	return days
}

// Entries returns the selection as persisted (date -> presence) pairs
func (s *Selection) Entries() []SelectionEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]SelectionEntry, len(s.order))
	for i, day := range s.order {
		entries[i] = SelectionEntry{Date: day.Date, Selected: true}
	}
	return entries
}

// Annotate returns a copy of days with Selected set from the current selection
func (s *Selection) Annotate(days []Day) []Day {
	s.mu.RLock()
	defer s.mu.RUnlock()

	annotated := make([]Day, len(days))
	for i, day := range days {
		_, day.Selected = s.index[day.Key()]
		annotated[i] = day
	}
	return annotated
}

// Equal reports whether both selections hold the same set of dates
func (s *Selection) Equal(other *Selection) bool {
	if s == other {
		return true
	}
	if s.Len() != other.Len() {
		return false
	}
	for _, day := range other.Days() {
		if !s.Contains(day) {
			return false
		}
	}
	return true
}
