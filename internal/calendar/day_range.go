package calendar

import "github.com/username/calendar-pager/pkg/dateutil"

// DayRange is an inclusive range of days. It is empty when Start is after End.
type DayRange struct {
	Start Day
	End   Day
}

// IsEmpty reports whether the range contains no days
func (r DayRange) IsEmpty() bool {
	return r.Start.After(r.End)
}

// Len returns the number of days in the range
func (r DayRange) Len() int {
	if r.IsEmpty() {
		return 0
	}
	return dateutil.DaysBetween(r.Start.Date, r.End.Date) + 1
}

// Contains reports whether day falls inside the range
func (r DayRange) Contains(day Day) bool {
	return !day.Before(r.Start) && !day.After(r.End)
}

// Days returns every day of the range in ascending order.
// Each day carries the owning month of Start.
func (r DayRange) Days() []Day {
	days := make([]Day, 0, r.Len())
	for it := r.Iterator(); it.Next(); {
		days = append(days, it.Day())
	}
	return days
}

// Iterator returns an iterator positioned before the first day
func (r DayRange) Iterator() *DayIterator {
	return &DayIterator{
		next: r.Start,
		end:  r.End,
		done: r.IsEmpty(),
	}
}

// DayIterator walks a DayRange one day at a time:
//
//	for it := r.Iterator(); it.Next(); {
//		day := it.Day()
//	}
type DayIterator struct {
	current Day
	next    Day
	end     Day
	done    bool
}

// Next advances to the following day and reports whether one was available
func (it *DayIterator) Next() bool {
	if it.done {
		return false
	}

	it.current = it.next
	if it.current.Equal(it.end) {
		it.done = true
	} else {
		it.next = it.current.Plus(1)
	}
	return true
}

// Day returns the day the iterator is positioned at
func (it *DayIterator) Day() Day {
	return it.current
}
