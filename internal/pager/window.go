package pager

import (
	"time"

	"github.com/username/calendar-pager/pkg/dateutil"
)

// Window maps the inclusive month range [min, max] to zero-based page indexes
type Window struct {
	min time.Time
	max time.Time
}

// NewWindow creates a window over [minMonth, maxMonth]; both are normalized to month starts
func NewWindow(minMonth, maxMonth time.Time) (*Window, error) {
	minMonth = dateutil.StartOfMonth(minMonth)
	maxMonth = dateutil.StartOfMonth(maxMonth)

	if maxMonth.Before(minMonth) {
		return nil, violation(ReasonMinAfterMax, minMonth, minMonth, maxMonth)
	}

	return &Window{min: minMonth, max: maxMonth}, nil
}

// Min returns the first month of the window
func (w *Window) Min() time.Time {
	return w.min
}

// Max returns the last month of the window
func (w *Window) Max() time.Time {
	return w.max
}

// PageCount returns the number of months in the window
func (w *Window) PageCount() int {
	return dateutil.MonthsBetween(w.min, w.max) + 1
}

// Check returns a BoundsViolation if month lies outside the window
func (w *Window) Check(month time.Time) error {
	month = dateutil.StartOfMonth(month)

	if month.Before(w.min) {
		return violation(ReasonTargetBeforeMinimum, month, w.min, w.max)
	}
	if month.After(w.max) {
		return violation(ReasonTargetAfterMaximum, month, w.min, w.max)
	}
	return nil
}

// PageForMonth returns the page displaying month
func (w *Window) PageForMonth(month time.Time) (int, error) {
	if err := w.Check(month); err != nil {
		return 0, err
	}
	return dateutil.MonthsBetween(w.min, month), nil
}

// MonthForPage returns the 1st of the month shown on page.
// Pages outside [0, PageCount) extrapolate linearly.
func (w *Window) MonthForPage(page int) time.Time {
	return dateutil.AddMonths(w.min, page)
}

// ClampPage limits page to [0, PageCount)
func (w *Window) ClampPage(page int) int {
	if page < 0 {
		return 0
	}
	if last := w.PageCount() - 1; page > last {
		return last
	}
	return page
}

// UpdateMin moves the lower bound and returns the page the settled month
// should be shown at afterwards. A settled month before newMin clamps to page 0.
func (w *Window) UpdateMin(newMin time.Time, settledPage int) (int, error) {
	newMin = dateutil.StartOfMonth(newMin)
	if newMin.After(w.max) {
		return settledPage, violation(ReasonMinAfterMax, newMin, newMin, w.max)
	}

	settled := w.MonthForPage(settledPage)
	w.min = newMin

	return w.ClampPage(dateutil.MonthsBetween(newMin, settled)), nil
}

// UpdateMax moves the upper bound and returns the page the settled month
// should be shown at afterwards. A settled month after newMax clamps to the last page.
func (w *Window) UpdateMax(newMax time.Time, settledPage int) (int, error) {
	newMax = dateutil.StartOfMonth(newMax)
	if newMax.Before(w.min) {
		return settledPage, violation(ReasonMinAfterMax, newMax, w.min, newMax)
	}

	w.max = newMax

	return w.ClampPage(settledPage), nil
}
