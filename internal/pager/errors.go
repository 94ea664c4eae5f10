package pager

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/calendar-pager/pkg/dateutil"
)

// ErrBoundsViolation matches every *BoundsViolation via errors.Is
var ErrBoundsViolation = errors.New("bounds violation")

// Reason identifies which bound a request violated
type Reason string

const (
	ReasonTargetBeforeMinimum Reason = "target before minimum"
	ReasonTargetAfterMaximum  Reason = "target after maximum"
	ReasonMinAfterMax         Reason = "min after max"
	ReasonMinAfterCurrent     Reason = "min after current"
	ReasonMaxBeforeCurrent    Reason = "max before current"
)

// Sentinels for matching a specific reason with errors.Is
var (
	ErrTargetBeforeMinimum = &BoundsViolation{Reason: ReasonTargetBeforeMinimum}
	ErrTargetAfterMaximum  = &BoundsViolation{Reason: ReasonTargetAfterMaximum}
	ErrMinAfterMax         = &BoundsViolation{Reason: ReasonMinAfterMax}
	ErrMinAfterCurrent     = &BoundsViolation{Reason: ReasonMinAfterCurrent}
	ErrMaxBeforeCurrent    = &BoundsViolation{Reason: ReasonMaxBeforeCurrent}
)

// BoundsViolation is returned, before any state changes, when a month or
// bound falls outside the allowed [Min, Max] window or the window would invert.
type BoundsViolation struct {
	Reason Reason
	Month  time.Time
	Min    time.Time
	Max    time.Time
}

func (e *BoundsViolation) Error() string {
	return fmt.Sprintf("%s: %s: %s (min %s, max %s)", ErrBoundsViolation, e.Reason,
		dateutil.FormatMonth(e.Month), dateutil.FormatMonth(e.Min), dateutil.FormatMonth(e.Max))
}

// Is matches ErrBoundsViolation and any BoundsViolation with the same reason
func (e *BoundsViolation) Is(target error) bool {
	if target == ErrBoundsViolation {
		return true
	}
	other, ok := target.(*BoundsViolation)
	return ok && other.Reason == e.Reason
}

func violation(reason Reason, month, minMonth, maxMonth time.Time) error {
	return &BoundsViolation{Reason: reason, Month: month, Min: minMonth, Max: maxMonth}
}
