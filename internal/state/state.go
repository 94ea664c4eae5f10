package state

import (
	"context"
	"fmt"
	"time"

	"github.com/username/calendar-pager/internal/calendar"
	"github.com/username/calendar-pager/internal/pager"
	"github.com/username/calendar-pager/pkg/dateutil"
	"go.uber.org/zap"
)

// DefaultMonthLimit is how far the window reaches on each side of the
// initial month when no explicit bound is given (10 years)
const DefaultMonthLimit = 10 * 12

// Options configures a new CalendarState
type Options struct {
	InitialMonth time.Time
	StartOfWeek  time.Weekday
	Selection    *calendar.Selection

	// Nil bounds default to InitialMonth -/+ MonthLimit
	MinMonth   *time.Time
	MaxMonth   *time.Time
	MonthLimit int
}

// CalendarState drives a page host over a bounded range of months.
// Settled and target months are derived on every call from the host's page
// fields, so they can never disagree with what the host shows.
type CalendarState struct {
	host      pager.Host
	window    *pager.Window
	weekStart time.Weekday
	selection *calendar.Selection
	logger    *zap.Logger
}

// New validates the bounds against the initial month, sizes the host and
// moves it to the initial month's page
func New(opts Options, host pager.Host, logger *zap.Logger) (*CalendarState, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	initial := dateutil.StartOfMonth(opts.InitialMonth)
	limit := opts.MonthLimit
	if limit <= 0 {
		limit = DefaultMonthLimit
	}

	minMonth := dateutil.AddMonths(initial, -limit)
	if opts.MinMonth != nil {
		minMonth = *opts.MinMonth
	}
	maxMonth := dateutil.AddMonths(initial, limit)
	if opts.MaxMonth != nil {
		maxMonth = *opts.MaxMonth
	}

	window, err := pager.NewWindow(minMonth, maxMonth)
	if err != nil {
		return nil, err
	}
	if initial.Before(window.Min()) {
		return nil, &pager.BoundsViolation{
			Reason: pager.ReasonMinAfterCurrent,
			Month:  initial,
			Min:    window.Min(),
			Max:    window.Max(),
		}
	}
	if initial.After(window.Max()) {
		return nil, &pager.BoundsViolation{
			Reason: pager.ReasonMaxBeforeCurrent,
			Month:  initial,
			Min:    window.Min(),
			Max:    window.Max(),
		}
	}

	selection := opts.Selection
	if selection == nil {
		selection = calendar.NewSelection()
	}

	s := &CalendarState{
		host:      host,
		window:    window,
		weekStart: opts.StartOfWeek,
		selection: selection,
		logger:    logger,
	}

	page, _ := window.PageForMonth(initial)
	host.SetPageCount(window.PageCount())
	host.JumpToPage(page)

	logger.Info("Calendar state created",
		zap.String("initial_month", dateutil.FormatMonth(initial)),
		zap.String("min_month", dateutil.FormatMonth(window.Min())),
		zap.String("max_month", dateutil.FormatMonth(window.Max())),
		zap.Int("page_count", window.PageCount()),
		zap.Stringer("start_of_week", opts.StartOfWeek))

	return s, nil
}

// SettledMonth is the month on the page the host rests at
func (s *CalendarState) SettledMonth() calendar.Month {
	return s.MonthForPage(s.host.SettledPage())
}

// TargetMonth is the month an animation is heading to (SettledMonth when idle)
func (s *CalendarState) TargetMonth() calendar.Month {
	return s.MonthForPage(s.host.TargetPage())
}

// MonthForPage returns the month shown on page, laid out with the current week start
func (s *CalendarState) MonthForPage(page int) calendar.Month {
	return calendar.NewMonth(s.window.MonthForPage(page), s.weekStart)
}

// PageForMonth returns the page showing the month containing date
func (s *CalendarState) PageForMonth(date time.Time) (int, error) {
	return s.window.PageForMonth(date)
}

// Days returns the grid of page with selection flags applied, ready for a day renderer
func (s *CalendarState) Days(page int) []calendar.Day {
	return s.selection.Annotate(s.MonthForPage(page).Days())
}

// ScrollToMonth jumps to the month containing date without animation
func (s *CalendarState) ScrollToMonth(date time.Time) error {
	page, err := s.window.PageForMonth(date)
	if err != nil {
		return err
	}

	s.host.JumpToPage(page)
	s.logger.Info("Scrolled to month",
		zap.String("month", dateutil.FormatMonth(date)),
		zap.Int("page", page))
	return nil
}

// AnimateScrollToMonth animates to the month containing date and blocks until
// the host settles. Cancelling ctx stops the host wherever it got to.
func (s *CalendarState) AnimateScrollToMonth(ctx context.Context, date time.Time) error {
	page, err := s.window.PageForMonth(date)
	if err != nil {
		return err
	}

	s.logger.Info("Animating to month",
		zap.String("month", dateutil.FormatMonth(date)),
		zap.Int("from_page", s.host.SettledPage()),
		zap.Int("to_page", page))

	if err := s.host.AnimateToPage(ctx, page); err != nil {
		return fmt.Errorf("animation to %s interrupted: %w", dateutil.FormatMonth(date), err)
	}
	return nil
}

// AnimateScrollToNextMonth animates one month forward from the settled month
func (s *CalendarState) AnimateScrollToNextMonth(ctx context.Context) error {
	return s.AnimateScrollToMonth(ctx, s.SettledMonth().Plus(1).Start())
}

// AnimateScrollToPreviousMonth animates one month back from the settled month
func (s *CalendarState) AnimateScrollToPreviousMonth(ctx context.Context) error {
	return s.AnimateScrollToMonth(ctx, s.SettledMonth().Minus(1).Start())
}

// UpdateStartOfWeek changes the grid layout; the page index is untouched
func (s *CalendarState) UpdateStartOfWeek(weekStart time.Weekday) {
	s.weekStart = weekStart
	s.logger.Info("Start of week updated", zap.Stringer("start_of_week", weekStart))
}

// UpdateMinMonth moves the lower bound. If the settled month falls before it,
// the host jumps to the new first page; otherwise it stays on the same month.
func (s *CalendarState) UpdateMinMonth(date time.Time) error {
	page, err := s.window.UpdateMin(date, s.host.SettledPage())
	if err != nil {
		return err
	}

	s.host.SetPageCount(s.window.PageCount())
	s.host.JumpToPage(page)

	s.logger.Info("Minimum month updated",
		zap.String("min_month", dateutil.FormatMonth(s.window.Min())),
		zap.Int("page_count", s.window.PageCount()),
		zap.Int("page", page))
	return nil
}

// UpdateMaxMonth moves the upper bound. If the settled month falls after it,
// the host jumps to the new last page; otherwise only the page count changes.
func (s *CalendarState) UpdateMaxMonth(date time.Time) error {
	settled := s.host.SettledPage()
	page, err := s.window.UpdateMax(date, settled)
	if err != nil {
		return err
	}

	s.host.SetPageCount(s.window.PageCount())
	if page != settled {
		s.host.JumpToPage(page)
	}

	s.logger.Info("Maximum month updated",
		zap.String("max_month", dateutil.FormatMonth(s.window.Max())),
		zap.Int("page_count", s.window.PageCount()),
		zap.Int("page", page))
	return nil
}

// MinMonth returns the lower bound laid out with the current week start
func (s *CalendarState) MinMonth() calendar.Month {
	return calendar.NewMonth(s.window.Min(), s.weekStart)
}

// MaxMonth returns the upper bound laid out with the current week start
func (s *CalendarState) MaxMonth() calendar.Month {
	return calendar.NewMonth(s.window.Max(), s.weekStart)
}

// StartOfWeek returns the weekday grid rows begin on
func (s *CalendarState) StartOfWeek() time.Weekday {
	return s.weekStart
}

// Selection returns the live selection; mutations are visible immediately
func (s *CalendarState) Selection() *calendar.Selection {
	return s.selection
}

// PageCount returns the number of months in the window
func (s *CalendarState) PageCount() int {
	return s.window.PageCount()
}

// SettledPage returns the host's settled page
func (s *CalendarState) SettledPage() int {
	return s.host.SettledPage()
}

// IsScrollInProgress reports whether the host is animating
func (s *CalendarState) IsScrollInProgress() bool {
	return s.host.IsScrollInProgress()
}
