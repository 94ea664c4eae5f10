package session

import (
	"context"
	"io"
	"time"

	"github.com/username/calendar-pager/internal/holidays"
	"github.com/username/calendar-pager/internal/render"
	"github.com/username/calendar-pager/internal/state"
	"github.com/username/calendar-pager/pkg/dateutil"
	"go.uber.org/zap"
)

// View prints the settled month of a CalendarState
type View struct {
	renderer *render.TextRenderer
	provider holidays.Provider
	logger   *zap.Logger
}

// NewView creates a view; a nil provider renders without day types
func NewView(renderer *render.TextRenderer, provider holidays.Provider, logger *zap.Logger) *View {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &View{
		renderer: renderer,
		provider: provider,
		logger:   logger,
	}
}

// SetRenderer swaps the renderer, e.g. after a config reload
func (v *View) SetRenderer(renderer *render.TextRenderer) {
	v.renderer = renderer
}

// Render writes the settled page to w. Months whose day types fail to load
// are logged and printed without marks; the months that did load keep theirs.
func (v *View) Render(ctx context.Context, w io.Writer, s *state.CalendarState) error {
	page := s.SettledPage()
	days := s.Days(page)

	var lookup holidays.Lookup
	if v.provider != nil {
		dates := make([]time.Time, len(days))
		for i, day := range days {
			dates[i] = day.Date
		}

		var err error
		lookup, err = holidays.Prefetch(ctx, v.provider, dates)
		if err != nil {
			v.logger.Warn("Failed to load some day types, rendering partial marks",
				zap.String("month", s.SettledMonth().String()),
				zap.Error(err))
		}
	}

	today := dateutil.Today()
	return v.renderer.Render(w, render.Page{
		Month:     s.SettledMonth(),
		Days:      days,
		Types:     lookup,
		Today:     &today,
		PageIndex: page,
		PageCount: s.PageCount(),
		Selected:  s.Selection().Len(),
	})
}
