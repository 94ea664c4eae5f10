package render

import (
	"time"

	"github.com/username/calendar-pager/internal/calendar"
	"github.com/username/calendar-pager/internal/holidays"
)

// Cell is what a DayRenderer receives for one grid position
type Cell struct {
	Day   calendar.Day
	Type  holidays.DayType
	Note  string
	Today bool
}

// DayRenderer turns one grid cell into its text, always CellWidth runes wide
type DayRenderer interface {
	RenderDay(cell Cell) string
}

// DayRendererFunc adapts a function to DayRenderer
type DayRendererFunc func(cell Cell) string

// RenderDay calls f
func (f DayRendererFunc) RenderDay(cell Cell) string {
	return f(cell)
}

// Page is one month page ready to print
type Page struct {
	Month     calendar.Month
	Days      []calendar.Day
	Types     holidays.Lookup
	Today     *time.Time // nil marks no day as today
	PageIndex int
	PageCount int
	Selected  int
}

// Cells pairs every grid day with its day type
func (p Page) Cells() []Cell {
	cells := make([]Cell, len(p.Days))
	for i, day := range p.Days {
		cells[i] = Cell{
			Day:   day,
			Type:  p.Types.Type(day.Date),
			Note:  p.Types.Note(day.Date),
			Today: p.Today != nil && day.Date.Equal(*p.Today),
		}
	}
	return cells
}
