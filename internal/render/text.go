package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/username/calendar-pager/internal/holidays"
	"github.com/username/calendar-pager/pkg/dateutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CellWidth is the width of one rendered day, separator included
const CellWidth = 5

// Options controls the text grid
type Options struct {
	Locale           string
	ShowWeekNumbers  bool
	MarkWeekends     bool
	ShowAdjacentDays bool
	// Cells overrides the default per-day rendering
	Cells DayRenderer
}

// TextRenderer prints a month page as a fixed 7-column grid:
//
//	      April 2024
//	 Mo   Tu   We   Th   Fr   Sa   Su
//	  1    2    3    4    5    6 .  7 .
//	  8    9  [10]  11   12   13 . 14 .
//
// Selected days are bracketed, adjacent-month days parenthesized, and the
// trailing mark is * for holidays, ~ for shortened days, . for weekends.
type TextRenderer struct {
	opts    Options
	printer *message.Printer
	cells   DayRenderer
}

// NewTextRenderer creates a renderer for opts.Locale (English when empty).
// The locale drives number formatting in the footer; month and weekday names stay English.
func NewTextRenderer(opts Options) (*TextRenderer, error) {
	tag := language.English
	if opts.Locale != "" {
		parsed, err := language.Parse(opts.Locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", opts.Locale, err)
		}
		tag = parsed
	}

	r := &TextRenderer{
		opts:    opts,
		printer: message.NewPrinter(tag),
	}
	r.cells = opts.Cells
	if r.cells == nil {
		r.cells = DayRendererFunc(r.renderDay)
	}
	return r, nil
}

// Render writes page to w
func (r *TextRenderer) Render(w io.Writer, page Page) error {
	var b strings.Builder

	weekPrefix := ""
	if r.opts.ShowWeekNumbers {
		weekPrefix = strings.Repeat(" ", 4)
	}

	header := r.Title(page.Month.Start())
	width := len(weekPrefix) + 7*CellWidth
	if pad := (width - len([]rune(header))) / 2; pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(header)
	b.WriteByte('\n')

	b.WriteString(weekPrefix)
	b.WriteString(r.WeekdayHeader(page.Month.WeekStart()))
	b.WriteByte('\n')

	cells := page.Cells()
	for start := 0; start+7 <= len(cells); start += 7 {
		row := cells[start : start+7]

		var line strings.Builder
		if r.opts.ShowWeekNumbers {
			_, week := dateutil.GetWeekNumber(row[0].Day.Date)
			line.WriteString(fmt.Sprintf("%2d |", week))
		}
		for _, cell := range row {
			line.WriteString(r.cells.RenderDay(cell))
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}

	if page.PageCount > 0 {
		b.WriteString(r.Footer(page))
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}
	return nil
}

// Title returns the "Month YYYY" heading
func (r *TextRenderer) Title(month time.Time) string {
	return month.Format("January 2006")
}

// WeekdayHeader returns two-letter weekday names starting at weekStart
func (r *TextRenderer) WeekdayHeader(weekStart time.Weekday) string {
	var b strings.Builder
	for i := 0; i < dateutil.DaysInWeek; i++ {
		wd := time.Weekday((int(weekStart) + i) % dateutil.DaysInWeek)
		fmt.Fprintf(&b, " %s  ", wd.String()[:2])
	}
	return strings.TrimRight(b.String(), " ")
}

// Footer returns the page position and selection count with locale number formatting
func (r *TextRenderer) Footer(page Page) string {
	return r.printer.Sprintf("page %d of %d, %d selected", page.PageIndex+1, page.PageCount, page.Selected)
}

func (r *TextRenderer) renderDay(cell Cell) string {
	inMonth := cell.Day.InSelectedMonth()
	if !inMonth && !r.opts.ShowAdjacentDays {
		return strings.Repeat(" ", CellWidth)
	}

	left, right := " ", " "
	switch {
	case cell.Day.Selected:
		left, right = "[", "]"
	case !inMonth:
		left, right = "(", ")"
	case cell.Today:
		left, right = ">", "<"
	}

	mark := " "
	switch cell.Type {
	case holidays.DayTypeHoliday:
		mark = "*"
	case holidays.DayTypeShortened:
		mark = "~"
	case holidays.DayTypeWeekend:
		if r.opts.MarkWeekends {
			mark = "."
		}
	case holidays.DayTypeUnknown:
		if r.opts.MarkWeekends && dateutil.IsWeekend(cell.Day.Date) {
			mark = "."
		}
	}

	return fmt.Sprintf("%s%2d%s%s", left, cell.Day.Date.Day(), right, mark)
}
