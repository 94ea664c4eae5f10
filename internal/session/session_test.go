package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/username/calendar-pager/internal/calendar"
	"github.com/username/calendar-pager/internal/config"
	"github.com/username/calendar-pager/internal/holidays"
	"github.com/username/calendar-pager/internal/pager"
	"github.com/username/calendar-pager/internal/render"
	"github.com/username/calendar-pager/internal/state"
	"go.uber.org/zap"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func monthRef(y int, m time.Month) *time.Time {
	t := month(y, m)
	return &t
}

func newTestState(t *testing.T, opts state.Options) *state.CalendarState {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	s, err := state.New(opts, pager.NewMemoryHost(0, logger), logger)
	if err != nil {
		t.Fatalf("state.New() error = %v", err)
	}
	return s
}

func newTestView(t *testing.T) *View {
	t.Helper()
	renderer, err := render.NewTextRenderer(render.Options{MarkWeekends: true})
	if err != nil {
		t.Fatal(err)
	}
	return NewView(renderer, holidays.WeekendProvider{}, zap.NewNop())
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line     string
		wantVerb Verb
		wantArgs int
		wantErr  bool
	}{
		{"next", VerbNext, 0, false},
		{"  N ", VerbNext, 0, false},
		{"goto 2024-05", VerbGoto, 1, false},
		{"select 2024-05-01 2024-05-02", VerbSelect, 2, false},
		{"week-start sunday", VerbWeekStart, 1, false},
		{"exit", VerbQuit, 0, false},
		{"goto", "", 0, true},
		{"next 3", "", 0, true},
		{"fly away", "", 0, true},
		{"", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, err := ParseCommand(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseCommand(%q) = %+v, want error", tt.line, cmd)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCommand(%q) error = %v", tt.line, err)
			}
			if cmd.Verb != tt.wantVerb || len(cmd.Args) != tt.wantArgs {
				t.Errorf("ParseCommand(%q) = %+v, want %s with %d args", tt.line, cmd, tt.wantVerb, tt.wantArgs)
			}
		})
	}

	if _, err := ParseCommand("fly"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("ParseCommand(fly) error = %v, want ErrUnknownCommand", err)
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	s := newTestState(t, state.Options{
		InitialMonth: month(2024, 4),
		MinMonth:     monthRef(2024, 1),
		MaxMonth:     monthRef(2024, 6),
		StartOfWeek:  time.Monday,
	})

	run := func(line string) (Result, error) {
		t.Helper()
		cmd, err := ParseCommand(line)
		if err != nil {
			t.Fatalf("ParseCommand(%q) error = %v", line, err)
		}
		return Execute(ctx, s, cmd)
	}

	if _, err := run("next"); err != nil || s.SettledMonth().String() != "2024-05" {
		t.Errorf("next: err=%v month=%s", err, s.SettledMonth())
	}
	if _, err := run("goto 2024-01"); err != nil || s.SettledMonth().String() != "2024-01" {
		t.Errorf("goto: err=%v month=%s", err, s.SettledMonth())
	}
	if _, err := run("prev"); !errors.Is(err, pager.ErrTargetBeforeMinimum) {
		t.Errorf("prev at minimum error = %v, want target before minimum", err)
	}
	if _, err := run("jump 2024-07"); !errors.Is(err, pager.ErrTargetAfterMaximum) {
		t.Errorf("jump past maximum error = %v, want target after maximum", err)
	}

	res, err := run("select 2024-01-10 2024-01-11")
	if err != nil || !res.Mutated || s.Selection().Len() != 2 {
		t.Errorf("select: res=%+v err=%v len=%d", res, err, s.Selection().Len())
	}
	if _, err := run("toggle 2024-01-10 2024-01-12"); err != nil {
		t.Fatal(err)
	}
	if s.Selection().Contains(calendar.DayOf(2024, 1, 10)) || !s.Selection().Contains(calendar.DayOf(2024, 1, 12)) {
		t.Errorf("toggle result = %v", s.Selection().Days())
	}
	if _, err := run("unselect 2024-01-11"); err != nil || s.Selection().Len() != 1 {
		t.Errorf("unselect: err=%v len=%d", err, s.Selection().Len())
	}
	if _, err := run("select someday"); err == nil {
		t.Error("select with bad date returned nil error")
	}
	if _, err := run("clear"); err != nil || s.Selection().Len() != 0 {
		t.Errorf("clear: err=%v len=%d", err, s.Selection().Len())
	}

	if _, err := run("max 2024-03"); err != nil || s.PageCount() != 3 {
		t.Errorf("max: err=%v pages=%d", err, s.PageCount())
	}
	if _, err := run("min 2024-05"); !errors.Is(err, pager.ErrMinAfterMax) {
		t.Errorf("min after max error = %v, want min after max", err)
	}
	if _, err := run("week-start sat"); err != nil || s.StartOfWeek() != time.Saturday {
		t.Errorf("week-start: err=%v start=%v", err, s.StartOfWeek())
	}

	if res, _ := run("quit"); !res.Quit {
		t.Error("quit did not set Quit")
	}
	if res, _ := run("help"); res.Message != HelpText {
		t.Error("help did not return HelpText")
	}
}

type fakeSource struct {
	cfg      *config.Config
	err      error
	onChange func(fsnotify.Event)
}

func (f *fakeSource) Load() (*config.Config, error) { return f.cfg, f.err }

func (f *fakeSource) Watch(onChange func(fsnotify.Event)) bool {
	f.onChange = onChange
	return true
}

func TestSession_Run(t *testing.T) {
	s := newTestState(t, state.Options{InitialMonth: month(2024, 4), StartOfWeek: time.Monday})
	store := state.NewStore(filepath.Join(t.TempDir(), "state.yaml"), zap.NewNop())
	source := &fakeSource{}

	input := strings.Join([]string{
		"next",
		"# comment",
		"select 2024-05-10",
		"bogus",
		"goto 2040-01",
		"quit",
		"next",
	}, "\n")

	var out bytes.Buffer
	se := New(s, newTestView(t), Options{
		In:       strings.NewReader(input),
		Out:      &out,
		Store:    store,
		Autosave: true,
		Config:   source,
	}, zap.NewNop())

	if err := se.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	output := out.String()
	for _, want := range []string{"April 2024", "May 2024", "[10]", "unknown command: bogus", "target after maximum"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "June 2024") {
		t.Error("command after quit was executed")
	}
	if source.onChange == nil {
		t.Error("Run() did not register a config watcher")
	}

	snap, err := store.Load()
	if err != nil || snap == nil {
		t.Fatalf("store.Load() = %v, %v", snap, err)
	}
	if snap.SettledMonth != "2024-05-01" {
		t.Errorf("saved SettledMonth = %s, want 2024-05-01", snap.SettledMonth)
	}
	if len(snap.Selection) != 1 || snap.Selection[0].Date != "2024-05-10" {
		t.Errorf("saved Selection = %v", snap.Selection)
	}
}

func TestSession_RunCancelled(t *testing.T) {
	s := newTestState(t, state.Options{InitialMonth: month(2024, 4)})
	store := state.NewStore(filepath.Join(t.TempDir(), "state.json"), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader, writer := io.Pipe()
	defer writer.Close()

	se := New(s, newTestView(t), Options{In: reader, Out: &bytes.Buffer{}, Store: store}, nil)
	if err := se.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if snap, _ := store.Load(); snap == nil || snap.SettledMonth != "2024-04-01" {
		t.Errorf("state not saved on cancellation: %+v", snap)
	}

	// the input goroutine is parked in Read until the caller closes the reader
	writer.Close()
	select {
	case <-se.readerDone:
	case <-time.After(2 * time.Second):
		t.Error("input reader still running after the input was closed")
	}
}

func TestSession_Reload(t *testing.T) {
	tests := []struct {
		name        string
		min, max    string
		wantMonth   string
		wantPages   int
		wantWeekday time.Weekday
	}{
		{"narrow around settled", "2024-03", "2024-06", "2024-04", 4, time.Sunday},
		{"move window past old max", "2025-03", "2025-06", "2025-03", 4, time.Sunday},
		{"bounds unset", "", "", "2024-04", 12, time.Sunday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(t, state.Options{
				InitialMonth: month(2024, 4),
				MinMonth:     monthRef(2024, 1),
				MaxMonth:     monthRef(2024, 12),
				StartOfWeek:  time.Monday,
			})

			source := &fakeSource{cfg: &config.Config{
				Calendar: config.CalendarConfig{StartOfWeek: "sunday", MinMonth: tt.min, MaxMonth: tt.max},
				Render:   config.RenderConfig{ShowWeekNumbers: true},
			}}

			var out bytes.Buffer
			se := New(s, newTestView(t), Options{Out: &out, Config: source}, nil)
			se.reload(context.Background(), fsnotify.Event{Name: "config.yaml", Op: fsnotify.Write})

			if got := s.SettledMonth().String(); got != tt.wantMonth {
				t.Errorf("SettledMonth() = %s, want %s", got, tt.wantMonth)
			}
			if s.PageCount() != tt.wantPages {
				t.Errorf("PageCount() = %d, want %d", s.PageCount(), tt.wantPages)
			}
			if s.StartOfWeek() != tt.wantWeekday {
				t.Errorf("StartOfWeek() = %v, want %v", s.StartOfWeek(), tt.wantWeekday)
			}
			if !strings.Contains(out.String(), "config reloaded") || !strings.Contains(out.String(), " |") {
				t.Errorf("reload output missing re-render with week numbers:\n%s", out.String())
			}
		})
	}
}

func TestSession_ReloadInvalidConfig(t *testing.T) {
	s := newTestState(t, state.Options{InitialMonth: month(2024, 4), StartOfWeek: time.Monday})
	source := &fakeSource{err: errors.New("invalid config")}

	se := New(s, newTestView(t), Options{Out: &bytes.Buffer{}, Config: source}, nil)
	se.reload(context.Background(), fsnotify.Event{Name: "config.yaml", Op: fsnotify.Write})

	if s.StartOfWeek() != time.Monday {
		t.Errorf("StartOfWeek() = %v, want unchanged Monday", s.StartOfWeek())
	}
}

// aprilOnlyProvider knows April 2024 and fails for every other month
type aprilOnlyProvider struct{}

func (aprilOnlyProvider) MonthInfo(_ context.Context, year int, m time.Month) (*holidays.MonthInfo, error) {
	if year != 2024 || m != time.April {
		return nil, holidays.ErrMonthNotFound
	}
	return &holidays.MonthInfo{
		Year:     year,
		Month:    m,
		Holidays: 1,
		Days: []holidays.DayInfo{
			{Date: time.Date(2024, 4, 12, 0, 0, 0, 0, time.UTC), Type: holidays.DayTypeHoliday},
		},
	}, nil
}

func TestView_RenderKeepsLoadedMonths(t *testing.T) {
	renderer, err := render.NewTextRenderer(render.Options{})
	if err != nil {
		t.Fatal(err)
	}
	view := NewView(renderer, aprilOnlyProvider{}, zap.NewNop())
	s := newTestState(t, state.Options{InitialMonth: month(2024, 4), StartOfWeek: time.Monday})

	var out bytes.Buffer
	if err := view.Render(context.Background(), &out, s); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	// the grid reaches into May, which fails, but April's marks stay
	if !strings.Contains(out.String(), " 12 *") {
		t.Errorf("Render() output lost the April holiday mark:\n%s", out.String())
	}
}
