package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/username/calendar-pager/internal/config"
	"github.com/username/calendar-pager/internal/render"
	"github.com/username/calendar-pager/internal/state"
	"go.uber.org/zap"
)

// ConfigSource reloads configuration and reports file changes
type ConfigSource interface {
	Load() (*config.Config, error)
	Watch(onChange func(fsnotify.Event)) bool
}

// Options configures a Session
type Options struct {
	In       io.Reader
	Out      io.Writer
	Store    *state.Store // nil disables persistence
	Autosave bool
	Config   ConfigSource // nil disables hot reload
	Signals  []os.Signal  // defaults to SIGINT and SIGTERM
	Prompt   string
}

// Session is an interactive command loop over one CalendarState.
// Commands, config changes and signals are all handled on the Run goroutine.
//
// Input is read on a separate goroutine. A blocked Read cannot be interrupted,
// so when Run returns before In reaches EOF that goroutine stays parked in Read
// until the caller closes In (or it yields data, which is dropped). Callers
// embedding a Session should pass a reader they close after Run returns.
type Session struct {
	state      *state.CalendarState
	view       *View
	opts       Options
	logger     *zap.Logger
	events     chan fsnotify.Event
	readerDone chan struct{}
}

// New creates a new session
func New(s *state.CalendarState, view *View, opts Options, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if len(opts.Signals) == 0 {
		opts.Signals = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}

	return &Session{
		state:      s,
		view:       view,
		opts:       opts,
		logger:     logger,
		events:     make(chan fsnotify.Event, 1),
	}
}

// Run processes commands until quit, end of input, a signal or ctx cancellation.
// The state is saved on the way out.
func (se *Session) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, se.opts.Signals...)
	defer stop()

	lines := make(chan string)
	se.readerDone = make(chan struct{})
	go se.readLines(ctx, lines, se.readerDone)

	if se.opts.Config != nil {
		watching := se.opts.Config.Watch(func(e fsnotify.Event) {
			select {
			case se.events <- e:
			default:
			}
		})
		se.logger.Info("Config hot reload", zap.Bool("enabled", watching))
	}

	se.logger.Info("Session started",
		zap.String("settled_month", se.state.SettledMonth().String()),
		zap.Bool("autosave", se.opts.Autosave))

	se.show(ctx)

	for {
		se.prompt()

		select {
		case <-ctx.Done():
			se.logger.Info("Session interrupted", zap.Error(ctx.Err()))
			return se.save()

		case line, ok := <-lines:
			if !ok {
				se.logger.Info("Input closed, ending session")
				return se.save()
			}
			if quit := se.handle(ctx, line); quit {
				return se.save()
			}

		case event := <-se.events:
			se.reload(ctx, event)
		}
	}
}

// handle runs one input line and reports whether the session should end
func (se *Session) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false
	}

	cmd, err := ParseCommand(line)
	if err != nil {
		se.printf("error: %v\n", err)
		return false
	}

	result, err := Execute(ctx, se.state, cmd)
	if err != nil {
		se.logger.Warn("Command failed", zap.String("command", line), zap.Error(err))
		se.printf("error: %v\n", err)
		return false
	}
	if result.Quit {
		return true
	}
	if result.Message != "" {
		se.printf("%s\n", result.Message)
	}
	if cmd.Verb != VerbHelp {
		se.show(ctx)
	}

	if result.Mutated && se.opts.Autosave {
		if err := se.save(); err != nil {
			se.logger.Error("Autosave failed", zap.Error(err))
			se.printf("error: %v\n", err)
		}
	}
	return false
}

// reload applies a changed config file: week start, bounds and render options
func (se *Session) reload(ctx context.Context, event fsnotify.Event) {
	se.logger.Info("Config file changed",
		zap.String("file", event.Name),
		zap.String("op", event.Op.String()))

	cfg, err := se.opts.Config.Load()
	if err != nil {
		se.logger.Warn("Ignoring invalid config change", zap.Error(err))
		return
	}

	if weekStart := cfg.GetStartOfWeek(); weekStart != se.state.StartOfWeek() {
		se.state.UpdateStartOfWeek(weekStart)
	}

	minMonth, maxMonth := cfg.GetMinMonth(), cfg.GetMaxMonth()
	minPending := minMonth != nil && !minMonth.Equal(se.state.MinMonth().Start())
	if minPending {
		// moving min past the old max only succeeds once max has moved
		if err := se.state.UpdateMinMonth(*minMonth); err == nil {
			minPending = false
		}
	}
	if maxMonth != nil && !maxMonth.Equal(se.state.MaxMonth().Start()) {
		if err := se.state.UpdateMaxMonth(*maxMonth); err != nil {
			se.logger.Warn("Failed to apply max_month", zap.Error(err))
		}
	}
	if minPending {
		if err := se.state.UpdateMinMonth(*minMonth); err != nil {
			se.logger.Warn("Failed to apply min_month", zap.Error(err))
		}
	}

	se.opts.Autosave = cfg.State.Autosave

	renderer, err := render.NewTextRenderer(render.Options{
		Locale:           cfg.Render.Locale,
		ShowWeekNumbers:  cfg.Render.ShowWeekNumbers,
		MarkWeekends:     cfg.Render.MarkWeekends,
		ShowAdjacentDays: cfg.Render.ShowAdjacentDays,
	})
	if err != nil {
		se.logger.Warn("Keeping previous render options", zap.Error(err))
	} else {
		se.view.SetRenderer(renderer)
	}

	se.printf("\nconfig reloaded\n")
	se.show(ctx)
}

func (se *Session) readLines(ctx context.Context, lines chan<- string, done chan<- struct{}) {
	defer close(done)
	defer close(lines)

	scanner := bufio.NewScanner(se.opts.In)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		se.logger.Warn("Failed to read input", zap.Error(err))
	}
}

func (se *Session) show(ctx context.Context) {
	if err := se.view.Render(ctx, se.opts.Out, se.state); err != nil {
		se.logger.Error("Failed to render month", zap.Error(err))
	}
}

func (se *Session) prompt() {
	if se.opts.Prompt != "" {
		se.printf("%s", se.opts.Prompt)
	}
}

func (se *Session) save() error {
	if se.opts.Store == nil {
		return nil
	}
	if err := se.opts.Store.Save(se.state.Snapshot()); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func (se *Session) printf(format string, a ...interface{}) {
	fmt.Fprintf(se.opts.Out, format, a...)
}
