package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/username/calendar-pager/internal/calendar"
	"github.com/username/calendar-pager/internal/state"
	"github.com/username/calendar-pager/pkg/dateutil"
)

// Verb names a calendar operation
type Verb string

const (
	VerbShow      Verb = "show"
	VerbNext      Verb = "next"
	VerbPrev      Verb = "prev"
	VerbGoto      Verb = "goto"
	VerbJump      Verb = "jump"
	VerbToday     Verb = "today"
	VerbSelect    Verb = "select"
	VerbUnselect  Verb = "unselect"
	VerbToggle    Verb = "toggle"
	VerbClear     Verb = "clear"
	VerbMin       Verb = "min"
	VerbMax       Verb = "max"
	VerbWeekStart Verb = "week-start"
	VerbHelp      Verb = "help"
	VerbQuit      Verb = "quit"
)

var aliases = map[string]Verb{
	"n":    VerbNext,
	"p":    VerbPrev,
	"g":    VerbGoto,
	"s":    VerbSelect,
	"u":    VerbUnselect,
	"t":    VerbToggle,
	"q":    VerbQuit,
	"exit": VerbQuit,
	"?":    VerbHelp,
}

// arity is the (min, max) argument count per verb; max < 0 means unbounded
var arity = map[Verb][2]int{
	VerbShow:      {0, 0},
	VerbNext:      {0, 0},
	VerbPrev:      {0, 0},
	VerbGoto:      {1, 1},
	VerbJump:      {1, 1},
	VerbToday:     {0, 0},
	VerbSelect:    {1, -1},
	VerbUnselect:  {1, -1},
	VerbToggle:    {1, -1},
	VerbClear:     {0, 0},
	VerbMin:       {1, 1},
	VerbMax:       {1, 1},
	VerbWeekStart: {1, 1},
	VerbHelp:      {0, 0},
	VerbQuit:      {0, 0},
}

// HelpText lists the interactive commands
const HelpText = `Commands:
  show                      print the settled month
  next | n, prev | p        animate one month forward / back
  goto | g <YYYY-MM>        animate to a month
  jump <YYYY-MM>            move to a month without animation
  today                     move to the current month
  select | s <date>...      select days (YYYY-MM-DD)
  unselect | u <date>...    unselect days
  toggle | t <date>...      flip days
  clear                     unselect everything
  min <YYYY-MM>             move the lower bound
  max <YYYY-MM>             move the upper bound
  week-start <weekday>      change the first column
  help | ?                  this text
  quit | q                  save and leave`

// ErrUnknownCommand is returned for verbs ParseCommand does not know
var ErrUnknownCommand = errors.New("unknown command")

// Command is one parsed operation
type Command struct {
	Verb Verb
	Args []string
}

// ParseCommand splits a line into a verb and arguments and checks the argument count
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}

	name := strings.ToLower(fields[0])
	verb, ok := aliases[name]
	if !ok {
		verb = Verb(name)
	}

	bounds, ok := arity[verb]
	if !ok {
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	args := fields[1:]
	if len(args) < bounds[0] || (bounds[1] >= 0 && len(args) > bounds[1]) {
		return Command{}, fmt.Errorf("%s: wrong number of arguments (%d)", verb, len(args))
	}

	return Command{Verb: verb, Args: args}, nil
}

// Result reports what Execute did
type Result struct {
	Mutated bool
	Quit    bool
	Message string
}

// Execute applies cmd to s. Navigation and bound errors leave s unchanged.
func Execute(ctx context.Context, s *state.CalendarState, cmd Command) (Result, error) {
	switch cmd.Verb {
	case VerbShow:
		return Result{}, nil

	case VerbHelp:
		return Result{Message: HelpText}, nil

	case VerbQuit:
		return Result{Quit: true}, nil

	case VerbNext:
		if err := s.AnimateScrollToNextMonth(ctx); err != nil {
			return Result{}, err
		}
		return Result{Mutated: true}, nil

	case VerbPrev:
		if err := s.AnimateScrollToPreviousMonth(ctx); err != nil {
			return Result{}, err
		}
		return Result{Mutated: true}, nil

	case VerbGoto, VerbJump:
		month, err := dateutil.ParseMonth(cmd.Args[0])
		if err != nil {
			return Result{}, err
		}
		if cmd.Verb == VerbJump {
			err = s.ScrollToMonth(month)
		} else {
			err = s.AnimateScrollToMonth(ctx, month)
		}
		if err != nil {
			return Result{}, err
		}
		return Result{Mutated: true}, nil

	case VerbToday:
		if err := s.ScrollToMonth(dateutil.Today()); err != nil {
			return Result{}, err
		}
		return Result{Mutated: true}, nil

	case VerbSelect, VerbUnselect, VerbToggle:
		days, err := parseDays(cmd.Args)
		if err != nil {
			return Result{}, err
		}
		selection := s.Selection()
		for _, day := range days {
			switch cmd.Verb {
			case VerbSelect:
				selection.Add(day)
			case VerbUnselect:
				selection.Remove(day)
			default:
				selection.Toggle(day)
			}
		}
		return Result{Mutated: true, Message: fmt.Sprintf("%d day(s) selected", selection.Len())}, nil

	case VerbClear:
		s.Selection().Clear()
		return Result{Mutated: true}, nil

	case VerbMin, VerbMax:
		month, err := dateutil.ParseMonth(cmd.Args[0])
		if err != nil {
			return Result{}, err
		}
		if cmd.Verb == VerbMin {
			err = s.UpdateMinMonth(month)
		} else {
			err = s.UpdateMaxMonth(month)
		}
		if err != nil {
			return Result{}, err
		}
		return Result{Mutated: true}, nil

	case VerbWeekStart:
		weekStart, err := dateutil.ParseWeekday(cmd.Args[0])
		if err != nil {
			return Result{}, err
		}
		s.UpdateStartOfWeek(weekStart)
		return Result{Mutated: true}, nil
	}

	return Result{}, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Verb)
}

func parseDays(args []string) ([]calendar.Day, error) {
	days := make([]calendar.Day, 0, len(args))
	for _, arg := range args {
		date, err := dateutil.ParseDate(arg)
		if err != nil {
			return nil, err
		}
		days = append(days, calendar.NewDay(date))
	}
	return days, nil
}
