package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/username/calendar-pager/internal/session"
	"github.com/username/calendar-pager/pkg/dateutil"
	"go.uber.org/zap"
)

// verbCmd wraps a session verb as a one-shot cobra command
func verbCmd(use, short string, verb session.Verb, args cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, argv []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.run(ctx, session.Command{Verb: verb, Args: argv})
		},
	}
}

func showCmd() *cobra.Command {
	return verbCmd("show", "Print the current month", session.VerbShow, cobra.NoArgs)
}

func nextCmd() *cobra.Command {
	return verbCmd("next", "Move to the next month", session.VerbNext, cobra.NoArgs)
}

func prevCmd() *cobra.Command {
	return verbCmd("prev", "Move to the previous month", session.VerbPrev, cobra.NoArgs)
}

func gotoCmd() *cobra.Command {
	return verbCmd("goto <YYYY-MM>", "Move to a month", session.VerbGoto, cobra.ExactArgs(1))
}

func selectCmd() *cobra.Command {
	return verbCmd("select <YYYY-MM-DD>...", "Select days", session.VerbSelect, cobra.MinimumNArgs(1))
}

func unselectCmd() *cobra.Command {
	return verbCmd("unselect <YYYY-MM-DD>...", "Unselect days", session.VerbUnselect, cobra.MinimumNArgs(1))
}

func clearCmd() *cobra.Command {
	return verbCmd("clear", "Unselect every day", session.VerbClear, cobra.NoArgs)
}

func weekStartCmd() *cobra.Command {
	return verbCmd("week-start <weekday>", "Change the first day of the week", session.VerbWeekStart, cobra.ExactArgs(1))
}

func boundsCmd() *cobra.Command {
	var minMonth, maxMonth string

	cmd := &cobra.Command{
		Use:   "bounds",
		Short: "Show or move the first and last reachable month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			if minMonth == "" && maxMonth == "" {
				fmt.Printf("min %s, max %s, %d pages\n",
					a.state.MinMonth(), a.state.MaxMonth(), a.state.PageCount())
				return nil
			}

			minCmd := session.Command{Verb: session.VerbMin, Args: []string{minMonth}}
			maxCmd := session.Command{Verb: session.VerbMax, Args: []string{maxMonth}}

			var steps []session.Command
			switch {
			case maxMonth == "":
				steps = []session.Command{minCmd}
			case minMonth == "":
				steps = []session.Command{maxCmd}
			default:
				newMin, err := dateutil.ParseMonth(minMonth)
				if err != nil {
					return err
				}
				// keep min <= max after each step
				steps = []session.Command{minCmd, maxCmd}
				if newMin.After(a.state.MaxMonth().Start()) {
					steps = []session.Command{maxCmd, minCmd}
				}
			}

			for _, step := range steps {
				if _, err := session.Execute(cmd.Context(), a.state, step); err != nil {
					return err
				}
			}
			if err := a.view.Render(cmd.Context(), os.Stdout, a.state); err != nil {
				return err
			}
			return a.store.Save(a.state.Snapshot())
		},
	}

	cmd.Flags().StringVar(&minMonth, "min", "", "First reachable month (YYYY-MM)")
	cmd.Flags().StringVar(&maxMonth, "max", "", "Last reachable month (YYYY-MM)")

	return cmd
}

func sessionCmd() *cobra.Command {
	var prompt string

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Interactive mode reading commands from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			logger.Info("Starting session",
				zap.String("state_file", a.store.Path()),
				zap.String("config_file", a.loader.ConfigFileUsed()))

			se := session.New(a.state, a.view, session.Options{
				In:       os.Stdin,
				Out:      os.Stdout,
				Store:    a.store,
				Autosave: a.cfg.State.Autosave,
				Config:   a.loader,
				Prompt:   prompt,
			}, logger)

			return se.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", "> ", "Prompt printed before each command")

	return cmd
}
