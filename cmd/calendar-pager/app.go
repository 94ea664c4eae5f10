package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/username/calendar-pager/internal/config"
	"github.com/username/calendar-pager/internal/holidays"
	"github.com/username/calendar-pager/internal/pager"
	"github.com/username/calendar-pager/internal/render"
	"github.com/username/calendar-pager/internal/session"
	"github.com/username/calendar-pager/internal/state"
	"go.uber.org/zap"
)

// app bundles everything a command needs
type app struct {
	cfg    *config.Config
	loader *config.Loader
	host   *pager.MemoryHost
	store  *state.Store
	state  *state.CalendarState
	view   *session.View
}

func loadApp() (*app, error) {
	loader := config.NewLoader(configPath)
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if statePath != "" {
		cfg.State.File = os.ExpandEnv(statePath)
	}

	host := pager.NewMemoryHost(cfg.Pager.GetFrameInterval(), logger)
	store := state.NewStore(cfg.State.File, logger)

	calendarState, err := loadState(cfg, store, host)
	if err != nil {
		return nil, err
	}

	renderer, err := render.NewTextRenderer(render.Options{
		Locale:           cfg.Render.Locale,
		ShowWeekNumbers:  cfg.Render.ShowWeekNumbers,
		MarkWeekends:     cfg.Render.MarkWeekends,
		ShowAdjacentDays: cfg.Render.ShowAdjacentDays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	provider, err := initializeProvider(cfg)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		loader: loader,
		host:   host,
		store:  store,
		state:  calendarState,
		view:   session.NewView(renderer, provider, logger),
	}, nil
}

// loadState restores the saved state, or builds a fresh one from config when
// nothing is saved or the saved snapshot no longer restores
func loadState(cfg *config.Config, store *state.Store, host pager.Host) (*state.CalendarState, error) {
	snap, err := store.Load()
	if err != nil {
		logger.Warn("Ignoring unreadable state file", zap.Error(err))
	}
	if snap != nil {
		restored, err := state.Restore(*snap, host, logger)
		if err == nil {
			return restored, nil
		}
		logger.Warn("Saved state could not be restored, starting fresh", zap.Error(err))
	}

	calendarState, err := state.New(state.Options{
		InitialMonth: cfg.GetInitialMonth(),
		StartOfWeek:  cfg.GetStartOfWeek(),
		MinMonth:     cfg.GetMinMonth(),
		MaxMonth:     cfg.GetMaxMonth(),
		MonthLimit:   cfg.Calendar.GetMonthLimit(),
	}, host, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar state: %w", err)
	}
	return calendarState, nil
}

func initializeProvider(cfg *config.Config) (holidays.Provider, error) {
	switch cfg.Holidays.Type {
	case "none":
		return nil, nil

	case "", "weekends":
		return holidays.WeekendProvider{}, nil

	case "file":
		logger.Info("Using holidays file", zap.String("file", cfg.Holidays.File))
		fp := holidays.NewFileProvider(cfg.Holidays.File, logger)
		if err := fp.Load(); err != nil {
			return nil, err
		}
		// months the file does not cover still get weekends
		return holidays.NewCompositeProvider(fp, holidays.WeekendProvider{}, logger), nil

	case "isdayoff":
		logger.Info("Using isdayoff holidays API", zap.String("url", cfg.Holidays.APIURL))
		primary := holidays.NewIsDayOffProvider(cfg.Holidays.APIURL, cfg.Holidays.GetCacheTTL(), logger)
		if cfg.Holidays.FallbackFile == "" {
			return holidays.NewCompositeProvider(primary, holidays.WeekendProvider{}, logger), nil
		}

		composite := holidays.NewCompositeProvider(primary, holidays.NewFileProvider(cfg.Holidays.FallbackFile, logger), logger)
		if err := composite.LoadFallback(); err != nil {
			logger.Warn("Failed to load fallback holidays, continuing with API only",
				zap.Error(err))
		}
		return composite, nil

	default:
		return nil, fmt.Errorf("unknown holidays type: %s", cfg.Holidays.Type)
	}
}

// run executes one command against the loaded state, prints the settled
// month and saves the result
func (a *app) run(ctx context.Context, cmd session.Command) error {
	result, err := session.Execute(ctx, a.state, cmd)
	if err != nil {
		var bv *pager.BoundsViolation
		if errors.As(err, &bv) {
			logger.Warn("Request outside calendar bounds", zap.Error(err))
		}
		return err
	}

	if result.Message != "" {
		fmt.Fprintln(os.Stdout, result.Message)
	}
	if err := a.view.Render(ctx, os.Stdout, a.state); err != nil {
		return err
	}

	if result.Mutated {
		if err := a.store.Save(a.state.Snapshot()); err != nil {
			return fmt.Errorf("failed to save state: %w", err)
		}
	}
	return nil
}
