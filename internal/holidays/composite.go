package holidays

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// CompositeProvider asks primary first and falls back on any error
type CompositeProvider struct {
	primary  Provider
	fallback Provider
	logger   *zap.Logger
}

// NewCompositeProvider creates a new CompositeProvider
func NewCompositeProvider(primary, fallback Provider, logger *zap.Logger) *CompositeProvider {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CompositeProvider{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// MonthInfo returns the primary's answer, or the fallback's if the primary fails
func (cp *CompositeProvider) MonthInfo(ctx context.Context, year int, month time.Month) (*MonthInfo, error) {
	info, err := cp.primary.MonthInfo(ctx, year, month)
	if err == nil {
		return info, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	cp.logger.Warn("Primary holiday provider failed, falling back",
		zap.String("month", monthKey(year, month)),
		zap.Error(err))

	info, fallbackErr := cp.fallback.MonthInfo(ctx, year, month)
	if fallbackErr != nil {
		return nil, fmt.Errorf("primary and fallback both failed: primary=%w, fallback=%v", err, fallbackErr)
	}
	return info, nil
}

// LoadFallback loads the fallback if it is a FileProvider
func (cp *CompositeProvider) LoadFallback() error {
	if fp, ok := cp.fallback.(*FileProvider); ok {
		if err := fp.Load(); err != nil {
			return fmt.Errorf("failed to load fallback holidays: %w", err)
		}
		cp.logger.Info("Fallback holidays loaded")
	}
	return nil
}
