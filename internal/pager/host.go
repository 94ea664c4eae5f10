package pager

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Host is the pannable view that actually shows pages.
// The calendar core reads its settled/target page and asks it to move.
type Host interface {
	// SettledPage is the page the host currently rests at
	SettledPage() int
	// TargetPage is the page a transition is heading to; equal to SettledPage when idle
	TargetPage() int
	IsScrollInProgress() bool

	PageCount() int
	SetPageCount(count int)

	// JumpToPage moves instantly, superseding any running animation
	JumpToPage(page int)
	// AnimateToPage blocks until the transition settles or ctx is done.
	// On cancellation the host stays at whatever page it reached.
	AnimateToPage(ctx context.Context, page int) error
}

// MemoryHost is an in-process Host that animates one page per frame
type MemoryHost struct {
	mu         sync.RWMutex
	pageCount  int
	settled    int
	current    int
	target     int
	scrolling  bool
	generation uint64
	cancel     context.CancelFunc

	frameInterval time.Duration
	logger        *zap.Logger
}

// NewMemoryHost creates a host with a single page.
// A zero frameInterval makes animations complete without waiting.
func NewMemoryHost(frameInterval time.Duration, logger *zap.Logger) *MemoryHost {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &MemoryHost{
		pageCount:     1,
		frameInterval: frameInterval,
		logger:        logger,
	}
}

// SettledPage returns the page the host rests at
func (h *MemoryHost) SettledPage() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.settled
}

// TargetPage returns the page a running animation heads to
func (h *MemoryHost) TargetPage() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.target
}

// CurrentPage returns the page currently on screen, which changes frame by frame
func (h *MemoryHost) CurrentPage() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// IsScrollInProgress reports whether an animation is running
func (h *MemoryHost) IsScrollInProgress() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.scrolling
}

// PageCount returns the number of pages
func (h *MemoryHost) PageCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.pageCount
}

// SetPageCount changes the number of pages, pulling every page field inside the new range
func (h *MemoryHost) SetPageCount(count int) {
	if count < 1 {
		count = 1
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.pageCount = count
	h.settled = h.clamp(h.settled)
	h.current = h.clamp(h.current)
	h.target = h.clamp(h.target)
}

// JumpToPage moves to page immediately
func (h *MemoryHost) JumpToPage(page int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.supersede()
	page = h.clamp(page)
	h.settled, h.current, h.target = page, page, page
	h.scrolling = false

	h.logger.Debug("Jumped to page", zap.Int("page", page))
}

// AnimateToPage steps one page per frame until page is reached
func (h *MemoryHost) AnimateToPage(ctx context.Context, page int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h.mu.Lock()
	h.supersede()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	h.generation++
	gen := h.generation
	h.cancel = cancel
	page = h.clamp(page)
	h.target = page
	h.scrolling = true
	h.mu.Unlock()

	h.logger.Debug("Animating to page",
		zap.Int("from", h.CurrentPage()),
		zap.Int("to", page))

	if h.frameInterval <= 0 {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.generation == gen {
			h.current = page
			h.finish()
		}
		return nil
	}

	ticker := time.NewTicker(h.frameInterval)
	defer ticker.Stop()

	for {
		h.mu.Lock()
		if h.generation == gen && h.current == page {
			h.finish()
			h.mu.Unlock()
			return nil
		}
		h.mu.Unlock()

		select {
		case <-ctx.Done():
			h.mu.Lock()
			if h.generation == gen {
				h.finish()
				h.logger.Debug("Animation cancelled", zap.Int("page", h.settled))
			}
			h.mu.Unlock()
			return ctx.Err()

		case <-ticker.C:
			h.mu.Lock()
			if h.generation == gen {
				if h.current < page {
					h.current++
				} else if h.current > page {
					h.current--
				}
			}
			h.mu.Unlock()
		}
	}
}

// finish settles at the current page; callers hold mu
func (h *MemoryHost) finish() {
	h.settled = h.current
	h.target = h.current
	h.scrolling = false
	h.cancel = nil
}

// supersede cancels a running animation; callers hold mu
func (h *MemoryHost) supersede() {
	h.generation++
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

func (h *MemoryHost) clamp(page int) int {
	if page < 0 {
		return 0
	}
	if page >= h.pageCount {
		return h.pageCount - 1
	}
	return page
}
