package holidays

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/username/calendar-pager/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	DefaultIsDayOffURL = "https://isdayoff.ru"
	defaultHTTPTimeout = 10 * time.Second
	defaultCacheTTL    = 24 * time.Hour
)

// IsDayOffProvider fetches months from the isdayoff.ru bulk API
type IsDayOffProvider struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	cacheTTL   time.Duration

	cacheMu sync.RWMutex
	cache   map[string]*cachedMonth
}

type cachedMonth struct {
	data      *MonthInfo
	fetchedAt time.Time
}

// NewIsDayOffProvider creates a provider against baseURL (DefaultIsDayOffURL when empty)
func NewIsDayOffProvider(baseURL string, cacheTTL time.Duration, logger *zap.Logger) *IsDayOffProvider {
	if baseURL == "" {
		baseURL = DefaultIsDayOffURL
	}
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &IsDayOffProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger:   logger,
		cacheTTL: cacheTTL,
		cache:    make(map[string]*cachedMonth),
	}
}

// MonthInfo returns the cached month while it is fresh, otherwise fetches it
func (p *IsDayOffProvider) MonthInfo(ctx context.Context, year int, month time.Month) (*MonthInfo, error) {
	key := monthKey(year, month)

	p.cacheMu.RLock()
	if cached, ok := p.cache[key]; ok && time.Since(cached.fetchedAt) < p.cacheTTL {
		p.cacheMu.RUnlock()
		p.logger.Debug("Using cached month info", zap.String("month", key))
		return cached.data, nil
	}
	p.cacheMu.RUnlock()

	info, err := p.fetchMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	p.cacheMu.Lock()
	p.cache[key] = &cachedMonth{data: info, fetchedAt: time.Now()}
	p.cacheMu.Unlock()

	return info, nil
}

// ClearCache drops every cached month
func (p *IsDayOffProvider) ClearCache() {
	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()

	p.cache = make(map[string]*cachedMonth)
	p.logger.Info("Holiday cache cleared")
}

func (p *IsDayOffProvider) fetchMonth(ctx context.Context, year int, month time.Month) (*MonthInfo, error) {
	url := fmt.Sprintf("%s/api/getdata?year=%d&month=%d&pre=1", p.baseURL, year, int(month))

	p.logger.Debug("Fetching month from isdayoff",
		zap.String("url", url),
		zap.Int("year", year),
		zap.Int("month", int(month)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("isdayoff API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	info, err := parseBulkResponse(year, month, strings.TrimSpace(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse bulk response: %w", err)
	}

	p.logger.Info("Month fetched from isdayoff",
		zap.String("month", info.Key()),
		zap.Int("workdays", info.Workdays),
		zap.Int("holidays", info.Holidays))

	return info, nil
}

// parseBulkResponse parses one code per day of the month:
// 0 = working day, 1 = day off, 2 = shortened working day
func parseBulkResponse(year int, month time.Month, data string) (*MonthInfo, error) {
	length := dateutil.MonthLength(year, month)
	if len(data) != length {
		return nil, fmt.Errorf("bulk data length mismatch: expected %d, got %d", length, len(data))
	}

	info := &MonthInfo{
		Year:  year,
		Month: month,
		Days:  make([]DayInfo, 0, length),
	}

	for i, code := range data {
		date := time.Date(year, month, i+1, 0, 0, 0, 0, time.UTC)

		var dayType DayType
		switch code {
		case '0':
			dayType = DayTypeWorkday
		case '1':
			dayType = weekendOrHoliday(date)
		case '2':
			dayType = DayTypeShortened
		default:
			return nil, fmt.Errorf("unknown code '%c' at position %d", code, i)
		}

		info.add(DayInfo{Date: date, Type: dayType})
	}

	return info, nil
}
