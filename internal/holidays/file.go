package holidays

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/username/calendar-pager/pkg/dateutil"
	"go.uber.org/zap"
)

// FileProvider serves day types from a local text file.
// Days the file does not list fall back to weekday rules.
//
// Format, one day per line:
//
//	# comment
//	YYYY-MM-DD <workday|weekend|holiday|shortened> [note]
type FileProvider struct {
	filePath string
	logger   *zap.Logger

	mu   sync.RWMutex
	data map[string]map[int]DayInfo // "YYYY-MM" -> day of month -> info
}

// NewFileProvider creates a new FileProvider; call Load before use
func NewFileProvider(filePath string, logger *zap.Logger) *FileProvider {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FileProvider{
		filePath: filePath,
		logger:   logger,
		data:     make(map[string]map[int]DayInfo),
	}
}

// Load reads the file, replacing anything loaded before
func (fp *FileProvider) Load() error {
	file, err := os.Open(fp.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holidays file: %w", err)
	}
	defer file.Close()

	data, err := fp.parse(file)
	if err != nil {
		return err
	}

	fp.mu.Lock()
	fp.data = data
	fp.mu.Unlock()

	fp.logger.Info("Holidays file loaded",
		zap.String("file", fp.filePath),
		zap.Int("months", len(data)))

	return nil
}

func (fp *FileProvider) parse(r io.Reader) (map[string]map[int]DayInfo, error) {
	data := make(map[string]map[int]DayInfo)
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, " ", 3)
		if len(parts) < 2 {
			fp.logger.Warn("Invalid line format", zap.Int("line", lineNo), zap.String("text", line))
			continue
		}

		date, err := time.Parse("2006-01-02", parts[0])
		if err != nil {
			fp.logger.Warn("Failed to parse date", zap.Int("line", lineNo), zap.Error(err))
			continue
		}

		dayType, err := ParseDayType(strings.ToLower(parts[1]))
		if err != nil {
			fp.logger.Warn("Unknown day type", zap.Int("line", lineNo), zap.Error(err))
			continue
		}

		note := ""
		if len(parts) == 3 {
			note = strings.TrimSpace(parts[2])
		}

		key := monthKey(date.Year(), date.Month())
		if data[key] == nil {
			data[key] = make(map[int]DayInfo)
		}
		data[key][date.Day()] = DayInfo{Date: date, Type: dayType, Note: note}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading holidays file: %w", err)
	}

	return data, nil
}

// MonthInfo returns ErrMonthNotFound when the file lists no day of the month
func (fp *FileProvider) MonthInfo(_ context.Context, year int, month time.Month) (*MonthInfo, error) {
	key := monthKey(year, month)

	fp.mu.RLock()
	listed, ok := fp.data[key]
	fp.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w in holidays file: %s", ErrMonthNotFound, key)
	}

	length := dateutil.MonthLength(year, month)
	info := &MonthInfo{
		Year:  year,
		Month: month,
		Days:  make([]DayInfo, 0, length),
	}

	for day := 1; day <= length; day++ {
		if listedDay, ok := listed[day]; ok {
			info.add(listedDay)
			continue
		}

		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		dayType := DayTypeWorkday
		if dateutil.IsWeekend(date) {
			dayType = DayTypeWeekend
		}
		info.add(DayInfo{Date: date, Type: dayType})
	}

	return info, nil
}
