package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"github.com/username/calendar-pager/pkg/dateutil"
)

// EnvPrefix prefixes every environment override, e.g. CALENDAR_PAGER_CALENDAR_START_OF_WEEK
const EnvPrefix = "CALENDAR_PAGER"

// Config represents application configuration
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	State    StateConfig    `mapstructure:"state"`
	Render   RenderConfig   `mapstructure:"render"`
	Holidays HolidaysConfig `mapstructure:"holidays"`
	Pager    PagerConfig    `mapstructure:"pager"`
	Log      LogConfig      `mapstructure:"log"`
}

// CalendarConfig describes the paged month window
type CalendarConfig struct {
	StartOfWeek  string `mapstructure:"start_of_week"`
	InitialMonth string `mapstructure:"initial_month"` // YYYY-MM, empty for the current month
	MinMonth     string `mapstructure:"min_month"`
	MaxMonth     string `mapstructure:"max_month"`
	MonthLimit   int    `mapstructure:"month_limit"` // months each side of initial_month when min/max are empty
}

// StateConfig represents state storage configuration
type StateConfig struct {
	File     string `mapstructure:"file"`
	Autosave bool   `mapstructure:"autosave"`
}

// RenderConfig controls the text grid
type RenderConfig struct {
	ShowWeekNumbers  bool   `mapstructure:"show_week_numbers"`
	ShowAdjacentDays bool   `mapstructure:"show_adjacent_days"`
	MarkWeekends     bool   `mapstructure:"mark_weekends"`
	Locale           string `mapstructure:"locale"`
}

// HolidaysConfig selects the day-type provider
type HolidaysConfig struct {
	Type         string `mapstructure:"type"` // "none", "weekends", "file" or "isdayoff"
	File         string `mapstructure:"file"`
	APIURL       string `mapstructure:"api_url"`
	FallbackFile string `mapstructure:"fallback_file"` // For isdayoff type
	CacheTTL     string `mapstructure:"cache_ttl"`
}

// PagerConfig tunes the in-process page host
type PagerConfig struct {
	FrameInterval string `mapstructure:"frame_interval"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Loader reads configuration and can watch the file it read for changes
type Loader struct {
	v    *viper.Viper
	path string
}

// NewLoader creates a loader for configPath. An empty path searches
// ., $HOME/.calendar-pager and /etc/calendar-pager for config.yaml.
func NewLoader(configPath string) *Loader {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.calendar-pager")
		v.AddConfigPath("/etc/calendar-pager")
	}

	setDefaults(v)

	// Read environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v, path: configPath}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("calendar.start_of_week", "monday")
	v.SetDefault("calendar.initial_month", "")
	v.SetDefault("calendar.min_month", "")
	v.SetDefault("calendar.max_month", "")
	v.SetDefault("calendar.month_limit", 120)
	v.SetDefault("state.file", "$HOME/.calendar-pager/state.json")
	v.SetDefault("state.autosave", true)
	v.SetDefault("render.show_week_numbers", false)
	v.SetDefault("render.show_adjacent_days", false)
	v.SetDefault("render.mark_weekends", true)
	v.SetDefault("render.locale", "en")
	v.SetDefault("holidays.type", "weekends")
	v.SetDefault("holidays.file", "")
	v.SetDefault("holidays.api_url", "https://isdayoff.ru")
	v.SetDefault("holidays.fallback_file", "")
	v.SetDefault("holidays.cache_ttl", "24h")
	v.SetDefault("pager.frame_interval", "16ms")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "warn")
}

// Load reads, unmarshals and validates the configuration.
// Without an explicit path a missing config file is not an error.
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// ConfigFileUsed returns the file the last Load read, empty when running on defaults
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Watch calls onChange whenever the loaded config file changes.
// It reports false when there is no file to watch.
func (l *Loader) Watch(onChange func(fsnotify.Event)) bool {
	if l.v.ConfigFileUsed() == "" {
		return false
	}
	l.v.OnConfigChange(onChange)
	l.v.WatchConfig()
	return true
}

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	return NewLoader(configPath).Load()
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate Calendar config
	if _, err := dateutil.ParseWeekday(c.Calendar.StartOfWeek); err != nil {
		return fmt.Errorf("calendar.start_of_week: %w", err)
	}
	for name, value := range map[string]string{
		"calendar.initial_month": c.Calendar.InitialMonth,
		"calendar.min_month":     c.Calendar.MinMonth,
		"calendar.max_month":     c.Calendar.MaxMonth,
	} {
		if value == "" {
			continue
		}
		if _, err := dateutil.ParseMonth(value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if minMonth, maxMonth := c.GetMinMonth(), c.GetMaxMonth(); minMonth != nil && maxMonth != nil && minMonth.After(*maxMonth) {
		return fmt.Errorf("calendar.min_month must not be after calendar.max_month")
	}
	if c.Calendar.MonthLimit < 0 {
		return fmt.Errorf("calendar.month_limit must not be negative")
	}

	// Validate State config
	if c.State.File == "" {
		return fmt.Errorf("state.file is required")
	}

	// Validate Holidays config
	switch c.Holidays.Type {
	case "", "none", "weekends":
	case "file":
		if c.Holidays.File == "" {
			return fmt.Errorf("holidays.file is required for file type")
		}
	case "isdayoff":
		if c.Holidays.APIURL == "" {
			return fmt.Errorf("holidays.api_url is required for isdayoff type")
		}
	default:
		return fmt.Errorf("holidays.type must be 'none', 'weekends', 'file' or 'isdayoff', got '%s'", c.Holidays.Type)
	}
	if c.Holidays.CacheTTL != "" {
		if _, err := time.ParseDuration(c.Holidays.CacheTTL); err != nil {
			return fmt.Errorf("holidays.cache_ttl: %w", err)
		}
	}

	// Validate Pager config
	if c.Pager.FrameInterval != "" {
		d, err := time.ParseDuration(c.Pager.FrameInterval)
		if err != nil {
			return fmt.Errorf("pager.frame_interval: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("pager.frame_interval must not be negative")
		}
	}

	return nil
}

// GetStartOfWeek returns the configured first weekday, Monday by default
func (c *Config) GetStartOfWeek() time.Weekday {
	wd, err := dateutil.ParseWeekday(c.Calendar.StartOfWeek)
	if err != nil {
		return time.Monday
	}
	return wd
}

// GetInitialMonth returns the configured initial month, the current month by default
func (c *Config) GetInitialMonth() time.Time {
	if m, err := dateutil.ParseMonth(c.Calendar.InitialMonth); err == nil {
		return m
	}
	return dateutil.StartOfMonth(dateutil.Today())
}

// GetMinMonth returns the configured lower bound, nil when unset
func (c *Config) GetMinMonth() *time.Time {
	return optionalMonth(c.Calendar.MinMonth)
}

// GetMaxMonth returns the configured upper bound, nil when unset
func (c *Config) GetMaxMonth() *time.Time {
	return optionalMonth(c.Calendar.MaxMonth)
}

func optionalMonth(value string) *time.Time {
	m, err := dateutil.ParseMonth(value)
	if err != nil {
		return nil
	}
	return &m
}

// GetMonthLimit returns months each side of the initial month, 120 by default
func (c *CalendarConfig) GetMonthLimit() int {
	if c.MonthLimit <= 0 {
		return 120
	}
	return c.MonthLimit
}

// GetCacheTTL returns cache TTL duration
func (c *HolidaysConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}

// GetFrameInterval returns the animation frame interval
func (c *PagerConfig) GetFrameInterval() time.Duration {
	if c.FrameInterval == "" {
		return 16 * time.Millisecond
	}
	duration, err := time.ParseDuration(c.FrameInterval)
	if err != nil || duration < 0 {
		return 16 * time.Millisecond
	}
	return duration
}

// ExpandEnvVars expands environment variables in file paths
func (c *Config) ExpandEnvVars() {
	c.State.File = os.ExpandEnv(c.State.File)
	c.Holidays.File = os.ExpandEnv(c.Holidays.File)
	c.Holidays.FallbackFile = os.ExpandEnv(c.Holidays.FallbackFile)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
