package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultListen          = "127.0.0.1:8080"
	defaultTimezone        = "Asia/Kolkata"
	defaultWeekStart       = "sunday"
	defaultLogLevel        = "info"
	defaultReminderScan    = "* * * * *"
	defaultConflictHorizon = 366
	defaultMaxOccurrences  = 5000
)

// Conflict policies.
const (
	// ConflictWarn applies a reschedule and reports its conflicts.
	ConflictWarn = "warn"
	// ConflictReject refuses a reschedule that creates conflicts.
	ConflictReject = "reject"
)

// ICSConfig describes a calendar imported at startup.
type ICSConfig struct {
	// ID labels the source in logs.
	ID string `yaml:"id" json:"id"`
	// URL is an http(s) subscription URL or a local .ics path.
	URL string `yaml:"url" json:"url"`
}

// BasicAuthConfig holds HTTP Basic Auth credentials for the API.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address of the API.
	Listen string `yaml:"listen" json:"listen"`

	// Timezone is the IANA zone in which event dates and times are read
	// (e.g. "Asia/Kolkata"). It decides "today" and reminder trigger instants.
	Timezone string `yaml:"timezone" json:"timezone"`

	// WeekStart is the first day of a week view: "sunday" (default) or "monday".
	WeekStart string `yaml:"week_start" json:"week_start"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// ReminderScan is the cron schedule of the reminder scanner.
	ReminderScan string `yaml:"reminder_scan" json:"reminder_scan"`

	// ConflictPolicy is "warn" (default) or "reject".
	ConflictPolicy string `yaml:"conflict_policy" json:"conflict_policy"`

	// ConflictHorizonDays bounds how far ahead two recurring events are
	// compared when looking for a shared date.
	ConflictHorizonDays int `yaml:"conflict_horizon_days" json:"conflict_horizon_days"`

	// MaxOccurrences caps a single recurrence expansion.
	MaxOccurrences int `yaml:"max_occurrences" json:"max_occurrences"`

	// SeedFile, if set, is a YAML list of events loaded at startup instead
	// of the built-in sample schedule.
	SeedFile string `yaml:"seed_file,omitempty" json:"seed_file,omitempty"`

	// ImportICS lists calendars merged into the schedule at startup.
	ImportICS []ICSConfig `yaml:"import_ics" json:"import_ics"`

	// ICSCacheDir keeps the last download of every subscription URL.
	ICSCacheDir string `yaml:"ics_cache_dir,omitempty" json:"ics_cache_dir,omitempty"`

	// BasicAuth, if set, protects every endpoint except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:              defaultListen,
		Timezone:            defaultTimezone,
		WeekStart:           defaultWeekStart,
		LogLevel:            defaultLogLevel,
		ReminderScan:        defaultReminderScan,
		ConflictPolicy:      ConflictWarn,
		ConflictHorizonDays: defaultConflictHorizon,
		MaxOccurrences:      defaultMaxOccurrences,
		ImportICS:           []ICSConfig{},
	}
}

// Normalize fills in missing or unknown values with defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.Timezone == "" {
		c.Timezone = defaultTimezone
	}
	c.WeekStart = strings.ToLower(strings.TrimSpace(c.WeekStart))
	if c.WeekStart != "monday" && c.WeekStart != "sunday" {
		c.WeekStart = defaultWeekStart
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.ReminderScan == "" {
		c.ReminderScan = defaultReminderScan
	}
	c.ConflictPolicy = strings.ToLower(strings.TrimSpace(c.ConflictPolicy))
	if c.ConflictPolicy != ConflictWarn && c.ConflictPolicy != ConflictReject {
		c.ConflictPolicy = ConflictWarn
	}
	if c.ConflictHorizonDays <= 0 {
		c.ConflictHorizonDays = defaultConflictHorizon
	}
	if c.MaxOccurrences <= 0 {
		c.MaxOccurrences = defaultMaxOccurrences
	}
	if c.ImportICS == nil {
		c.ImportICS = []ICSConfig{}
	}
	if c.BasicAuth != nil && (c.BasicAuth.Username == "" || c.BasicAuth.Password == "") {
		c.BasicAuth = nil
	}
}

// FirstWeekday returns WeekStart as a time.Weekday.
func (c *Config) FirstWeekday() time.Weekday {
	if c.WeekStart == "monday" {
		return time.Monday
	}
	return time.Sunday
}

// Location loads Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "timezone %q", c.Timezone)
	}
	return loc, nil
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written with 0600
//     perms (creating the parent directory) and returned.
//   - Otherwise the YAML is read and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// The defaults are still usable; the caller decides.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, errors.Wrap(err, "read config")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes cfg to path atomically (temp file + rename) with 0600
// permissions, creating the parent directory (0700) if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".facultysched-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save is a convenience method delegating to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
