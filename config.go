package lumen

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/lixenwraith/config"
)

// Config holds all logger configuration values
type Config struct {
	// Basic settings
	Level     int64  `toml:"level"`
	Name      string `toml:"name"` // Base name for log files, empty derives from the binary
	Directory string `toml:"directory"`

	// Formatting
	Format     string `toml:"format"`      // Custom line template, empty selects the default layout
	DateFormat string `toml:"date_format"` // Time format for the date field
	RootPrefix string `toml:"root_prefix"` // Prefix stripped when deriving module names, empty uses the working directory
	Task       string `toml:"task"`        // Default task label on records

	// Console settings
	EnableColor bool `toml:"enable_color"` // Colorize console level tokens

	// Rotation settings
	EnableRotation bool   `toml:"enable_rotation"`
	RotateBy       string `toml:"rotate_by"`      // "size" or "time"
	MaxSizeBytes   int64  `toml:"max_size_bytes"` // Size threshold, 0 disables size rotation
	BackupCount    int64  `toml:"backup_count"`   // Retained segments, 0 deletes rotated files
	IntervalUnit   string `toml:"interval_unit"`  // "second", "minute", "hour", "day"
	Interval       int64  `toml:"interval"`       // Interval multiplier
	UTC            bool   `toml:"utc"`            // Compute time boundaries in UTC
	AnchorTime     string `toml:"anchor_time"`    // "HH:MM:SS" boundary phase, empty anchors at open

	// File settings
	Encoding  string `toml:"encoding"`   // IANA encoding name, empty writes UTF-8
	DeferOpen bool   `toml:"defer_open"` // Open the file on first write instead of at construction
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Level:     LevelDebug,
	Name:      "", // Derived from the running binary
	Directory: "./logs",

	Format:     "",
	DateFormat: defaultDateFormat,
	RootPrefix: "",
	Task:       "main",

	EnableColor: true,

	EnableRotation: true,
	RotateBy:       "size",
	MaxSizeBytes:   1000000,
	BackupCount:    5,
	IntervalUnit:   "hour",
	Interval:       1,
	UTC:            false,
	AnchorTime:     "",

	Encoding:  "",
	DeferOpen: false,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and returns a validated Config
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Use lixenwraith/config as a loader
	loader := config.New()

	// Register the struct to enable proper unmarshaling
	if err := loader.RegisterStruct("lumen.", *cfg); err != nil {
		return nil, fmt.Errorf("failed to register config struct: %w", err)
	}

	// Load from file (handles file not found gracefully)
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	// Extract values into our Config struct
	if err := extractConfig(loader, "lumen.", cfg); err != nil {
		return nil, fmt.Errorf("failed to extract config values: %w", err)
	}

	// Validate the loaded configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromKV creates a Config from defaults plus "key=value" overrides
func NewConfigFromKV(overrides ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			return nil, err
		}
		if err := applyConfigField(cfg, key, value); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		// Get the toml tag to determine the config key
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		key := prefix + tomlTag

		// Get value from loader
		val, found := loader.Get(key)
		if !found {
			continue // Use default value
		}

		// Level accepts names in addition to numeric values
		if tomlTag == "level" {
			if name, ok := val.(string); ok {
				lvl, err := Level(name)
				if err != nil {
					return err
				}
				cfg.Level = lvl
				continue
			}
		}

		// Set the field value with type conversion
		if err := setFieldValue(fieldValue, val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// applyConfigField applies a single string override to the named field
func applyConfigField(cfg *Config, key, value string) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	keyLower := strings.ToLower(strings.TrimSpace(key))

	// Level accepts names in addition to numeric values
	if keyLower == "level" {
		if lvl, err := Level(value); err == nil {
			cfg.Level = lvl
			return nil
		}
	}

	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("toml") != keyLower {
			continue
		}
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(value)
		case reflect.Int64:
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return configError("'%s' must be an integer: %s", key, value)
			}
			field.SetInt(n)
		case reflect.Bool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return configError("'%s' must be a boolean: %s", key, value)
			}
			field.SetBool(b)
		}
		return nil
	}
	return configError("unknown config key: %s", key)
}

// Validate performs validation on the configuration.
// All failures wrap ErrConfiguration and surface at construction time.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Directory) == "" {
		return configError("directory cannot be empty")
	}

	if c.MaxSizeBytes < 0 {
		return configError("max_size_bytes cannot be negative: %d", c.MaxSizeBytes)
	}

	if c.BackupCount < 0 {
		return configError("backup_count cannot be negative: %d", c.BackupCount)
	}

	if c.EnableRotation {
		if c.RotateBy != "size" && c.RotateBy != "time" {
			return configError("unknown rotate_by mode '%s' (use size or time)", c.RotateBy)
		}
		if c.RotateBy == "time" {
			if _, ok := intervalUnits[strings.ToLower(c.IntervalUnit)]; !ok {
				return configError("invalid interval_unit '%s' (use second, minute, hour, or day)", c.IntervalUnit)
			}
			if c.Interval <= 0 {
				return configError("interval must be positive: %d", c.Interval)
			}
			if c.AnchorTime != "" {
				if _, err := parseAnchor(c.AnchorTime); err != nil {
					return err
				}
			}
		}
	}

	if c.Format != "" {
		if _, err := parseTemplate(c.Format); err != nil {
			return err
		}
	}

	if _, err := resolveEncoding(c.Encoding); err != nil {
		return err
	}

	if strings.TrimSpace(c.Task) == "" {
		return configError("task label cannot be blank")
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}
