package lumen

// Builder provides a fluent API for building logger configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg *Config
	err error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Logger instance with the specified configuration.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	return New(b.cfg)
}

// Config returns the accumulated configuration without building a logger.
func (b *Builder) Config() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.cfg.Clone(), nil
}

// Level sets the minimum log level.
func (b *Builder) Level(level int64) *Builder {
	b.cfg.Level = level
	return b
}

// LevelString sets the minimum log level from a string.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	levelVal, err := Level(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = levelVal
	return b
}

// Name sets the base file name.
func (b *Builder) Name(name string) *Builder {
	b.cfg.Name = name
	return b
}

// Directory sets the log directory.
func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

// Format sets a custom line template.
func (b *Builder) Format(format string) *Builder {
	b.cfg.Format = format
	return b
}

// DateFormat sets the date field format.
func (b *Builder) DateFormat(format string) *Builder {
	b.cfg.DateFormat = format
	return b
}

// RootPrefix sets the prefix stripped when deriving module names.
func (b *Builder) RootPrefix(prefix string) *Builder {
	b.cfg.RootPrefix = prefix
	return b
}

// Task sets the default task label.
func (b *Builder) Task(name string) *Builder {
	b.cfg.Task = name
	return b
}

// EnableColor toggles colorized console output.
func (b *Builder) EnableColor(enable bool) *Builder {
	b.cfg.EnableColor = enable
	return b
}

// EnableRotation toggles file rotation.
func (b *Builder) EnableRotation(enable bool) *Builder {
	b.cfg.EnableRotation = enable
	return b
}

// RotateBySize selects size-based rotation with the given threshold and
// retained segment count.
func (b *Builder) RotateBySize(maxBytes, backupCount int64) *Builder {
	b.cfg.RotateBy = "size"
	b.cfg.MaxSizeBytes = maxBytes
	b.cfg.BackupCount = backupCount
	return b
}

// RotateByTime selects time-based rotation with the given interval.
func (b *Builder) RotateByTime(unit string, interval, backupCount int64) *Builder {
	b.cfg.RotateBy = "time"
	b.cfg.IntervalUnit = unit
	b.cfg.Interval = interval
	b.cfg.BackupCount = backupCount
	return b
}

// UTC toggles UTC time boundaries for time-based rotation.
func (b *Builder) UTC(utc bool) *Builder {
	b.cfg.UTC = utc
	return b
}

// AnchorTime sets the "HH:MM:SS" boundary phase for time-based rotation.
func (b *Builder) AnchorTime(at string) *Builder {
	b.cfg.AnchorTime = at
	return b
}

// Encoding sets the file text encoding by IANA name.
func (b *Builder) Encoding(name string) *Builder {
	b.cfg.Encoding = name
	return b
}

// DeferOpen delays opening the log file until the first write.
func (b *Builder) DeferOpen(enable bool) *Builder {
	b.cfg.DeferOpen = enable
	return b
}
