package lumen

import (
	"io"
	"os"
	"path/filepath"
	"time"
)

// Logger composes a formatter with a file sink and a console sink. Every
// record is rendered once per sink: plain text for the file, colorized for
// the console when color is enabled. Configuration is fixed at
// construction; a Logger is safe for concurrent use.
type Logger struct {
	cfg       *Config
	formatter *Formatter
	file      *FileSink
	console   *ConsoleSink
	task      string
}

// New creates a Logger from the given configuration. A nil cfg uses
// defaults. Invalid parameters fail here, wrapped with ErrConfiguration;
// the log directory is created and (unless defer_open is set) the active
// file opened, so filesystem problems also surface immediately.
func New(cfg *Config) (*Logger, error) {
	return newLogger(cfg, nil)
}

// newLogger is the internal constructor with an injectable console writer.
func newLogger(cfg *Config, consoleWriter io.Writer) (*Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg = cfg.Clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Name == "" {
		cfg.Name = defaultBaseName()
	} else {
		cfg.Name = sanitizeName(cfg.Name)
	}

	rootPrefix := cfg.RootPrefix
	if rootPrefix == "" {
		if wd, err := os.Getwd(); err == nil {
			rootPrefix = wd
		}
	}

	formatter, err := newFormatter(cfg.Format, cfg.DateFormat, rootPrefix)
	if err != nil {
		return nil, err
	}

	policy, err := newRotationPolicy(cfg)
	if err != nil {
		return nil, err
	}

	encoder, err := resolveEncoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.Directory, 0755); err != nil {
		return nil, fsError("failed to create log directory '%s': %v", cfg.Directory, err)
	}

	file, err := newFileSink(filepath.Join(cfg.Directory, cfg.Name+".log"), policy, encoder, cfg.DeferOpen)
	if err != nil {
		return nil, err
	}

	return &Logger{
		cfg:       cfg,
		formatter: formatter,
		file:      file,
		console:   newConsoleSink(consoleWriter),
		task:      cfg.Task,
	}, nil
}

// emit is the single write path. Records below the configured minimum are
// dropped before any formatting or I/O. Sink failures are independent: a
// file error never suppresses the console write or vice versa, and both
// are combined into the returned error.
func (l *Logger) emit(skip int, level int64, err error, msg string, extras []any) error {
	if level < l.cfg.Level {
		return nil
	}

	path, line, fn := capture(skip)
	rec := &Record{
		Time:       time.Now(),
		Level:      level,
		SourcePath: path,
		Line:       line,
		Function:   fn,
		Task:       l.task,
		Message:    msg,
		Extras:     extras,
	}
	if err != nil {
		rec.Err = newErrorInfo(err, fn, line)
	}

	plain := l.formatter.Render(rec, false)
	fileErr := l.file.Write(plain)

	consoleLine := plain
	if l.cfg.EnableColor {
		consoleLine = l.formatter.Render(rec, true)
	}
	consoleErr := l.console.Write(consoleLine)

	return combineErrors(fileErr, consoleErr)
}

// Emit logs a message at an arbitrary level with optional key=value extras.
func (l *Logger) Emit(level int64, msg string, extras ...any) error {
	return l.emit(3, level, nil, msg, extras)
}

// EmitErr logs a message at an arbitrary level with error context attached.
func (l *Logger) EmitErr(level int64, err error, msg string, extras ...any) error {
	return l.emit(3, level, err, msg, extras)
}

// Debug logs a message at debug level
func (l *Logger) Debug(msg string, extras ...any) error {
	return l.emit(3, LevelDebug, nil, msg, extras)
}

// Info logs a message at info level
func (l *Logger) Info(msg string, extras ...any) error {
	return l.emit(3, LevelInfo, nil, msg, extras)
}

// Warning logs a message at warning level
func (l *Logger) Warning(msg string, extras ...any) error {
	return l.emit(3, LevelWarning, nil, msg, extras)
}

// Error logs a message at error level
func (l *Logger) Error(msg string, extras ...any) error {
	return l.emit(3, LevelError, nil, msg, extras)
}

// Critical logs a message at critical level
func (l *Logger) Critical(msg string, extras ...any) error {
	return l.emit(3, LevelCritical, nil, msg, extras)
}

// Exception logs a message at error level with a one-line summary of err
// appended to the record.
func (l *Logger) Exception(err error, msg string, extras ...any) error {
	return l.emit(3, LevelError, err, msg, extras)
}

// WithTask returns a logger that stamps records with the given task label.
// Sinks and configuration are shared with the receiver.
func (l *Logger) WithTask(name string) *Logger {
	if name == "" {
		return l
	}
	derived := *l
	derived.task = name
	return &derived
}

// Config returns a copy of the logger's configuration.
func (l *Logger) Config() *Config {
	return l.cfg.Clone()
}

// FilePath returns the path of the active log file.
func (l *Logger) FilePath() string {
	return l.file.path
}

// Sync flushes the active log file to disk.
func (l *Logger) Sync() error {
	return l.file.Sync()
}

// Close flushes and closes the file sink. The console stream is never
// closed. A write after Close implicitly reopens the file sink.
func (l *Logger) Close() error {
	return l.file.Close()
}
