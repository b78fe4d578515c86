package lumen

import (
	"sync"
)

// Package-level default logger, initialized on first use.
var (
	defaultMu     sync.Mutex
	defaultLogger *Logger
)

// Init configures the package-level default logger, replacing (and
// closing) any existing one.
func Init(cfg *Config) error {
	lg, err := New(cfg)
	if err != nil {
		return err
	}

	defaultMu.Lock()
	old := defaultLogger
	defaultLogger = lg
	defaultMu.Unlock()

	if old != nil {
		return old.Close()
	}
	return nil
}

// Default returns the package-level logger, creating it with default
// configuration on first use.
func Default() (*Logger, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLogger == nil {
		lg, err := New(nil)
		if err != nil {
			return nil, err
		}
		defaultLogger = lg
	}
	return defaultLogger, nil
}

// Shutdown flushes and closes the package-level default logger.
func Shutdown() error {
	defaultMu.Lock()
	lg := defaultLogger
	defaultLogger = nil
	defaultMu.Unlock()

	if lg == nil {
		return nil
	}
	return lg.Close()
}

// Default package-level functions that delegate to the default logger

// Debug logs a message at debug level
func Debug(msg string, extras ...any) error {
	lg, err := Default()
	if err != nil {
		return err
	}
	return lg.emit(3, LevelDebug, nil, msg, extras)
}

// Info logs a message at info level
func Info(msg string, extras ...any) error {
	lg, err := Default()
	if err != nil {
		return err
	}
	return lg.emit(3, LevelInfo, nil, msg, extras)
}

// Warning logs a message at warning level
func Warning(msg string, extras ...any) error {
	lg, err := Default()
	if err != nil {
		return err
	}
	return lg.emit(3, LevelWarning, nil, msg, extras)
}

// Error logs a message at error level
func Error(msg string, extras ...any) error {
	lg, err := Default()
	if err != nil {
		return err
	}
	return lg.emit(3, LevelError, nil, msg, extras)
}

// Critical logs a message at critical level
func Critical(msg string, extras ...any) error {
	lg, err := Default()
	if err != nil {
		return err
	}
	return lg.emit(3, LevelCritical, nil, msg, extras)
}

// Exception logs a message at error level with error context attached
func Exception(err error, msg string, extras ...any) error {
	lg, lgErr := Default()
	if lgErr != nil {
		return lgErr
	}
	return lg.emit(3, LevelError, err, msg, extras)
}
