package compat

import (
	"fmt"
	"os"

	"github.com/lumenlog/lumen"
)

// GnetAdapter wraps a lumen.Logger to implement gnet's logging.Logger interface
type GnetAdapter struct {
	logger       *lumen.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *lumen.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	_ = a.logger.Debug(fmt.Sprintf(format, args...), "source", "gnet")
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	_ = a.logger.Info(fmt.Sprintf(format, args...), "source", "gnet")
}

// Warnf logs at warning level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	_ = a.logger.Warning(fmt.Sprintf(format, args...), "source", "gnet")
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	_ = a.logger.Error(fmt.Sprintf(format, args...), "source", "gnet")
}

// Fatalf logs at critical level and triggers the fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_ = a.logger.Critical(msg, "source", "gnet", "fatal", true)

	// Ensure the log is on disk before exit
	_ = a.logger.Sync()

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
