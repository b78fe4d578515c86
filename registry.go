package lumen

import (
	"sync"
)

// registry holds the process-wide named loggers. Instances are created on
// first use and live until explicitly closed; there is no implicit global
// state beyond this map.
var registry = struct {
	mu      sync.Mutex
	loggers map[string]*Logger
}{loggers: make(map[string]*Logger)}

// GetLogger returns the logger registered under name, creating it on first
// use. cfg is consulted only on creation; a nil cfg uses defaults with the
// registry name as the file base name. Subsequent calls for the same name
// return the existing instance regardless of cfg.
func GetLogger(name string, cfg *Config) (*Logger, error) {
	if name == "" {
		return nil, configError("logger name cannot be empty")
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if lg, ok := registry.loggers[name]; ok {
		return lg, nil
	}

	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.Clone()
	}
	if cfg.Name == "" {
		cfg.Name = name
	}

	lg, err := New(cfg)
	if err != nil {
		return nil, err
	}
	registry.loggers[name] = lg
	return lg, nil
}

// Lookup returns the registered logger without creating one.
func Lookup(name string) (*Logger, bool) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	lg, ok := registry.loggers[name]
	return lg, ok
}

// CloseLogger flushes and closes the named logger and removes it from the
// registry. Unknown names are not an error.
func CloseLogger(name string) error {
	registry.mu.Lock()
	lg, ok := registry.loggers[name]
	delete(registry.loggers, name)
	registry.mu.Unlock()

	if !ok {
		return nil
	}
	return lg.Close()
}

// CloseAll tears down every registered logger, combining any close errors.
func CloseAll() error {
	registry.mu.Lock()
	loggers := registry.loggers
	registry.loggers = make(map[string]*Logger)
	registry.mu.Unlock()

	var err error
	for _, lg := range loggers {
		err = combineErrors(err, lg.Close())
	}
	return err
}
