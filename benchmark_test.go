package lumen

import (
	"io"
	"testing"
)

func benchmarkLogger(b *testing.B, mutate func(*Config)) *Logger {
	b.Helper()
	cfg := DefaultConfig()
	cfg.Directory = b.TempDir()
	cfg.Name = "bench"
	cfg.EnableColor = false
	if mutate != nil {
		mutate(cfg)
	}
	logger, err := newLogger(cfg, io.Discard)
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = logger.Close() })
	return logger
}

// BenchmarkLoggerInfo measures the full synchronous write path.
func BenchmarkLoggerInfo(b *testing.B) {
	logger := benchmarkLogger(b, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", "i", i)
	}
}

// BenchmarkLoggerFiltered measures a record dropped by the level threshold.
func BenchmarkLoggerFiltered(b *testing.B) {
	logger := benchmarkLogger(b, func(c *Config) {
		c.Level = LevelCritical
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Debug("filtered out", "i", i)
	}
}

// BenchmarkRender measures formatting alone, without sink I/O.
func BenchmarkRender(b *testing.B) {
	f, err := newFormatter("", "", "/project")
	if err != nil {
		b.Fatal(err)
	}
	rec := testRecord()
	rec.Extras = []any{"key", "value", "n", 42}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Render(rec, false)
	}
}

// BenchmarkConcurrentLogging measures mutex contention on the sinks.
func BenchmarkConcurrentLogging(b *testing.B) {
	logger := benchmarkLogger(b, nil)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			logger.Info("concurrent", "i", i)
			i++
		}
	})
}
