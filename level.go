package lumen

import "strings"

// Log levels in ascending severity. The numeric gaps leave room for
// intermediate levels without renumbering.
const (
	LevelDebug    int64 = 10
	LevelInfo     int64 = 20
	LevelWarning  int64 = 30
	LevelError    int64 = 40
	LevelCritical int64 = 50
)

// ANSI escape sequences used to colorize the level token on console
// output.
const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[91m"
	ansiGreen  = "\033[92m"
	ansiYellow = "\033[93m"
	ansiCyan   = "\033[96m"
)

var levelColors = map[int64]string{
	LevelDebug:    ansiCyan,
	LevelInfo:     ansiGreen,
	LevelWarning:  ansiYellow,
	LevelError:    ansiRed,
	LevelCritical: ansiBold + ansiRed,
}

// levelToString converts a level value to its canonical name.
func levelToString(level int64) string {
	switch level {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// levelColor returns the escape sequence for a level, empty for levels
// without an assigned color.
func levelColor(level int64) string {
	return levelColors[level]
}

// Level parses a level name into its numeric value. Matching is
// case-insensitive and accepts the "warn" shorthand.
func Level(levelStr string) (int64, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	case "critical", "fatal":
		return LevelCritical, nil
	default:
		return 0, configError("invalid log level '%s'", levelStr)
	}
}
