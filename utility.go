package lumen

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", configError("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", configError("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}

// sanitizeName normalizes a base file name: lowercase, with anything that
// is not a letter, digit, dash, or underscore replaced by an underscore.
func sanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "lumen"
	}
	return b.String()
}

// defaultBaseName derives the log base name from the running binary, the
// way the entry-point stem names the file when nothing is configured.
func defaultBaseName() string {
	exe := filepath.Base(os.Args[0])
	exe = strings.TrimSuffix(exe, filepath.Ext(exe))
	return sanitizeName(exe)
}
