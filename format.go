package lumen

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// defaultDateFormat matches the "Jan 02, 2006 15:04:05" layout of the
	// default line; milliseconds are appended separately.
	defaultDateFormat = "Jan 02, 2006 15:04:05"

	// moduleNameLimit bounds the derived module name; longer names keep
	// the first ellipsisKeep characters plus "...".
	moduleNameLimit = 30
	ellipsisKeep    = 27
)

// Formatter renders records to text lines. It holds only immutable
// configuration, so a single instance may be shared by any number of
// goroutines without locking.
type Formatter struct {
	tmpl       *template // nil selects the built-in layout
	dateFormat string
	rootPrefix string
	pid        int
}

// newFormatter compiles the formatting configuration. An empty format
// selects the built-in layout; a non-empty one is parsed as a custom
// template and overrides the default verbatim.
func newFormatter(format, dateFormat, rootPrefix string) (*Formatter, error) {
	f := &Formatter{
		dateFormat: dateFormat,
		rootPrefix: rootPrefix,
		pid:        os.Getpid(),
	}
	if f.dateFormat == "" {
		f.dateFormat = defaultDateFormat
	}
	if format != "" {
		tmpl, err := parseTemplate(format)
		if err != nil {
			return nil, err
		}
		f.tmpl = tmpl
	}
	return f, nil
}

// Render produces the text line for a record, without trailing newline.
// With colorize set, the level token (and nothing else) is wrapped in the
// level's ANSI escape sequence.
func (f *Formatter) Render(rec *Record, colorize bool) string {
	buf := make([]byte, 0, 256)

	if f.tmpl != nil {
		buf = f.tmpl.render(buf, func(field string) string {
			return f.fieldValue(rec, field, colorize)
		})
	} else {
		buf = f.appendDefaultLine(buf, rec, colorize)
	}

	buf = f.appendExtras(buf, rec)

	if rec.Err != nil {
		// The summary must stay on one line; drop any newlines the
		// message smuggled in before appending it.
		buf = stripNewlines(buf)
		buf = append(buf, ' ')
		buf = appendErrorSummary(buf, rec.Err)
	}
	return string(buf)
}

// appendDefaultLine renders the built-in layout:
// <date>.<ms> <level> <pid> [<task>] <module>:<line> : <message>
func (f *Formatter) appendDefaultLine(buf []byte, rec *Record, colorize bool) []byte {
	buf = rec.Time.AppendFormat(buf, f.dateFormat)
	buf = fmt.Appendf(buf, ".%03d", rec.Time.Nanosecond()/1e6)

	buf = append(buf, ' ')
	buf = appendLevelToken(buf, rec.Level, 8, colorize)

	buf = fmt.Appendf(buf, " %07d [", f.pid)
	buf = appendRightAligned(buf, rec.Task, 15)
	buf = append(buf, "] "...)
	buf = appendRightAligned(buf, f.moduleName(rec.SourcePath), moduleNameLimit)
	buf = fmt.Appendf(buf, ":%04d : ", rec.Line)
	buf = append(buf, rec.Message...)
	return buf
}

// fieldValue resolves a custom-template field. Custom templates bypass
// module-name derivation and truncation.
func (f *Formatter) fieldValue(rec *Record, field string, colorize bool) string {
	switch field {
	case "date":
		return rec.Time.Format(f.dateFormat) + fmt.Sprintf(".%03d", rec.Time.Nanosecond()/1e6)
	case "level":
		name := levelToString(rec.Level)
		if colorize {
			return levelColor(rec.Level) + name + ansiReset
		}
		return name
	case "pid":
		return strconv.Itoa(f.pid)
	case "task":
		return rec.Task
	case "module":
		return rec.SourcePath
	case "line":
		return strconv.Itoa(rec.Line)
	case "message":
		return rec.Message
	}
	return "" // unreachable, fields are validated at parse time
}

// appendLevelToken writes the level name right-aligned to width. Padding
// spaces stay outside the escape sequence so colorized and plain lines
// differ only by the codes around the token itself.
func appendLevelToken(buf []byte, level int64, width int, colorize bool) []byte {
	name := levelToString(level)
	for i := len(name); i < width; i++ {
		buf = append(buf, ' ')
	}
	if colorize {
		buf = append(buf, levelColor(level)...)
		buf = append(buf, name...)
		buf = append(buf, ansiReset...)
		return buf
	}
	return append(buf, name...)
}

// appendExtras renders structured extras as key=value pairs after the
// message. A trailing unpaired value is rendered alone.
func (f *Formatter) appendExtras(buf []byte, rec *Record) []byte {
	for i := 0; i < len(rec.Extras); i += 2 {
		buf = append(buf, ' ')
		if i+1 < len(rec.Extras) {
			buf = appendValue(buf, rec.Extras[i], f.dateFormat)
			buf = append(buf, '=')
			buf = appendValue(buf, rec.Extras[i+1], f.dateFormat)
		} else {
			buf = appendValue(buf, rec.Extras[i], f.dateFormat)
		}
	}
	return buf
}

// appendErrorSummary renders the single-line exception clause:
// <Kind>: <text> [in <function>() ]on line <line>
// The function clause is omitted for module-scope errors.
func appendErrorSummary(buf []byte, info *ErrorInfo) []byte {
	buf = append(buf, info.Kind...)
	buf = append(buf, ": "...)
	buf = append(buf, info.Text...)
	buf = append(buf, ' ')
	if info.Function != "" {
		buf = append(buf, "in "...)
		buf = append(buf, info.Function...)
		buf = append(buf, "() "...)
	}
	return fmt.Appendf(buf, "on line %d", info.Line)
}

// moduleName derives the dotted module name from a source path: strip the
// root prefix, drop the extension, replace separators with dots, and
// truncate to moduleNameLimit with a trailing ellipsis.
func (f *Formatter) moduleName(path string) string {
	p := filepath.ToSlash(path)
	if f.rootPrefix != "" {
		prefix := filepath.ToSlash(f.rootPrefix)
		if idx := strings.Index(p, prefix); idx >= 0 {
			p = p[idx+len(prefix):]
		}
	}
	p = strings.TrimPrefix(p, "/")
	p = strings.TrimSuffix(p, filepath.Ext(p))
	p = strings.ReplaceAll(p, "/", ".")
	if len(p) > moduleNameLimit {
		p = p[:ellipsisKeep] + "..."
	}
	return p
}

// appendRightAligned pads s with leading spaces to the given width.
func appendRightAligned(buf []byte, s string, width int) []byte {
	for i := len(s); i < width; i++ {
		buf = append(buf, ' ')
	}
	return append(buf, s...)
}

// stripNewlines removes CR and LF bytes in place.
func stripNewlines(buf []byte) []byte {
	out := buf[:0]
	for _, b := range buf {
		if b == '\n' || b == '\r' {
			continue
		}
		out = append(out, b)
	}
	return out
}
