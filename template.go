package lumen

import (
	"strings"
)

// Custom format templates interpolate a fixed set of named fields. The set
// is closed so templates can be fully validated at configuration time
// instead of resolving field names per record.
var templateFields = map[string]bool{
	"date":    true,
	"level":   true,
	"pid":     true,
	"task":    true,
	"module":  true,
	"line":    true,
	"message": true,
}

type templatePart struct {
	text  string
	field bool
}

// template is a parsed custom format string, alternating literal text and
// field references.
type template struct {
	parts []templatePart
}

// parseTemplate validates and compiles a custom format string such as
// "{date} {level} {module}:{line} : {message}". Unknown field names and
// unterminated placeholders are configuration errors.
func parseTemplate(format string) (*template, error) {
	if strings.TrimSpace(format) == "" {
		return nil, configError("format template cannot be blank")
	}

	t := &template{}
	var literal strings.Builder
	rest := format
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			literal.WriteString(rest)
			break
		}
		literal.WriteString(rest[:open])
		rest = rest[open+1:]

		closing := strings.IndexByte(rest, '}')
		if closing < 0 {
			return nil, configError("unterminated '{' in format template")
		}
		name := rest[:closing]
		if !templateFields[name] {
			return nil, configError("unknown format field '{%s}' (use date, level, pid, task, module, line, message)", name)
		}
		if literal.Len() > 0 {
			t.parts = append(t.parts, templatePart{text: literal.String()})
			literal.Reset()
		}
		t.parts = append(t.parts, templatePart{text: name, field: true})
		rest = rest[closing+1:]
	}
	if literal.Len() > 0 {
		t.parts = append(t.parts, templatePart{text: literal.String()})
	}
	if len(t.parts) == 0 {
		return nil, configError("format template cannot be empty")
	}
	return t, nil
}

// render substitutes fields through the lookup function and appends the
// result to buf.
func (t *template) render(buf []byte, lookup func(field string) string) []byte {
	for _, p := range t.parts {
		if p.field {
			buf = append(buf, lookup(p.text)...)
		} else {
			buf = append(buf, p.text...)
		}
	}
	return buf
}
