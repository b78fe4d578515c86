package lumen

import (
	"reflect"
	"runtime"
	"strings"
	"time"
)

// Record represents a single log event. It is assembled at the call site,
// rendered once per sink, and discarded. Fields are never mutated after
// construction.
type Record struct {
	Time       time.Time
	Level      int64
	SourcePath string
	Line       int
	Function   string
	Task       string
	Message    string
	Extras     []any
	Err        *ErrorInfo
}

// ErrorInfo carries the one-line exception context attached to a record.
// Function is empty when the error surfaced at module scope, in which case
// the rendered summary omits the function clause.
type ErrorInfo struct {
	Kind     string
	Text     string
	Function string
	Line     int
}

// newErrorInfo builds error context from a Go error and the call site that
// reported it.
func newErrorInfo(err error, function string, line int) *ErrorInfo {
	if err == nil {
		return nil
	}
	return &ErrorInfo{
		Kind:     errorKind(err),
		Text:     err.Error(),
		Function: function,
		Line:     line,
	}
}

// errorKind derives a short type name for an error value, e.g.
// *fs.PathError -> "PathError".
func errorKind(err error) string {
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return "error"
	}
	return t.Name()
}

// capture resolves the source location of the logging call.
// Returns an empty function name when the frame cannot be resolved, which
// the formatter treats as module scope.
func capture(skip int) (path string, line int, function string) {
	pc, file, ln, ok := runtime.Caller(skip)
	if !ok {
		return "(unknown)", 0, ""
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return file, ln, ""
	}
	name := fn.Name()
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.IndexByte(name, '.'); idx >= 0 {
		name = name[idx+1:]
	}
	if name == "init" || strings.HasPrefix(name, "init.") {
		// Package initializer, the closest Go has to module scope.
		name = ""
	}
	return file, ln, name
}
