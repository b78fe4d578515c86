package lumen

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord() *Record {
	return &Record{
		Time:       time.Date(2026, time.March, 14, 9, 26, 53, 589_000_000, time.UTC),
		Level:      LevelInfo,
		SourcePath: "/project/app/handlers/login.go",
		Line:       42,
		Function:   "handleLogin",
		Task:       "main",
		Message:    "user logged in",
	}
}

func TestRenderDefaultLayout(t *testing.T) {
	f, err := newFormatter("", "", "/project")
	require.NoError(t, err)

	line := f.Render(testRecord(), false)

	assert.True(t, strings.HasPrefix(line, "Mar 14, 2026 09:26:53.589 "), "line: %q", line)
	assert.Contains(t, line, "    INFO") // level right-aligned to 8
	assert.Contains(t, line, fmt.Sprintf(" %07d [", f.pid))
	assert.Contains(t, line, "[           main] ")
	assert.Contains(t, line, "app.handlers.login:0042 : user logged in")
	assert.False(t, strings.HasSuffix(line, "\n"))
}

func TestRenderLevelAlignment(t *testing.T) {
	f, err := newFormatter("", "", "")
	require.NoError(t, err)

	rec := testRecord()
	for level, want := range map[int64]string{
		LevelDebug:    "    DEBUG",
		LevelInfo:     "     INFO",
		LevelWarning:  "  WARNING",
		LevelCritical: " CRITICAL",
	} {
		rec.Level = level
		line := f.Render(rec, false)
		assert.Contains(t, line, want, "level %d", level)
	}
}

func TestRenderColorizedDiffersOnlyByEscapes(t *testing.T) {
	f, err := newFormatter("", "", "/project")
	require.NoError(t, err)

	rec := testRecord()
	for level, color := range levelColors {
		rec.Level = level
		plain := f.Render(rec, false)
		colored := f.Render(rec, true)

		name := levelToString(rec.Level)
		assert.Contains(t, colored, color+name+ansiReset)

		// Removing the escape sequences must yield the plain line exactly,
		// padding included.
		stripped := strings.ReplaceAll(colored, color, "")
		stripped = strings.ReplaceAll(stripped, ansiReset, "")
		assert.Equal(t, plain, stripped)
	}
}

func TestRenderPlainHasNoEscapes(t *testing.T) {
	f, err := newFormatter("", "", "")
	require.NoError(t, err)

	line := f.Render(testRecord(), false)
	assert.NotContains(t, line, "\033")
}

func TestModuleNameDerivation(t *testing.T) {
	f, err := newFormatter("", "", "/project")
	require.NoError(t, err)

	tests := []struct {
		path string
		want string
	}{
		{"/project/app/handlers/login.go", "app.handlers.login"},
		{"/project/main.go", "main"},
		{"/elsewhere/pkg/util.go", "elsewhere.pkg.util"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, f.moduleName(tc.path), "path %s", tc.path)
	}
}

func TestModuleNameTruncation(t *testing.T) {
	f, err := newFormatter("", "", "")
	require.NoError(t, err)

	// Exactly 30 characters passes untouched.
	exact := strings.Repeat("a", 30)
	assert.Equal(t, exact, f.moduleName(exact+".go"))

	// 31 characters keeps the first 27 plus the ellipsis.
	long := strings.Repeat("b", 31)
	got := f.moduleName(long + ".go")
	assert.Equal(t, 30, len(got))
	assert.Equal(t, strings.Repeat("b", 27)+"...", got)
}

func TestRenderErrorSummary(t *testing.T) {
	f, err := newFormatter("", "", "")
	require.NoError(t, err)

	rec := testRecord()
	rec.Err = &ErrorInfo{
		Kind:     "PathError",
		Text:     "open /etc/missing: no such file or directory",
		Function: "loadConfig",
		Line:     17,
	}

	line := f.Render(rec, false)
	assert.True(t, strings.HasSuffix(line,
		"PathError: open /etc/missing: no such file or directory in loadConfig() on line 17"),
		"line: %q", line)
}

func TestRenderErrorSummaryModuleScope(t *testing.T) {
	f, err := newFormatter("", "", "")
	require.NoError(t, err)

	rec := testRecord()
	rec.Err = &ErrorInfo{Kind: "error", Text: "boom", Function: "", Line: 3}

	line := f.Render(rec, false)
	assert.True(t, strings.HasSuffix(line, "error: boom on line 3"), "line: %q", line)
	assert.NotContains(t, line, "in ()")
}

func TestRenderErrorStripsNewlines(t *testing.T) {
	f, err := newFormatter("", "", "")
	require.NoError(t, err)

	rec := testRecord()
	rec.Message = "first line\nsecond line\r\nthird"
	rec.Err = &ErrorInfo{Kind: "error", Text: "boom", Line: 1}

	line := f.Render(rec, false)
	assert.NotContains(t, line, "\n")
	assert.NotContains(t, line, "\r")
	assert.Contains(t, line, "first linesecond linethird")
}

func TestRenderWithoutErrorKeepsMessageVerbatim(t *testing.T) {
	f, err := newFormatter("", "", "")
	require.NoError(t, err)

	rec := testRecord()
	rec.Message = "line one\nline two"

	line := f.Render(rec, false)
	assert.Contains(t, line, "line one\nline two")
}

func TestRenderExtras(t *testing.T) {
	f, err := newFormatter("", "", "")
	require.NoError(t, err)

	rec := testRecord()
	rec.Extras = []any{"user", "alice", "attempts", 3, "ok", true}

	line := f.Render(rec, false)
	assert.Contains(t, line, " user=alice attempts=3 ok=true")
}

func TestRenderExtrasUnpairedTrailing(t *testing.T) {
	f, err := newFormatter("", "", "")
	require.NoError(t, err)

	rec := testRecord()
	rec.Extras = []any{"count", 7, "dangling"}

	line := f.Render(rec, false)
	assert.Contains(t, line, " count=7 dangling")
}

func TestRenderCustomTemplate(t *testing.T) {
	f, err := newFormatter("{level} {module}:{line} {message}", "", "/project")
	require.NoError(t, err)

	line := f.Render(testRecord(), false)

	// Custom templates use the raw source path with no derivation,
	// truncation, or padding.
	assert.Equal(t, "INFO /project/app/handlers/login.go:42 user logged in", line)
}

func TestRenderCustomTemplateColorized(t *testing.T) {
	f, err := newFormatter("{level} {message}", "", "")
	require.NoError(t, err)

	line := f.Render(testRecord(), true)
	assert.Equal(t, ansiGreen+"INFO"+ansiReset+" user logged in", line)
}

func TestParseTemplateErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
	}{
		{"blank", "   "},
		{"unterminated", "{date} {leve"},
		{"unknown field", "{date} {severity}"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseTemplate(tc.format)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestAppendValueTypes(t *testing.T) {
	ts := time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		in   any
		want string
	}{
		{"str", "str"},
		{42, "42"},
		{int64(-7), "-7"},
		{uint(9), "9"},
		{3.5, "3.5"},
		{true, "true"},
		{nil, "nil"},
		{1500 * time.Millisecond, "1.5s"},
		{errors.New("bad"), "bad"},
		{ts, "Jan 02, 2026 03:04:05"},
	}
	for _, tc := range tests {
		got := string(appendValue(nil, tc.in, defaultDateFormat))
		assert.Equal(t, tc.want, got, "value %#v", tc.in)
	}
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "errorString", errorKind(errors.New("plain")))

	var timeoutErr error = &timeoutError{}
	assert.Equal(t, "timeoutError", errorKind(timeoutErr))
}

// timeoutError stands in for a named error type.
type timeoutError struct{}

func (*timeoutError) Error() string { return "timed out" }
