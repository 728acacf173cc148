package core

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// LineCount returns count('\n')+1 for a non-empty string, 0 for empty —
// the spec's line-count convention for text blocks.
func LineCount(text string) int64 {
	if text == "" {
		return 0
	}
	return int64(strings.Count(text, "\n")) + 1
}

// CharCount returns the number of Unicode code points in text, not bytes.
func CharCount(text string) int64 {
	return int64(utf8.RuneCountInString(text))
}

// TrimTrailingNewline strips a single trailing "\n" or "\r\n" from text.
// File content conventionally carries one final newline that isn't itself
// a line of text; analyzers trim it before deriving LineCount/CharCount so
// "x\ny\n" counts as two lines, not three.
func TrimTrailingNewline(text string) string {
	if strings.HasSuffix(text, "\r\n") {
		return text[:len(text)-2]
	}
	return strings.TrimSuffix(text, "\n")
}

// NormalizePath joins a relative path against cwd; absolute paths pass
// through unchanged. Used to build the unique-file-set keys.
func NormalizePath(cwd, path string) string {
	if path == "" {
		return path
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	if cwd == "" {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(cwd, path))
}

// ParseTimestamp accepts ISO 8601 with optional fractional seconds and a
// Z/offset suffix and returns Unix milliseconds. Unparseable input yields 0.
func ParseTimestamp(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02T15:04:05.000Z0700",
		"2006-01-02T15:04:05Z0700",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}

// FormatDate renders t as the YYYY-MM-DD local-time date string the spec
// uses as the aggregation key.
func FormatDate(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// Atoi64 is a forgiving string->int64 conversion used when a field that is
// normally numeric arrives as a string (some providers are inconsistent).
// Unparseable input yields 0.
func Atoi64(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
