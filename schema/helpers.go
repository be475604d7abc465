package schema

import (
	"math"
	"strings"
)

// ClampPercent bounds a raw signal to the 0-100 range.
func ClampPercent(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}

// RoundScore converts a fractional score to an integer using the given mode.
// Floor is the conservative default; nearest matches legacy printf behavior.
func RoundScore(value float64, mode RoundMode) int {
	switch mode {
	case RoundNearest:
		return int(math.Round(value))
	default:
		return int(math.Floor(value))
	}
}

// FirstLine returns the first non-empty line of s, trimmed.
func FirstLine(s string) string {
	for line := range strings.SplitSeq(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// TailLines returns the last n non-empty lines of s joined by newlines.
// Check adapters use this to keep subprocess output in details without
// dragging whole logs into the report.
func TailLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	var lines []string
	for line := range strings.SplitSeq(s, "\n") {
		trimmed := strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(trimmed) != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

// SanitizeDetails strips non-printable control characters from details text,
// keeping newlines and tabs. Subprocess output can carry terminal escapes
// that have no place in a report.
func SanitizeDetails(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
