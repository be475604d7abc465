// Package checks provides the built-in check adapters that turn shell
// commands and submission files into component scores.
package checks

import (
	"regexp"
	"strconv"
)

// countMatches returns the count expressed by pattern in text: the first
// capture group parsed as an integer when the pattern has one, otherwise
// the number of matches. This covers both "PASSED" per-case lines and
// "18 passed" summary lines with a single pattern syntax.
func countMatches(re *regexp.Regexp, text string) int {
	if re.NumSubexp() > 0 {
		match := re.FindStringSubmatch(text)
		if len(match) > 1 {
			if n, err := strconv.Atoi(match[1]); err == nil {
				return n
			}
		}
		return 0
	}
	return len(re.FindAllString(text, -1))
}
