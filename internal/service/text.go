package service

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TruncationMarker is appended whenever content is cut to fit a character budget.
const TruncationMarker = " ...[truncated]"

var (
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b.*?>.*?</script\s*>`)
	styleBlockRe  = regexp.MustCompile(`(?is)<style\b.*?>.*?</style\s*>`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

func stripScriptsAndStyles(s string) string {
	s = scriptBlockRe.ReplaceAllString(s, "")
	return styleBlockRe.ReplaceAllString(s, "")
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// truncateChars cuts s to at most maxChars runes, marker included.
func truncateChars(s string, maxChars int) (string, bool) {
	if utf8.RuneCountInString(s) <= maxChars {
		return s, false
	}

	keep := maxChars - utf8.RuneCountInString(TruncationMarker)
	if keep <= 0 {
		return clipRunes(s, maxChars), true
	}

	kept := strings.TrimRightFunc(clipRunes(s, keep), unicode.IsSpace)
	return kept + TruncationMarker, true
}

// clipRunes is a hard cut without marker.
func clipRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
