package service

import "regexp"

var (
	eventHandlerRe      = regexp.MustCompile(`(?i)\s+on[a-z]+\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)
	slashEventHandlerRe = regexp.MustCompile(`(?i)(<[a-z][a-z0-9-]*)/on[a-z]+\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)
	javascriptHrefRe    = regexp.MustCompile(`(?i)href\s*=\s*(?:"\s*javascript:[^"]*"|'\s*javascript:[^']*'|javascript:[^\s>]*)`)
	bareJavascriptRe    = regexp.MustCompile(`(?i)javascript://[^\s"'<>]*`)
)

// Sanitize removes active content from a user supplied html snippet and fits
// it into maxChars. The output is what the model analyzes and also what the
// caller previews, so both always agree.
//
// This is pattern based cleanup for a sandboxed preview, not an XSS filter.
func Sanitize(raw string, maxChars int) string {
	if raw == "" {
		return ""
	}

	// every pass only removes text, so this terminates
	out := raw
	for {
		next := stripActiveContent(out)
		if next == out {
			break
		}
		out = next
	}

	out, _ = truncateChars(collapseWhitespace(out), maxChars)
	return out
}

func stripActiveContent(s string) string {
	s = stripScriptsAndStyles(s)
	s = eventHandlerRe.ReplaceAllString(s, "")
	s = slashEventHandlerRe.ReplaceAllString(s, "$1")
	s = javascriptHrefRe.ReplaceAllString(s, `href="#"`)
	return bareJavascriptRe.ReplaceAllString(s, "")
}
