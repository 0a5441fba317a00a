package service

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/tailscale/hujson"
)

var codeFenceRe = regexp.MustCompile("(?is)```(?:json)?[ \t]*\r?\n?(.*?)```")

// parseCandidate tries, in order: the raw text, the text inside a markdown
// code fence, every balanced top-level {...} block, and finally the span from
// the first '{' to the last '}'. The first one that decodes to a JSON object
// wins.
func parseCandidate(raw string) (map[string]any, bool) {
	for _, text := range candidateTexts(raw) {
		if obj, ok := decodeObject(text); ok {
			return obj, true
		}
	}
	return nil, false
}

func candidateTexts(raw string) []string {
	texts := []string{raw}

	unfenced := raw
	if m := codeFenceRe.FindStringSubmatch(raw); m != nil {
		unfenced = m[1]
		texts = append(texts, unfenced)
	}

	texts = append(texts, balancedObjects(unfenced)...)

	if start, end := strings.Index(unfenced, "{"), strings.LastIndex(unfenced, "}"); start >= 0 && end > start {
		texts = append(texts, unfenced[start:end+1])
	}
	return texts
}

// decodeObject accepts strict JSON and, failing that, JSON with comments and
// trailing commas.
func decodeObject(text string) (map[string]any, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "{") {
		return nil, false
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err == nil {
		return obj, obj != nil
	}

	standard, err := hujson.Standardize([]byte(text))
	if err != nil {
		return nil, false
	}
	if err := json.Unmarshal(standard, &obj); err != nil {
		return nil, false
	}
	return obj, obj != nil
}

// balancedObjects scans for top-level {...} blocks, skipping braces inside
// JSON strings.
func balancedObjects(s string) []string {
	var objects []string
	depth, start := 0, -1
	inString, escaped := false, false

	for i := 0; i < len(s); i++ {
		b := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					objects = append(objects, s[start:i+1])
				}
			}
		}
	}
	return objects
}
