package service

import (
	"encoding/json"
	"math"
	"strconv"

	"ux_auditor/internal/domain/models"
)

const (
	placeholderIssue    = "unspecified issue"
	placeholderFixTitle = "Quick fix"
)

// coerceCandidate builds a repaired copy of a decoded object that failed
// validation. It fills defaults and normalizes values but leaves unknowns
// untouched, so a candidate with non-string unknowns still fails afterwards.
func coerceCandidate(c map[string]any) map[string]any {
	out := map[string]any{
		"overall_score":        coerceScore(c["overall_score"]),
		"summary":              stringOr(c["summary"], ""),
		"accessibility_issues": coerceIssues(c["accessibility_issues"]),
		"ux_improvements":      coerceIssues(c["ux_improvements"]),
		"quick_fixes":          coerceQuickFixes(c["quick_fixes"]),
		"unknowns":             arrayOrEmpty(c["unknowns"]),
	}
	out["severity_counts"] = tallyCandidate(out["accessibility_issues"].([]any))
	return out
}

// coerceScore rounds half up and clamps to [0,100]. Anything that is not a
// number becomes 0.
func coerceScore(v any) float64 {
	n, ok := v.(float64)
	if !ok || math.IsNaN(n) {
		return 0
	}
	return math.Max(0, math.Min(100, math.Floor(n+0.5)))
}

func coerceIssues(v any) []any {
	items := arrayOrEmpty(v)
	out := make([]any, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		issue := firstTruthy(obj["issue"], obj["evidence"], obj["recommendation"])
		if issue == nil {
			issue = placeholderIssue
		}

		severity := models.SeverityMedium
		if s, ok := obj["severity"].(string); ok && models.Severity(s).Valid() {
			severity = models.Severity(s)
		}

		coerced := map[string]any{
			"issue":          stringify(issue),
			"severity":       string(severity),
			"evidence":       truthyString(obj["evidence"]),
			"recommendation": truthyString(obj["recommendation"]),
		}
		if truthy(obj["selector"]) {
			coerced["selector"] = stringify(obj["selector"])
		}
		if truthy(obj["xpath"]) {
			coerced["xpath"] = stringify(obj["xpath"])
		}
		out = append(out, coerced)
	}
	return out
}

func coerceQuickFixes(v any) []any {
	items := arrayOrEmpty(v)
	out := make([]any, 0, len(items))
	for _, item := range items {
		obj, _ := item.(map[string]any)

		title := placeholderFixTitle
		if truthy(obj["title"]) {
			title = stringify(obj["title"])
		}
		out = append(out, map[string]any{
			"title":                title,
			"diff_like_suggestion": truthyString(obj["diff_like_suggestion"]),
		})
	}
	return out
}

func tallyCandidate(issues []any) map[string]any {
	counts := map[string]any{
		string(models.SeverityHigh):   float64(0),
		string(models.SeverityMedium): float64(0),
		string(models.SeverityLow):    float64(0),
	}
	for _, item := range issues {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		sev, _ := obj["severity"].(string)
		if !models.Severity(sev).Valid() {
			sev = string(models.SeverityMedium)
		}
		counts[sev] = counts[sev].(float64) + 1
	}
	return counts
}

func arrayOrEmpty(v any) []any {
	if items, ok := v.([]any); ok {
		return items
	}
	return []any{}
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}

func truthyString(v any) string {
	if !truthy(v) {
		return ""
	}
	return stringify(v)
}

func firstTruthy(values ...any) any {
	for _, v := range values {
		if truthy(v) {
			return v
		}
	}
	return nil
}

// truthy follows JSON-ish truthiness: null, false, 0, NaN and "" are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	}
	return true
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
