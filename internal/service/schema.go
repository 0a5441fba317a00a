package service

import (
	"fmt"
	"math"

	"ux_auditor/internal/domain/models"
)

// schemaError describes the first place a candidate breaks the result schema.
type schemaError struct {
	Path    string
	Problem string
}

func (e *schemaError) Error() string {
	return fmt.Sprintf("schema violation at %s: %s", e.Path, e.Problem)
}

func violation(path, format string, args ...any) error {
	return &schemaError{Path: path, Problem: fmt.Sprintf(format, args...)}
}

// validateCandidate converts a decoded JSON object into an AuditResult, or
// reports why it does not satisfy the schema. Unknown keys are ignored.
func validateCandidate(c map[string]any) (*models.AuditResult, error) {
	score, ok := c["overall_score"].(float64)
	if !ok {
		return nil, violation("overall_score", "expected number, got %s", typeName(c["overall_score"]))
	}
	if score != math.Trunc(score) || score < 0 || score > 100 {
		return nil, violation("overall_score", "expected integer in [0,100], got %v", score)
	}

	summary, ok := c["summary"].(string)
	if !ok {
		return nil, violation("summary", "expected string, got %s", typeName(c["summary"]))
	}

	accessibility, err := validateIssues("accessibility_issues", c["accessibility_issues"])
	if err != nil {
		return nil, err
	}

	ux, err := validateIssues("ux_improvements", c["ux_improvements"])
	if err != nil {
		return nil, err
	}

	fixes, err := validateQuickFixes(c["quick_fixes"])
	if err != nil {
		return nil, err
	}

	unknowns, err := validateStrings("unknowns", c["unknowns"])
	if err != nil {
		return nil, err
	}

	result := &models.AuditResult{
		OverallScore:        int(score),
		Summary:             summary,
		AccessibilityIssues: accessibility,
		UXImprovements:      ux,
		QuickFixes:          fixes,
		Unknowns:            unknowns,
	}

	if raw, present := c["severity_counts"]; present {
		counts, err := validateSeverityCounts(raw)
		if err != nil {
			return nil, err
		}
		result.SeverityCounts = counts
	}

	return result, nil
}

func validateIssues(path string, v any) ([]models.Issue, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, violation(path, "expected array, got %s", typeName(v))
	}

	issues := make([]models.Issue, 0, len(items))
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, violation(itemPath, "expected object, got %s", typeName(item))
		}

		var issue models.Issue
		var err error
		if issue.Issue, err = requiredString(obj, itemPath, "issue"); err != nil {
			return nil, err
		}
		severity, err := requiredString(obj, itemPath, "severity")
		if err != nil {
			return nil, err
		}
		issue.Severity = models.Severity(severity)
		if !issue.Severity.Valid() {
			return nil, violation(itemPath+".severity", "expected High|Medium|Low, got %q", severity)
		}
		if issue.Evidence, err = requiredString(obj, itemPath, "evidence"); err != nil {
			return nil, err
		}
		if issue.Recommendation, err = requiredString(obj, itemPath, "recommendation"); err != nil {
			return nil, err
		}
		if issue.Selector, err = optionalString(obj, itemPath, "selector"); err != nil {
			return nil, err
		}
		if issue.XPath, err = optionalString(obj, itemPath, "xpath"); err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

func validateQuickFixes(v any) ([]models.QuickFix, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, violation("quick_fixes", "expected array, got %s", typeName(v))
	}

	fixes := make([]models.QuickFix, 0, len(items))
	for i, item := range items {
		itemPath := fmt.Sprintf("quick_fixes[%d]", i)
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, violation(itemPath, "expected object, got %s", typeName(item))
		}

		var fix models.QuickFix
		var err error
		if fix.Title, err = requiredString(obj, itemPath, "title"); err != nil {
			return nil, err
		}
		if fix.DiffLikeSuggestion, err = requiredString(obj, itemPath, "diff_like_suggestion"); err != nil {
			return nil, err
		}
		fixes = append(fixes, fix)
	}
	return fixes, nil
}

func validateStrings(path string, v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, violation(path, "expected array, got %s", typeName(v))
	}

	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, violation(fmt.Sprintf("%s[%d]", path, i), "expected string, got %s", typeName(item))
		}
		out = append(out, s)
	}
	return out, nil
}

func validateSeverityCounts(v any) (*models.SeverityCounts, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, violation("severity_counts", "expected object, got %s", typeName(v))
	}

	count := func(key string) (int, error) {
		n, ok := obj[key].(float64)
		if !ok || n != math.Trunc(n) || n < 0 {
			return 0, violation("severity_counts."+key, "expected non-negative integer, got %v", obj[key])
		}
		return int(n), nil
	}

	var counts models.SeverityCounts
	var err error
	if counts.High, err = count("High"); err != nil {
		return nil, err
	}
	if counts.Medium, err = count("Medium"); err != nil {
		return nil, err
	}
	if counts.Low, err = count("Low"); err != nil {
		return nil, err
	}
	return &counts, nil
}

func requiredString(obj map[string]any, path, key string) (string, error) {
	s, ok := obj[key].(string)
	if !ok {
		return "", violation(path+"."+key, "expected string, got %s", typeName(obj[key]))
	}
	return s, nil
}

func optionalString(obj map[string]any, path, key string) (*string, error) {
	v, present := obj[key]
	if !present {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, violation(path+"."+key, "expected string, got %s", typeName(v))
	}
	return &s, nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
