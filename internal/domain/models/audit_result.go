package models

type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// Valid reports whether s is one of the three known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

type Issue struct {
	Issue          string   `json:"issue"`
	Severity       Severity `json:"severity" jsonschema:"enum=High,enum=Medium,enum=Low"`
	Evidence       string   `json:"evidence"`
	Recommendation string   `json:"recommendation"`
	Selector       *string  `json:"selector,omitempty"`
	XPath          *string  `json:"xpath,omitempty"`
}

type QuickFix struct {
	Title              string `json:"title"`
	DiffLikeSuggestion string `json:"diff_like_suggestion"`
}

type SeverityCounts struct {
	High   int `json:"High" jsonschema:"minimum=0"`
	Medium int `json:"Medium" jsonschema:"minimum=0"`
	Low    int `json:"Low" jsonschema:"minimum=0"`
}

// Total is the number of issues tallied.
func (c SeverityCounts) Total() int {
	return c.High + c.Medium + c.Low
}

// AuditResult is the report the model has to produce.
type AuditResult struct {
	OverallScore        int             `json:"overall_score" jsonschema:"minimum=0,maximum=100"`
	Summary             string          `json:"summary"`
	AccessibilityIssues []Issue         `json:"accessibility_issues"`
	UXImprovements      []Issue         `json:"ux_improvements"`
	QuickFixes          []QuickFix      `json:"quick_fixes"`
	Unknowns            []string        `json:"unknowns"`
	SeverityCounts      *SeverityCounts `json:"severity_counts,omitempty"`
}

// CountSeverities tallies the accessibility issues only. UX improvements are
// not part of the tally.
func (r *AuditResult) CountSeverities() SeverityCounts {
	var counts SeverityCounts
	for _, issue := range r.AccessibilityIssues {
		switch issue.Severity {
		case SeverityHigh:
			counts.High++
		case SeverityLow:
			counts.Low++
		default:
			counts.Medium++
		}
	}
	return counts
}

// Resolution records which resolver tier produced a result.
type Resolution string

const (
	ResolutionValid    Resolution = "valid"
	ResolutionCoerced  Resolution = "coerced"
	ResolutionRepaired Resolution = "repaired"
)

// ResolvedResult is a schema-valid result together with the raw text it came from.
type ResolvedResult struct {
	Result     *AuditResult
	Raw        string
	Resolution Resolution
}

// AuditOutcome is everything the request handler returns on success.
type AuditOutcome struct {
	Result           *AuditResult `json:"result"`
	Raw              string       `json:"raw,omitempty"`
	AnalyzedTarget   string       `json:"analyzed_target"`
	SanitizedSnippet string       `json:"sanitized_snippet"`
	Resolution       Resolution   `json:"resolution"`
}
