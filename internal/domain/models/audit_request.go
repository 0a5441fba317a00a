package models

import (
	"strings"
	"unicode/utf8"

	"ux_auditor/internal/pkg/errors"
)

type AuditMode string

const (
	ModeHTML AuditMode = "html"
	ModeURL  AuditMode = "url"
)

// MaxHTMLChars is the largest html snippet accepted in html mode.
const MaxHTMLChars = 12000

// CodeSnippetTarget is the analyzed-target label used for pasted html.
const CodeSnippetTarget = "Code Snippet"

// AuditRequest is the inbound request. Only the field selected by Mode is read.
type AuditRequest struct {
	Mode     AuditMode `json:"mode"`
	HTML     *string   `json:"html"`
	URL      *string   `json:"url"`
	Honeypot string    `json:"hp"`
}

// IsSpam reports whether the hidden honeypot field was filled in.
func (r *AuditRequest) IsSpam() bool {
	return strings.TrimSpace(r.Honeypot) != ""
}

// Validate checks the mode specific shape of the request. It never does I/O.
func (r *AuditRequest) Validate() error {
	if r.IsSpam() {
		return errors.ErrSpam
	}

	switch r.Mode {
	case ModeHTML:
		if r.HTML == nil {
			return errors.NewValidationError(`html required for mode=html`)
		}
		if *r.HTML == "" {
			return errors.NewValidationError(`empty html`)
		}
		if utf8.RuneCountInString(*r.HTML) > MaxHTMLChars {
			return errors.NewValidationError(`html too large (max %d chars)`, MaxHTMLChars)
		}
	case ModeURL:
		if r.URL == nil || *r.URL == "" {
			return errors.NewValidationError(`url required for mode=url`)
		}
		lower := strings.ToLower(*r.URL)
		if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
			return errors.NewValidationError(`invalid url scheme`)
		}
	default:
		return errors.NewValidationError(`invalid request: mode must be "html" or "url"`)
	}

	return nil
}

// AnalyzedTarget is the label shown to the model and echoed to the caller.
func (r *AuditRequest) AnalyzedTarget() string {
	if r.Mode == ModeURL && r.URL != nil {
		return *r.URL
	}
	return CodeSnippetTarget
}
