package service

import (
	"context"
	"fmt"

	"ux_auditor/internal/domain/adaptors"
	"ux_auditor/internal/domain/models"
	"ux_auditor/internal/pkg/errors"
	"ux_auditor/internal/pkg/metrics"

	log "github.com/sirupsen/logrus"
)

const repairSkeleton = `{"overall_score":0,"summary":"","accessibility_issues":[],"ux_improvements":[],"quick_fixes":[],"unknowns":[]}`

// Resolver turns model text into a schema-valid AuditResult. It accepts a
// valid response as is, salvages a parseable one by coercion and otherwise
// spends exactly one repair call before giving up.
type Resolver struct {
	gateway adaptors.ModelGateway
	log     *log.Logger
}

func NewResolver(gateway adaptors.ModelGateway, log *log.Logger) *Resolver {
	return &Resolver{gateway: gateway, log: log}
}

// Resolve runs the first completion and, when needed, the repair completion.
// Gateway failures are returned unchanged so callers can map *errors.ModelError.
func (r *Resolver) Resolve(ctx context.Context, prompts Prompts) (*models.ResolvedResult, error) {
	firstRaw, err := r.gateway.Complete(ctx, prompts.System, prompts.User, adaptors.AuditCompletion)
	if err != nil {
		return nil, err
	}

	resolved, firstErr := r.resolveFirst(ctx, firstRaw)
	if firstErr == nil {
		return r.finish(resolved), nil
	}

	r.log.WithContext(ctx).WithError(firstErr).Warn(`model output unusable, requesting repair`)

	repairRaw, err := r.gateway.Complete(ctx, prompts.System, buildRepairPrompt(firstRaw), adaptors.RepairCompletion)
	if err != nil {
		return nil, err
	}

	result, repairErr := parseAndValidate(repairRaw)
	if repairErr != nil {
		metrics.ResolutionTotal.WithLabelValues(`failed`).Inc()
		r.log.WithContext(ctx).WithError(repairErr).Error(`repair output unusable`)

		raw := repairRaw
		if raw == "" {
			raw = firstRaw
		}
		return nil, &errors.ResolutionError{Raw: raw, Cause: repairErr}
	}

	return r.finish(&models.ResolvedResult{
		Result:     result,
		Raw:        repairRaw,
		Resolution: models.ResolutionRepaired,
	}), nil
}

// resolveFirst handles the first two tiers: strict validation, then coercion.
func (r *Resolver) resolveFirst(ctx context.Context, raw string) (*models.ResolvedResult, error) {
	candidate, ok := parseCandidate(raw)
	if !ok {
		return nil, errors.ErrUnparseable
	}

	result, err := validateCandidate(candidate)
	if err == nil {
		return &models.ResolvedResult{Result: result, Raw: raw, Resolution: models.ResolutionValid}, nil
	}

	r.log.WithContext(ctx).WithError(err).Debug(`model output failed validation, coercing`)

	result, err = validateCandidate(coerceCandidate(candidate))
	if err != nil {
		return nil, fmt.Errorf("coerced output still invalid: %w", err)
	}
	return &models.ResolvedResult{Result: result, Raw: raw, Resolution: models.ResolutionCoerced}, nil
}

// finish overwrites severity counts with the tally of the final issues.
func (r *Resolver) finish(resolved *models.ResolvedResult) *models.ResolvedResult {
	counts := resolved.Result.CountSeverities()
	resolved.Result.SeverityCounts = &counts
	metrics.ResolutionTotal.WithLabelValues(string(resolved.Resolution)).Inc()
	return resolved
}

func parseAndValidate(raw string) (*models.AuditResult, error) {
	candidate, ok := parseCandidate(raw)
	if !ok {
		return nil, errors.ErrUnparseable
	}
	return validateCandidate(candidate)
}

func buildRepairPrompt(invalidText string) string {
	return fmt.Sprintf("The model returned invalid JSON or extraneous text:\n\n%s\n\n"+
		"RETURN ONLY valid JSON matching the required schema exactly. "+
		"Use this skeleton and fill in realistic values (don't add keys): %s. "+
		"Do not include any explanation, commentary, or markdown.", invalidText, repairSkeleton)
}
