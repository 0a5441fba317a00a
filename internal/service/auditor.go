package service

import (
	"context"
	"strings"

	"ux_auditor/internal/application/config"
	"ux_auditor/internal/domain/adaptors"
	"ux_auditor/internal/domain/models"
	"ux_auditor/internal/pkg/errors"
	"ux_auditor/internal/pkg/metrics"

	log "github.com/sirupsen/logrus"
)

type UXAuditor interface {
	Audit(ctx context.Context, req *models.AuditRequest) (*models.AuditOutcome, error)
}

// Auditor runs one audit end to end. It holds no per-request state and is
// safe for concurrent use.
type Auditor struct {
	extractor *Extractor
	resolver  *Resolver
	maxChars  int
	log       *log.Logger
}

func NewAuditor(log *log.Logger, webClient adaptors.WebClient, gateway adaptors.ModelGateway, cfg config.AuditConfig) *Auditor {
	return &Auditor{
		extractor: NewExtractor(webClient, cfg, log),
		resolver:  NewResolver(gateway, log),
		maxChars:  cfg.MaxContentChars,
		log:       log,
	}
}

// Audit validates req, reduces the target to a bounded payload, prompts the
// model and resolves its answer.
func (a *Auditor) Audit(ctx context.Context, req *models.AuditRequest) (outcome *models.AuditOutcome, err error) {
	defer func() {
		metrics.AuditsTotal.WithLabelValues(modeLabel(req.Mode), outcomeOf(err)).Inc()
	}()

	if req.IsSpam() {
		a.log.WithContext(ctx).WithField(`hp_len`, len(req.Honeypot)).Warn(`honeypot field filled, rejecting request`)
		return nil, errors.ErrSpam
	}

	if err = req.Validate(); err != nil {
		return nil, err
	}

	a.log.WithContext(ctx).WithField(`mode`, req.Mode).Debug(`audit started...`)

	var content string
	switch req.Mode {
	case models.ModeHTML:
		content = Sanitize(*req.HTML, a.maxChars)
	case models.ModeURL:
		extracted, err := a.extractor.Extract(ctx, *req.URL)
		if err != nil {
			a.log.WithContext(ctx).WithError(err).Error(`failed to extract page content`)
			return nil, err
		}
		content = extracted.BodyExcerpt
	}

	if strings.TrimSpace(content) == "" {
		return nil, errors.NewValidationError(`empty content after extraction`)
	}

	target := req.AnalyzedTarget()
	resolved, err := a.resolver.Resolve(ctx, BuildPrompts(req.Mode, target, content))
	if err != nil {
		return nil, err
	}

	a.log.WithContext(ctx).WithFields(log.Fields{
		`resolution`: resolved.Resolution,
		`score`:      resolved.Result.OverallScore,
	}).Debug(`audit ended...`)

	return &models.AuditOutcome{
		Result:           resolved.Result,
		Raw:              resolved.Raw,
		AnalyzedTarget:   target,
		SanitizedSnippet: content,
		Resolution:       resolved.Resolution,
	}, nil
}

func modeLabel(mode models.AuditMode) string {
	if mode == models.ModeHTML || mode == models.ModeURL {
		return string(mode)
	}
	return `invalid`
}

// outcomeOf buckets an audit error for the requests counter.
func outcomeOf(err error) string {
	var (
		validationErr *errors.ValidationError
		fetchErr      *errors.FetchError
		modelErr      *errors.ModelError
		resolutionErr *errors.ResolutionError
	)
	switch {
	case err == nil:
		return `ok`
	case errors.Is(err, errors.ErrSpam):
		return `spam`
	case errors.As(err, &validationErr):
		return `invalid`
	case errors.As(err, &fetchErr):
		return `fetch_error`
	case errors.As(err, &modelErr):
		if modelErr.RateLimited() {
			return `rate_limited`
		}
		return `model_error`
	case errors.As(err, &resolutionErr):
		return `unresolved`
	}
	return `error`
}
