package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"ux_auditor/internal/domain/models"
	"ux_auditor/internal/pkg/errors"
	"ux_auditor/internal/service"

	log "github.com/sirupsen/logrus"
)

// MaxRequestBodyBytes caps the inbound JSON body.
const MaxRequestBodyBytes = 1 << 20

const (
	msgInvalidRequest = `Invalid request`
	msgBodyTooLarge   = `request body too large`
	msgFetchFailed    = `failed to fetch content`
	msgRateLimited    = `quota exceeded or rate limited. Check your account billing/usage.`
	msgModelError     = `model API error`
	msgUnresolved     = `model did not return valid structured output`
	msgInternal       = `internal server error`
)

type AuditHandler struct {
	service service.UXAuditor
	log     *log.Logger
}

func NewAuditHandler(service service.UXAuditor, log *log.Logger) *AuditHandler {
	return &AuditHandler{
		service: service,
		log:     log,
	}
}

func (h *AuditHandler) Handle(w http.ResponseWriter, r *http.Request) {
	h.log.WithContext(r.Context()).Debug(`audit handler called`)

	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)

	var request models.AuditRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendError(w, r, h.log, ErrorResponse{Error: msgBodyTooLarge, Code: http.StatusRequestEntityTooLarge}, err)
			return
		}
		sendError(w, r, h.log, ErrorResponse{Error: msgInvalidRequest, Code: http.StatusBadRequest}, err)
		return
	}

	outcome, err := h.service.Audit(r.Context(), &request)
	if err != nil {
		sendError(w, r, h.log, errorResponseFor(err), err)
		return
	}

	w.Header().Set(`Content-Type`, `application/json`)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(outcome); err != nil {
		h.log.WithContext(r.Context()).WithError(err).Error(`failed to encode response`)
	}
}

// errorResponseFor maps an audit failure to exactly one HTTP response.
func errorResponseFor(err error) ErrorResponse {
	var (
		validationErr *errors.ValidationError
		fetchErr      *errors.FetchError
		modelErr      *errors.ModelError
		resolutionErr *errors.ResolutionError
	)

	switch {
	case errors.Is(err, errors.ErrSpam):
		return ErrorResponse{Error: errors.ErrSpam.Error(), Code: http.StatusBadRequest}

	case errors.As(err, &validationErr):
		return ErrorResponse{Error: validationErr.Message, Code: http.StatusBadRequest}

	case errors.As(err, &fetchErr):
		code := http.StatusBadGateway
		if fetchErr.Timeout {
			code = http.StatusGatewayTimeout
		}
		return ErrorResponse{Error: msgFetchFailed, Details: errors.Message(fetchErr.Cause), Code: code}

	case errors.As(err, &modelErr):
		if modelErr.RateLimited() {
			return ErrorResponse{Error: msgRateLimited, Details: modelErr.Body, Code: http.StatusTooManyRequests}
		}
		code := http.StatusBadGateway
		if errors.Is(err, context.DeadlineExceeded) {
			code = http.StatusGatewayTimeout
		}
		return ErrorResponse{Error: msgModelError, Details: modelErr.Body, Code: code}

	case errors.As(err, &resolutionErr):
		return ErrorResponse{Error: msgUnresolved, Details: errors.Message(resolutionErr.Cause), Raw: resolutionErr.Raw, Code: http.StatusInternalServerError}
	}

	return ErrorResponse{Error: msgInternal, Code: http.StatusInternalServerError}
}
