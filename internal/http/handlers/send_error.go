package handlers

import (
	"encoding/json"
	"net/http"

	"ux_auditor/internal/pkg/request_id"

	log "github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	Raw       string `json:"raw,omitempty"`
	Code      int    `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func sendError(w http.ResponseWriter, r *http.Request, logger *log.Logger, response ErrorResponse, err error) {
	response.RequestID = request_id.FromContext(r.Context())

	entry := logger.WithContext(r.Context()).WithFields(log.Fields{
		"code": response.Code,
	})
	if err != nil {
		entry = entry.WithError(err)
	}
	if response.Code >= http.StatusInternalServerError {
		entry.Error(response.Error)
	} else {
		entry.Warn(response.Error)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.Code)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		entry.WithError(err).Error(`failed to encode error response`)
	}
}
