package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sbilibin2017/bookly/internal/apperrors"
	"github.com/sbilibin2017/bookly/internal/logger"
)

type validatable interface {
	Validate() error
}

// decodeRequest decodes a JSON body into req and validates it.
// Every failure is reported as apperrors.ErrInvalidRequest.
func decodeRequest(r *http.Request, req validatable) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logger.Log.Warnw("failed to decode request body", "uri", r.RequestURI, "error", err)
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidRequest, err)
	}
	if err := req.Validate(); err != nil {
		logger.Log.Warnw("request validation failed", "uri", r.RequestURI, "error", err)
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
