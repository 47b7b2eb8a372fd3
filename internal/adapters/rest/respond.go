package rest

import (
	"errors"
	"mime"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/nsarvani/Statify/internal/core/domain"
	"github.com/nsarvani/Statify/internal/core/ports"
	"github.com/nsarvani/Statify/internal/core/services"
	"github.com/nsarvani/Statify/internal/logging"
)

const (
	errCodeInvalidRequest     = "INVALID_REQUEST"
	errCodeInvalidAnswer      = "INVALID_ANSWER"
	errCodeNotFound           = "NOT_FOUND"
	errCodeCatalogUnavailable = "CATALOG_UNAVAILABLE"
	errCodeNoPreferenceStore  = "PREFERENCES_DISABLED"
	errCodeInternal           = "INTERNAL"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeErrorWithCode(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// writeServiceError maps orchestrator errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var answerErr domain.InvalidAnswerError
	switch {
	case errors.As(err, &answerErr):
		writeErrorWithCode(w, http.StatusBadRequest, answerErr.Error(), errCodeInvalidAnswer)
	case errors.Is(err, services.ErrInvalidArgument):
		writeErrorWithCode(w, http.StatusBadRequest, err.Error(), errCodeInvalidRequest)
	case errors.Is(err, domain.ErrNotFound):
		writeErrorWithCode(w, http.StatusNotFound, "not found", errCodeNotFound)
	case errors.Is(err, services.ErrNoPreferenceStore):
		writeErrorWithCode(w, http.StatusNotImplemented, err.Error(), errCodeNoPreferenceStore)
	case errors.Is(err, ports.ErrCatalogUnavailable):
		writeErrorWithCode(w, http.StatusServiceUnavailable, "catalog unavailable", errCodeCatalogUnavailable)
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		writeErrorWithCode(w, http.StatusInternalServerError, "internal error", errCodeInternal)
	}
}

func isJSONContentType(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}
