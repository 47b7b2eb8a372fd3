package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/nsarvani/Statify/internal/core/domain"
)

// answersRequest is a completed quiz as submitted by a client.
type answersRequest struct {
	Tempo           string `json:"tempo" validate:"required,oneof=slow medium fast"`
	SoundType       string `json:"soundType" validate:"required,oneof=acoustic electronic mixed"`
	Mood            string `json:"mood" validate:"required,oneof=happy melancholic energetic"`
	VocalPreference string `json:"vocalPreference" validate:"required,oneof=vocal instrumental balanced"`
}

func (a answersRequest) preference() domain.Preference {
	return domain.Preference{
		Tempo:           domain.Tempo(a.Tempo),
		SoundType:       domain.SoundType(a.SoundType),
		Mood:            domain.Mood(a.Mood),
		VocalPreference: domain.VocalPreference(a.VocalPreference),
	}
}

// recommendationRequest carries either inline answers or the id of a stored preference.
type recommendationRequest struct {
	PreferenceID string `json:"preferenceId"`
	answersRequest
}

type createPreferenceResponse struct {
	ID string `json:"id"`
}

// CreatePreference handles POST /api/preferences
func (h *Handler) CreatePreference(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req answersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorWithCode(w, http.StatusBadRequest, "Invalid request body", errCodeInvalidRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErrorWithCode(w, http.StatusBadRequest, validationMessage(err), errCodeInvalidAnswer)
		return
	}

	id, err := h.svc.SavePreference(r.Context(), req.preference())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/preferences/"+id)
	writeJSON(w, http.StatusCreated, createPreferenceResponse{ID: id})
}

// GetPreference handles GET /api/preferences/{id}
func (h *Handler) GetPreference(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetPreference(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// resolvePreference decodes a recommendationRequest body and returns the
// preference it names. It writes the error response itself and reports false
// when the request cannot be served.
func (h *Handler) resolvePreference(w http.ResponseWriter, r *http.Request) (domain.Preference, bool) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return domain.Preference{}, false
	}

	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorWithCode(w, http.StatusBadRequest, "Invalid request body", errCodeInvalidRequest)
		return domain.Preference{}, false
	}

	if id := strings.TrimSpace(req.PreferenceID); id != "" {
		if err := h.validate.Var(id, "uuid"); err != nil {
			writeErrorWithCode(w, http.StatusBadRequest, "preferenceId must be a UUID", errCodeInvalidRequest)
			return domain.Preference{}, false
		}
		p, err := h.svc.GetPreference(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return domain.Preference{}, false
		}
		return p, true
	}

	if err := h.validate.Struct(req.answersRequest); err != nil {
		writeErrorWithCode(w, http.StatusBadRequest, validationMessage(err), errCodeInvalidAnswer)
		return domain.Preference{}, false
	}
	return req.preference(), true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	if fe.Tag() == "required" {
		return fmt.Sprintf("%s is required", fe.Field())
	}
	return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
}
