package rest

import (
	"net/http"

	"github.com/nsarvani/Statify/internal/core/domain"
)

type recommendationResponse struct {
	Preference domain.Preference        `json:"preference"`
	Results    []domain.ScoredCandidate `json:"results"`
}

type playlistResponse struct {
	Preference domain.Preference   `json:"preference"`
	Songs      []domain.SongRecord `json:"songs"`
}

// Recommend handles POST /api/recommendations
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	p, ok := h.resolvePreference(w, r)
	if !ok {
		return
	}

	results, err := h.svc.QuizResults(r.Context(), p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendationResponse{Preference: p, Results: results})
}

// CreatePlaylist handles POST /api/playlists
func (h *Handler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	p, ok := h.resolvePreference(w, r)
	if !ok {
		return
	}

	songs, err := h.svc.Playlist(r.Context(), p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, playlistResponse{Preference: p, Songs: songs})
}
