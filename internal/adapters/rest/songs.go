package rest

import (
	"net/http"
	"strconv"

	"github.com/nsarvani/Statify/internal/core/domain"
)

// songsResponse is the dashboard payload. AudioFeatures is null for an empty catalog.
type songsResponse struct {
	TopSongs      []domain.SongRecord          `json:"topSongs"`
	AudioFeatures *domain.AudioFeatureAverages `json:"audioFeatures"`
	TopArtists    []domain.ArtistStats         `json:"topArtists"`
	PopularGenres domain.GenreDistribution     `json:"popularGenres"`
}

func newSongsResponse(agg domain.Aggregation) songsResponse {
	resp := songsResponse{
		TopSongs:      agg.TopSongs,
		TopArtists:    agg.TopArtists,
		PopularGenres: agg.PopularGenres,
	}
	if resp.TopSongs == nil {
		resp.TopSongs = []domain.SongRecord{}
	}
	if resp.TopArtists == nil {
		resp.TopArtists = []domain.ArtistStats{}
	}
	if agg.AudioFeatures.IsDefined() {
		avg := agg.AudioFeatures
		resp.AudioFeatures = &avg
	}
	return resp
}

// GetSongs handles GET /api/songs
func (h *Handler) GetSongs(w http.ResponseWriter, r *http.Request) {
	agg, err := h.svc.Aggregate(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSongsResponse(agg))
}

// GetTopSongs handles GET /api/songs/top?limit=n
func (h *Handler) GetTopSongs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeErrorWithCode(w, http.StatusBadRequest, "limit must be a positive integer", errCodeInvalidRequest)
			return
		}
		limit = n
	}

	songs, err := h.svc.TopSongs(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, songs)
}

// GetQuiz handles GET /api/quiz
func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Quiz())
}
