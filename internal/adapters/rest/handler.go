package rest

import (
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/nsarvani/Statify/internal/core/services"
)

// Options tunes the HTTP surface.
type Options struct {
	Logger zerolog.Logger
	// AllowedOrigins for CORS; empty allows any origin.
	AllowedOrigins []string
	// RateLimit is the per-IP request budget per minute; zero disables limiting.
	RateLimit int
}

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc      *services.Orchestrator
	router   chi.Router
	validate *validator.Validate
	logger   zerolog.Logger
	opts     Options
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Orchestrator, opts Options) *Handler {
	h := &Handler{
		svc:      svc,
		router:   chi.NewRouter(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   opts.Logger,
		opts:     opts,
	}

	// Report json field names in validation errors.
	h.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	origins := h.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	h.router.Use(middleware.RequestID)
	h.router.Use(middleware.RealIP)
	h.router.Use(h.requestLogger)
	h.router.Use(middleware.Recoverer)
	h.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Location", "X-Request-Id"},
		MaxAge:         300,
	}))
	if h.opts.RateLimit > 0 {
		h.router.Use(httprate.LimitByIP(h.opts.RateLimit, time.Minute))
	}

	h.router.Get("/health", h.HealthCheck)
	h.router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	h.router.Route("/api", func(r chi.Router) {
		r.Get("/songs", h.GetSongs)
		r.Get("/songs/top", h.GetTopSongs)
		r.Get("/quiz", h.GetQuiz)
		r.Post("/preferences", h.CreatePreference)
		r.Get("/preferences/{id}", h.GetPreference)
		r.Post("/recommendations", h.Recommend)
		r.Post("/playlists", h.CreatePlaylist)
	})
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Statify is live"})
}
