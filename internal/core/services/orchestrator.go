package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nsarvani/Statify/internal/core/domain"
	"github.com/nsarvani/Statify/internal/core/ports"
	"github.com/nsarvani/Statify/internal/logging"
	"github.com/nsarvani/Statify/internal/metrics"
)

var (
	// ErrInvalidArgument wraps caller mistakes such as an empty id or a bad quiz answer.
	ErrInvalidArgument = errors.New("service: invalid argument")
	// ErrNoPreferenceStore is returned when preferences are requested but no repository is configured.
	ErrNoPreferenceStore = errors.New("service: preference store not configured")
)

// DefaultTopSongs is the dashboard chart size.
const DefaultTopSongs = 10

// Orchestrator coordinates the catalog source, the pure domain pipeline and
// the preference repository. Every call reads the catalog afresh; nothing is
// cached between requests.
type Orchestrator struct {
	source ports.CatalogSource
	prefs  ports.PreferenceRepository
}

// NewOrchestrator constructs an Orchestrator. prefs may be nil.
func NewOrchestrator(source ports.CatalogSource, prefs ports.PreferenceRepository) *Orchestrator {
	return &Orchestrator{
		source: source,
		prefs:  prefs,
	}
}

// Catalog loads and normalizes the full catalog.
func (o *Orchestrator) Catalog(ctx context.Context) ([]domain.SongRecord, error) {
	name := sourceName(o.source)
	start := time.Now()

	rows, err := o.source.LoadRows(ctx)
	metrics.RecordCatalogLoad(name, len(rows), time.Since(start), err)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("source", name).Msg("catalog load failed")
		return nil, fmt.Errorf("service: failed to load catalog: %w", err)
	}

	records := domain.NormalizeRows(rows)
	logging.Ctx(ctx).Debug().
		Str("source", name).
		Int("rows", len(records)).
		Dur("took", time.Since(start)).
		Msg("catalog loaded")
	return records, nil
}

// Aggregate returns the catalog statistics.
func (o *Orchestrator) Aggregate(ctx context.Context) (domain.Aggregation, error) {
	records, err := o.Catalog(ctx)
	if err != nil {
		return domain.Aggregation{}, err
	}
	return domain.Aggregate(records), nil
}

// TopSongs returns the n most popular songs. A non-positive n means DefaultTopSongs.
func (o *Orchestrator) TopSongs(ctx context.Context, n int) ([]domain.SongRecord, error) {
	if n <= 0 {
		n = DefaultTopSongs
	}
	records, err := o.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return domain.TopByPopularity(records, n), nil
}

// QuizResults returns the strict recommendation view for p.
func (o *Orchestrator) QuizResults(ctx context.Context, p domain.Preference) ([]domain.ScoredCandidate, error) {
	records, err := o.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	results := domain.QuizResults(records, p)
	metrics.RecordRecommendation("quiz", len(results))
	logging.Ctx(ctx).Info().
		Interface("preference", p).
		Int("results", len(results)).
		Msg("quiz recommendations served")
	return results, nil
}

// Playlist returns the genre-diversified playlist for p.
func (o *Orchestrator) Playlist(ctx context.Context, p domain.Preference) ([]domain.SongRecord, error) {
	records, err := o.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	playlist := domain.BuildPlaylist(records, p)
	metrics.RecordRecommendation("playlist", len(playlist))
	logging.Ctx(ctx).Info().
		Interface("preference", p).
		Int("results", len(playlist)).
		Msg("playlist built")
	return playlist, nil
}

// Quiz returns the preference questions.
func (o *Orchestrator) Quiz() []domain.QuizQuestion {
	return domain.Quiz()
}

// SavePreference validates and stores a completed quiz, returning its id.
func (o *Orchestrator) SavePreference(ctx context.Context, p domain.Preference) (string, error) {
	if o.prefs == nil {
		return "", ErrNoPreferenceStore
	}
	if err := p.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	id, err := o.prefs.SavePreference(ctx, p)
	if err != nil {
		return "", fmt.Errorf("service: failed to save preference: %w", err)
	}
	return id, nil
}

// GetPreference loads a stored quiz by id.
func (o *Orchestrator) GetPreference(ctx context.Context, id string) (domain.Preference, error) {
	if o.prefs == nil {
		return domain.Preference{}, ErrNoPreferenceStore
	}
	if strings.TrimSpace(id) == "" {
		return domain.Preference{}, fmt.Errorf("%w: preference id cannot be empty", ErrInvalidArgument)
	}
	p, err := o.prefs.GetPreference(ctx, id)
	if err != nil {
		return domain.Preference{}, fmt.Errorf("service: failed to load preference: %w", err)
	}
	return p, nil
}

type namedSource interface {
	Name() string
}

func sourceName(src ports.CatalogSource) string {
	if n, ok := src.(namedSource); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", src)
}
