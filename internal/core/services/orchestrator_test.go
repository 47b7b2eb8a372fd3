package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsarvani/Statify/internal/core/domain"
)

// --- Mocks ---

// mockSource is a canned catalog source.
type mockSource struct {
	rows  []domain.RawRow
	err   error
	calls int
}

func (m *mockSource) Name() string { return "mock" }

func (m *mockSource) LoadRows(ctx context.Context) ([]domain.RawRow, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.rows, nil
}

// mockPrefs is a minimal in-memory PreferenceRepository.
type mockPrefs struct {
	saveErr error
	saved   map[string]domain.Preference
}

func (m *mockPrefs) SavePreference(ctx context.Context, p domain.Preference) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	if m.saved == nil {
		m.saved = map[string]domain.Preference{}
	}
	id := "pref-1"
	m.saved[id] = p
	return id, nil
}

func (m *mockPrefs) GetPreference(ctx context.Context, id string) (domain.Preference, error) {
	p, ok := m.saved[id]
	if !ok {
		return domain.Preference{}, domain.ErrNotFound
	}
	return p, nil
}

func catalogRows() []domain.RawRow {
	return []domain.RawRow{
		{
			domain.ColumnTrackID: "1", domain.ColumnTrackName: "Slow Folk", domain.ColumnTrackArtist: "Ada",
			domain.ColumnPopularity: "40", domain.ColumnTempo: "90", domain.ColumnAcousticness: "0.6",
			domain.ColumnValence: "0.7", domain.ColumnInstrumentalness: "0.1", domain.ColumnGenre: "folk",
		},
		{
			domain.ColumnTrackID: "2", domain.ColumnTrackName: "Fast Rock", domain.ColumnTrackArtist: "Bo",
			domain.ColumnPopularity: "80", domain.ColumnTempo: "150", domain.ColumnAcousticness: "0.1",
			domain.ColumnValence: "0.2", domain.ColumnEnergy: "0.9", domain.ColumnInstrumentalness: "0.6",
			domain.ColumnGenre: "rock",
		},
		{
			domain.ColumnTrackID: "3", domain.ColumnTrackName: "Slow Pop", domain.ColumnTrackArtist: "Ada",
			domain.ColumnPopularity: "60", domain.ColumnTempo: "95", domain.ColumnAcousticness: "0.7",
			domain.ColumnValence: "0.65", domain.ColumnInstrumentalness: "0.05", domain.ColumnGenre: "pop",
		},
	}
}

var happyAcoustic = domain.Preference{
	Tempo:           domain.TempoSlow,
	SoundType:       domain.SoundAcoustic,
	Mood:            domain.MoodHappy,
	VocalPreference: domain.VocalsVocal,
}

// --- Tests ---

func TestOrchestrator_Aggregate(t *testing.T) {
	src := &mockSource{rows: catalogRows()}
	o := NewOrchestrator(src, nil)

	got, err := o.Aggregate(context.Background())
	require.NoError(t, err)

	assert.Len(t, got.TopSongs, 3)
	require.Len(t, got.TopArtists, 2)
	assert.Equal(t, "Bo", got.TopArtists[0].Name)
	assert.Equal(t, "Ada", got.TopArtists[1].Name)
	assert.Equal(t, "Slow Pop", got.TopArtists[1].TopTrack)
	assert.Equal(t, []string{"folk", "pop"}, got.TopArtists[1].Genres)
	assert.Equal(t, 3, got.PopularGenres.Len())
	assert.True(t, got.AudioFeatures.IsDefined())
	assert.Equal(t, 1, src.calls)
}

func TestOrchestrator_SourceError(t *testing.T) {
	src := &mockSource{err: errors.New("disk on fire")}
	o := NewOrchestrator(src, nil)

	_, err := o.Aggregate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service: failed to load catalog")
	assert.ErrorIs(t, err, src.err)

	_, err = o.QuizResults(context.Background(), happyAcoustic)
	assert.Error(t, err)
	_, err = o.Playlist(context.Background(), happyAcoustic)
	assert.Error(t, err)
	_, err = o.TopSongs(context.Background(), 5)
	assert.Error(t, err)
}

func TestOrchestrator_Recommendations(t *testing.T) {
	o := NewOrchestrator(&mockSource{rows: catalogRows()}, nil)

	quiz, err := o.QuizResults(context.Background(), happyAcoustic)
	require.NoError(t, err)
	require.Len(t, quiz, 2)
	assert.Equal(t, "Slow Pop", quiz[0].Song.TrackName)
	assert.Equal(t, 8, quiz[0].Score)
	assert.Equal(t, "Slow Folk", quiz[1].Song.TrackName)

	playlist, err := o.Playlist(context.Background(), happyAcoustic)
	require.NoError(t, err)
	require.Len(t, playlist, 2)
	assert.Equal(t, "Slow Pop", playlist[0].TrackName)

	none, err := o.QuizResults(context.Background(), domain.Preference{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrchestrator_TopSongs(t *testing.T) {
	o := NewOrchestrator(&mockSource{rows: catalogRows()}, nil)

	top, err := o.TopSongs(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Fast Rock", top[0].TrackName)
	assert.Equal(t, "Slow Pop", top[1].TrackName)

	all, err := o.TopSongs(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOrchestrator_Preferences(t *testing.T) {
	tests := []struct {
		name    string
		prefs   *mockPrefs
		pref    domain.Preference
		wantErr error
	}{
		{
			name:  "Happy Path",
			prefs: &mockPrefs{},
			pref:  happyAcoustic,
		},
		{
			name:    "invalid answer",
			prefs:   &mockPrefs{},
			pref:    domain.Preference{Tempo: "glacial", SoundType: domain.SoundMixed, Mood: domain.MoodHappy, VocalPreference: domain.VocalsVocal},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "no store configured",
			prefs:   nil,
			pref:    happyAcoustic,
			wantErr: ErrNoPreferenceStore,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := NewOrchestrator(&mockSource{}, nil)
			if tc.prefs != nil {
				o = NewOrchestrator(&mockSource{}, tc.prefs)
			}

			id, err := o.SavePreference(context.Background(), tc.pref)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)

			got, err := o.GetPreference(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, tc.pref, got)
		})
	}
}

func TestOrchestrator_GetPreferenceErrors(t *testing.T) {
	o := NewOrchestrator(&mockSource{}, &mockPrefs{})

	_, err := o.GetPreference(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = o.GetPreference(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrchestrator_SaveErrorIsWrapped(t *testing.T) {
	o := NewOrchestrator(&mockSource{}, &mockPrefs{saveErr: errors.New("db locked")})

	_, err := o.SavePreference(context.Background(), happyAcoustic)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service: failed to save preference")
}
