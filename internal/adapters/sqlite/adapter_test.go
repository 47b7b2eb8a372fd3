package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/nsarvani/Statify/internal/core/domain"
	"github.com/nsarvani/Statify/internal/core/ports"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	a, err := NewAdapter(":memory:")
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestAdapter_ImportAndLoadRows(t *testing.T) {
	tests := []struct {
		name     string
		rows     []domain.RawRow
		wantRows []domain.RawRow
	}{
		{
			name:     "empty catalog",
			rows:     nil,
			wantRows: []domain.RawRow{},
		},
		{
			name: "keeps import order and known columns",
			rows: []domain.RawRow{
				{domain.ColumnTrackID: "7", domain.ColumnTrackName: "Second", domain.ColumnTempo: "128.1", "extra": "dropped"},
				{domain.ColumnTrackID: "3", domain.ColumnTrackName: "First", domain.ColumnSpeechiness: "0.05"},
			},
			wantRows: []domain.RawRow{
				{domain.ColumnTrackID: "7", domain.ColumnTrackName: "Second", domain.ColumnTempo: "128.1"},
				{domain.ColumnTrackID: "3", domain.ColumnTrackName: "First", domain.ColumnSpeechiness: "0.05"},
			},
		},
		{
			name: "empty strings survive",
			rows: []domain.RawRow{
				{domain.ColumnTrackID: "1", domain.ColumnGenre: ""},
			},
			wantRows: []domain.RawRow{
				{domain.ColumnTrackID: "1", domain.ColumnGenre: ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAdapter(t)
			ctx := context.Background()

			n, err := a.ImportRows(ctx, tt.rows)
			if err != nil {
				t.Fatalf("import rows: %v", err)
			}
			if n != len(tt.rows) {
				t.Fatalf("imported: got %d, want %d", n, len(tt.rows))
			}

			got, err := a.LoadRows(ctx)
			if err != nil {
				t.Fatalf("load rows: %v", err)
			}
			if len(got) != len(tt.wantRows) {
				t.Fatalf("rows: got %d, want %d", len(got), len(tt.wantRows))
			}
			for i := range got {
				if len(got[i]) != len(tt.wantRows[i]) {
					t.Fatalf("row %d: got %v, want %v", i, got[i], tt.wantRows[i])
				}
				for k, v := range tt.wantRows[i] {
					if got[i][k] != v {
						t.Fatalf("row %d column %s: got %q, want %q", i, k, got[i][k], v)
					}
				}
			}
		})
	}
}

func TestAdapter_ImportRowsReplacesCatalog(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	if _, err := a.ImportRows(ctx, []domain.RawRow{{domain.ColumnTrackID: "1"}, {domain.ColumnTrackID: "2"}}); err != nil {
		t.Fatalf("first import: %v", err)
	}
	if _, err := a.ImportRows(ctx, []domain.RawRow{{domain.ColumnTrackID: "9"}}); err != nil {
		t.Fatalf("second import: %v", err)
	}

	n, err := a.CountSongs(ctx)
	if err != nil {
		t.Fatalf("count songs: %v", err)
	}
	if n != 1 {
		t.Fatalf("count: got %d, want 1", n)
	}

	rows, err := a.LoadRows(ctx)
	if err != nil {
		t.Fatalf("load rows: %v", err)
	}
	if rows[0][domain.ColumnTrackID] != "9" {
		t.Fatalf("track_id: got %q, want 9", rows[0][domain.ColumnTrackID])
	}
}

func TestAdapter_LoadRowsNormalizes(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	_, err := a.ImportRows(ctx, []domain.RawRow{{
		domain.ColumnTrackID:    "42",
		domain.ColumnTrackName:  "Night Drive",
		domain.ColumnPopularity: "77",
		domain.ColumnTempo:      "121.5",
		domain.ColumnMode:       "1",
	}})
	if err != nil {
		t.Fatalf("import rows: %v", err)
	}

	rows, err := a.LoadRows(ctx)
	if err != nil {
		t.Fatalf("load rows: %v", err)
	}
	rec := domain.NormalizeRows(rows)[0]
	if rec.ID != 42 || rec.Popularity != 77 || rec.BPM != 121.5 || rec.Mode != domain.ModeMajor {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Genre != domain.Unknown {
		t.Fatalf("genre: got %q, want %q", rec.Genre, domain.Unknown)
	}
}

func TestAdapter_Preferences(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, a *Adapter) (string, domain.Preference)
		wantErr error
	}{
		{
			name: "not found",
			setup: func(t *testing.T, a *Adapter) (string, domain.Preference) {
				return uuid.NewString(), domain.Preference{}
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "round trip",
			setup: func(t *testing.T, a *Adapter) (string, domain.Preference) {
				p := domain.Preference{
					Tempo:           domain.TempoSlow,
					SoundType:       domain.SoundAcoustic,
					Mood:            domain.MoodMelancholic,
					VocalPreference: domain.VocalsBalanced,
				}
				id, err := a.SavePreference(context.Background(), p)
				if err != nil {
					t.Fatalf("save preference: %v", err)
				}
				if _, err := uuid.Parse(id); err != nil {
					t.Fatalf("id %q is not a uuid: %v", id, err)
				}
				return id, p
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAdapter(t)
			id, want := tt.setup(t, a)

			got, err := a.GetPreference(context.Background(), id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("get preference: %v", err)
			}
			if got != want {
				t.Fatalf("preference: got %+v, want %+v", got, want)
			}
		})
	}
}

func TestAdapter_SavePreferenceDistinctIDs(t *testing.T) {
	a := newTestAdapter(t)
	p := domain.Preference{Tempo: domain.TempoFast, SoundType: domain.SoundMixed, Mood: domain.MoodEnergetic, VocalPreference: domain.VocalsVocal}

	first, err := a.SavePreference(context.Background(), p)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := a.SavePreference(context.Background(), p)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct ids, got %q twice", first)
	}
}

func TestAdapter_MigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statify.db")

	a, err := NewAdapter(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := a.ImportRows(context.Background(), []domain.RawRow{{domain.ColumnTrackID: "1"}}); err != nil {
		t.Fatalf("import: %v", err)
	}
	_ = a.Close()

	b, err := NewAdapter(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer b.Close()

	n, err := b.CountSongs(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("count: got %d, want 1", n)
	}
}

func TestAdapter_LoadRowsClosedDB(t *testing.T) {
	a, err := NewAdapter(":memory:")
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	_ = a.Close()

	_, err = a.LoadRows(context.Background())
	var srcErr *ports.SourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("expected SourceError, got %v", err)
	}
	if srcErr.Source != "sqlite" {
		t.Fatalf("source: got %q, want sqlite", srcErr.Source)
	}
}
