// Package sqlite provides a SQLite-backed catalog source and preference repository.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/nsarvani/Statify/internal/core/domain"
	"github.com/nsarvani/Statify/internal/core/ports"
)

// Adapter implements ports.CatalogSource and ports.PreferenceRepository.
type Adapter struct {
	db *sql.DB
}

var (
	_ ports.CatalogSource        = (*Adapter)(nil)
	_ ports.PreferenceRepository = (*Adapter)(nil)
)

// NewAdapter creates a connection and runs the schema migration
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	// :memory: databases are per connection
	if storagePath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	adapter := &Adapter{db: db}
	if err := adapter.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Name identifies the source in logs and metrics.
func (a *Adapter) Name() string {
	return "sqlite"
}

// LoadRows returns the imported catalog in import order.
func (a *Adapter) LoadRows(ctx context.Context) ([]domain.RawRow, error) {
	query := "SELECT " + songColumnList() + " FROM songs ORDER BY position ASC"
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &ports.SourceError{Source: a.Name(), Err: fmt.Errorf("failed to query songs: %w", err)}
	}
	defer rows.Close()

	out := make([]domain.RawRow, 0)
	for rows.Next() {
		values := make([]sql.NullString, len(domain.Columns))
		dest := make([]any, len(values))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, &ports.SourceError{Source: a.Name(), Err: fmt.Errorf("failed to scan song: %w", err)}
		}

		row := make(domain.RawRow, len(domain.Columns))
		for i, col := range domain.Columns {
			if values[i].Valid {
				row[col] = values[i].String
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &ports.SourceError{Source: a.Name(), Err: fmt.Errorf("failed to iterate songs: %w", err)}
	}
	return out, nil
}

// ImportRows replaces the stored catalog with rows and returns how many were written.
// Columns outside domain.Columns are dropped; missing columns are stored as NULL.
func (a *Adapter) ImportRows(ctx context.Context, rows []domain.RawRow) (int, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM songs"); err != nil {
		return 0, fmt.Errorf("failed to clear songs: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(domain.Columns)+1), ", ")
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO songs (position, "+songColumnList()+") VALUES ("+placeholders+")")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare song insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		args := make([]any, 0, len(domain.Columns)+1)
		args = append(args, i+1)
		for _, col := range domain.Columns {
			if v, ok := row[col]; ok {
				args = append(args, v)
			} else {
				args = append(args, nil)
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("failed to import row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("transaction commit failed: %w", err)
	}
	return len(rows), nil
}

// SavePreference stores p under a new UUID.
func (a *Adapter) SavePreference(ctx context.Context, p domain.Preference) (string, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode preference: %w", err)
	}

	id := uuid.NewString()
	if _, err := a.db.ExecContext(ctx,
		"INSERT INTO preferences (id, payload, created_at) VALUES (?, ?, ?)",
		id, string(payload), time.Now().UTC(),
	); err != nil {
		return "", fmt.Errorf("failed to save preference: %w", err)
	}
	return id, nil
}

// GetPreference loads a stored preference, returning domain.ErrNotFound for unknown ids.
func (a *Adapter) GetPreference(ctx context.Context, id string) (domain.Preference, error) {
	var payload string
	row := a.db.QueryRowContext(ctx, "SELECT payload FROM preferences WHERE id = ?", id)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Preference{}, domain.ErrNotFound
		}
		return domain.Preference{}, fmt.Errorf("failed to load preference: %w", err)
	}

	var p domain.Preference
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return domain.Preference{}, fmt.Errorf("failed to decode preference %s: %w", id, err)
	}
	return p, nil
}

// CountSongs reports how many catalog rows are stored.
func (a *Adapter) CountSongs(ctx context.Context) (int, error) {
	var n int
	if err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM songs").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return n, nil
}

func songColumnList() string {
	quoted := make([]string, len(domain.Columns))
	for i, col := range domain.Columns {
		quoted[i] = `"` + col + `"`
	}
	return strings.Join(quoted, ", ")
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS songs (
		position INTEGER PRIMARY KEY,
		"track_id" TEXT,
		"track_name" TEXT,
		"track_artist" TEXT,
		"track_album_release_date" TEXT,
		"track_popularity" TEXT,
		"tempo" TEXT,
		"key" TEXT,
		"mode" TEXT,
		"danceability" TEXT,
		"valence" TEXT,
		"energy" TEXT,
		"acousticness" TEXT,
		"instrumentalness" TEXT,
		"playlist_genre" TEXT,
		imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS preferences (
		id TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}

	// Feature columns added after the first schema revision.
	for _, col := range []string{domain.ColumnLiveness, domain.ColumnSpeechiness} {
		if _, err := a.db.Exec(`ALTER TABLE songs ADD COLUMN "` + col + `" TEXT`); err != nil {
			if !isDuplicateColumnError(err) {
				return err
			}
		}
	}

	return nil
}

func isDuplicateColumnError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "duplicate column") || strings.Contains(err.Error(), "already exists"))
}
