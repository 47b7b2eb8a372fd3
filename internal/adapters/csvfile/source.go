// Package csvfile reads the song catalog from a CSV file with a header row.
package csvfile

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nsarvani/Statify/internal/core/domain"
	"github.com/nsarvani/Statify/internal/core/ports"
)

// Source implements ports.CatalogSource for a file on disk.
type Source struct {
	path string
}

// compile-time interface assertion
var _ ports.CatalogSource = (*Source)(nil)

// NewSource constructs a Source reading path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Name identifies the source in logs and metrics.
func (s *Source) Name() string {
	return "csv"
}

// LoadRows reads every row of the file.
func (s *Source) LoadRows(ctx context.Context) ([]domain.RawRow, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, &ports.SourceError{Source: s.Name(), Err: err}
	}
	defer f.Close()

	rows, err := ReadRows(ctx, f)
	if err != nil {
		return nil, &ports.SourceError{Source: s.Name(), Err: fmt.Errorf("%s: %w", s.path, err)}
	}
	return rows, nil
}

// ReadRows decodes a CSV document whose first record is the header. Short
// records leave the missing columns absent; extra fields are ignored.
func ReadRows(ctx context.Context, r io.Reader) ([]domain.RawRow, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.RawRow{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = h
	}

	rows := make([]domain.RawRow, 0, 1024)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record %d: %w", len(rows)+1, err)
		}

		row := make(domain.RawRow, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
