package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/nsarvani/Statify/internal/core/domain"
)

// ErrCatalogUnavailable indicates the catalog source cannot currently serve rows.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// SourceError provides context for a failed catalog load.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("catalog source %s failed", e.Source)
	}
	return fmt.Sprintf("catalog source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// CatalogSource supplies the raw catalog rows. Implementations read the
// whole catalog before returning.
type CatalogSource interface {
	LoadRows(ctx context.Context) ([]domain.RawRow, error)
}
