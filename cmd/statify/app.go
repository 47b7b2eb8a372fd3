package main

import (
	"context"
	"fmt"

	"github.com/nsarvani/Statify/internal/adapters/csvfile"
	"github.com/nsarvani/Statify/internal/adapters/httpcatalog"
	"github.com/nsarvani/Statify/internal/adapters/sqlite"
	"github.com/nsarvani/Statify/internal/config"
	"github.com/nsarvani/Statify/internal/core/ports"
	"github.com/nsarvani/Statify/internal/core/services"
)

// app holds the wired adapters for one command invocation.
type app struct {
	svc     *services.Orchestrator
	db      *sqlite.Adapter
	closers []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn().Err(err).Msg("close failed")
		}
	}
}

// newApp wires the catalog source and preference store selected by cfg.
func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	a := &app{}

	if cfg.Preferences.Path != "" || cfg.Catalog.Driver == config.DriverSQLite {
		path := cfg.Preferences.Path
		if path == "" {
			path = "statify.db"
		}
		db, err := sqlite.NewAdapter(path)
		if err != nil {
			return nil, fmt.Errorf("open database %s: %w", path, err)
		}
		a.db = db
		a.closers = append(a.closers, db.Close)
	}

	var source ports.CatalogSource
	switch cfg.Catalog.Driver {
	case config.DriverCSV:
		source = csvfile.NewSource(cfg.Catalog.Path)
	case config.DriverHTTP:
		source = httpcatalog.NewSource(ctx, httpcatalog.Config{
			URL:          cfg.Catalog.URL,
			ClientID:     cfg.Catalog.ClientID,
			ClientSecret: cfg.Catalog.ClientSecret,
			TokenURL:     cfg.Catalog.TokenURL,
			Scopes:       cfg.Catalog.Scopes,
			MaxRetries:   cfg.Catalog.MaxRetries,
			BaseBackoff:  cfg.Catalog.BaseBackoff,
			Timeout:      cfg.Catalog.Timeout,
		}, nil)
	case config.DriverSQLite:
		source = a.db
	default:
		a.Close()
		return nil, fmt.Errorf("unknown catalog driver: %s", cfg.Catalog.Driver)
	}

	var prefs ports.PreferenceRepository
	if a.db != nil {
		prefs = a.db
	}
	a.svc = services.NewOrchestrator(source, prefs)

	logger.Debug().
		Str("driver", cfg.Catalog.Driver).
		Bool("preferences", prefs != nil).
		Msg("catalog wired")
	return a, nil
}
