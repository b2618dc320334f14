package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/shawarma-forecast/internal/config"
	"github.com/Veraticus/shawarma-forecast/internal/forecastapi"
	"github.com/Veraticus/shawarma-forecast/internal/service"
	"github.com/Veraticus/shawarma-forecast/internal/storage"
	"github.com/Veraticus/shawarma-forecast/internal/tui/themes"
)

// newClient creates the forecasting service client from the loaded config.
func newClient(cfg config.Config) *forecastapi.Client {
	return forecastapi.NewClient(cfg.BaseURL)
}

// openJournal opens and migrates the upload journal. It returns nil when the
// journal is disabled.
func openJournal(ctx context.Context, cfg config.Config) (service.UploadJournal, error) {
	if !cfg.JournalEnabled() {
		return nil, nil
	}

	store, err := storage.NewSQLiteStorage(cfg.JournalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open upload journal: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// recorderOf narrows a possibly nil journal to a recorder without producing
// a non-nil interface around a nil value.
func recorderOf(journal service.UploadJournal) service.UploadRecorder {
	if journal == nil {
		return nil
	}
	return journal
}

func currentTheme() themes.Theme {
	return themes.GetTheme(appConfig.Theme)
}
