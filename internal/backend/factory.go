// Package backend opens the storage.Store selected by configuration.
package backend

import (
	"fmt"
	"log/slog"

	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/internal/storage/jsonfile"
	"github.com/mmynk/splitledger/internal/storage/memory"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
)

// Open creates the store named by cfg.StoreBackend.
func Open(cfg *config.Config) (storage.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendJSON:
		store, err := jsonfile.New(cfg.DataPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JSON store: %w", err)
		}
		slog.Info("Storage initialized", "backend", cfg.StoreBackend, "path", cfg.DataPath)
		return store, nil

	case config.BackendSQLite:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
		slog.Info("Storage initialized", "backend", cfg.StoreBackend, "database", cfg.DBPath)
		return store, nil

	case config.BackendMemory:
		slog.Warn("Using in-memory storage; data is lost on exit")
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.StoreBackend)
	}
}
