// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/splitledger/internal/models"
)

// Store defines the interface for ledger persistence.
// This abstraction allows swapping storage backends (JSON file, SQLite, memory)
// without changing the ledger.
type Store interface {
	// Load returns the last saved snapshot.
	// Returns an empty snapshot if nothing has been saved yet.
	Load(ctx context.Context) (*models.Snapshot, error)

	// Save replaces the stored snapshot with snap.
	Save(ctx context.Context, snap *models.Snapshot) error

	// Close releases any resources held by the store.
	Close() error
}
