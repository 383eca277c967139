// Package memory provides an in-memory implementation of storage.Store.
// Nothing survives the process; it backs tests and throwaway sessions.
package memory

import (
	"context"
	"sync"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps a deep copy of the last saved snapshot.
type Store struct {
	mu    sync.RWMutex
	snap  *models.Snapshot
	saves int
}

// New creates an empty Store.
func New() *Store {
	return &Store{snap: &models.Snapshot{}}
}

// NewWithSnapshot creates a Store that starts out holding snap.
func NewWithSnapshot(snap *models.Snapshot) *Store {
	return &Store{snap: snap.Clone()}
}

// Load returns a copy of the stored snapshot.
func (s *Store) Load(_ context.Context) (*models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone(), nil
}

// Save stores a copy of snap.
func (s *Store) Save(ctx context.Context, snap *models.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap.Clone()
	s.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
