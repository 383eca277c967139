// Package jsonfile provides a storage.Store backed by a single JSON document on disk.
//
// The layout is the long-standing split.json format, so older data files
// load unchanged:
//
//	{
//	    "people": [{"name": "Alice", "balance": 60.0}],
//	    "transactions": [{"name": "Dinner", "payer": "Alice", ...}]
//	}
//
// Entries written before split modes existed have no "split_mode" and load as
// equal splits; entries without an "id" are assigned one on load.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// dateLayout is the dd/mm/yy date stored in split.json.
const dateLayout = "02/01/06"

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store on top of a JSON file.
type Store struct {
	mu   sync.Mutex
	path string
}

type document struct {
	People       []personRecord      `json:"people"`
	Transactions []transactionRecord `json:"transactions"`
}

type personRecord struct {
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

type transactionRecord struct {
	ID            string             `json:"id,omitempty"`
	Name          string             `json:"name"`
	Payer         string             `json:"payer"`
	Beneficiaries []string           `json:"beneficiaries"`
	Amount        float64            `json:"amount"`
	SplitMode     string             `json:"split_mode,omitempty"`
	Shares        map[string]float64 `json:"shares,omitempty"`
	Exact         map[string]float64 `json:"exact,omitempty"`
	Date          string             `json:"date"`
	RecordedAt    *time.Time         `json:"recorded_at,omitempty"`
	Print         string             `json:"print"`
}

// New creates a Store for the file at path, creating parent directories.
// The file itself is only created on the first Save.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{path: path}, nil
}

// Path returns the location of the data file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the data file. A missing file yields an empty snapshot.
func (s *Store) Load(_ context.Context) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &models.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode data file %s: %w", s.path, err)
	}

	snap := &models.Snapshot{
		People:       make([]models.Person, len(doc.People)),
		Transactions: make([]models.Transaction, len(doc.Transactions)),
	}
	for i, p := range doc.People {
		snap.People[i] = models.Person{Name: p.Name, Balance: p.Balance}
	}
	for i, rec := range doc.Transactions {
		tx, err := rec.toModel()
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		snap.Transactions[i] = tx
	}
	return snap, nil
}

// Save atomically replaces the data file with snap.
func (s *Store) Save(ctx context.Context, snap *models.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := document{
		People:       make([]personRecord, len(snap.People)),
		Transactions: make([]transactionRecord, len(snap.Transactions)),
	}
	for i, p := range snap.People {
		doc.People[i] = personRecord{Name: p.Name, Balance: p.Balance}
	}
	for i, tx := range snap.Transactions {
		doc.Transactions[i] = fromModel(tx)
	}

	raw, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return writeFileAtomic(s.path, raw)
}

// Close is a no-op; every Save already reached the disk.
func (s *Store) Close() error {
	return nil
}

func fromModel(tx models.Transaction) transactionRecord {
	recordedAt := tx.Date
	return transactionRecord{
		ID:            tx.ID,
		Name:          tx.Name,
		Payer:         tx.Payer,
		Beneficiaries: tx.Beneficiaries,
		Amount:        tx.Amount,
		SplitMode:     string(tx.Split.Mode),
		Shares:        tx.Split.Shares,
		Exact:         tx.Split.Exact,
		Date:          tx.Date.Format(dateLayout),
		RecordedAt:    &recordedAt,
		Print:         tx.Description,
	}
}

func (r transactionRecord) toModel() (models.Transaction, error) {
	mode := models.SplitMode(r.SplitMode)
	if mode == "" {
		mode = models.SplitEqual
	}
	if !mode.IsValid() {
		return models.Transaction{}, fmt.Errorf("unknown split mode %q", r.SplitMode)
	}

	var date time.Time
	switch {
	case r.RecordedAt != nil:
		date = *r.RecordedAt
	case r.Date != "":
		d, err := time.ParseInLocation(dateLayout, r.Date, time.Local)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("invalid date %q: %w", r.Date, err)
		}
		date = d
	}

	id := r.ID
	if id == "" {
		id = uuid.New().String()
	}

	return models.Transaction{
		ID:            id,
		Name:          r.Name,
		Payer:         r.Payer,
		Beneficiaries: r.Beneficiaries,
		Amount:        r.Amount,
		Split: models.Split{
			Mode:   mode,
			Shares: r.Shares,
			Exact:  r.Exact,
		},
		Date:        date,
		Description: r.Print,
	}, nil
}

// writeFileAtomic writes data to a temp file next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}
