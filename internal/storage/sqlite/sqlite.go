// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps the foreign_keys pragma in effect for every statement
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save replaces the stored roster and history with snap in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, snap *models.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM transaction_beneficiaries",
		"DELETE FROM transactions",
		"DELETE FROM people",
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear previous snapshot: %w", err)
		}
	}

	for i, p := range snap.People {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO people (position, name, balance) VALUES (?, ?, ?)",
			i, p.Name, p.Balance,
		)
		if err != nil {
			return fmt.Errorf("failed to insert person %q: %w", p.Name, err)
		}
	}

	// History is newest first; the oldest transaction gets seq 1.
	for i := range snap.Transactions {
		t := &snap.Transactions[i]
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		seq := len(snap.Transactions) - i

		_, err = tx.ExecContext(ctx,
			`INSERT INTO transactions (id, seq, name, payer, amount, split_mode, recorded_at, description)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, seq, t.Name, t.Payer, t.Amount, string(t.Split.Mode), t.Date.UnixNano(), t.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}

		for pos, name := range t.Beneficiaries {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO transaction_beneficiaries (transaction_id, position, name, share, exact) VALUES (?, ?, ?, ?, ?)",
				t.ID, pos, name, nullable(t.Split.Shares, name), nullable(t.Split.Exact, name),
			)
			if err != nil {
				return fmt.Errorf("failed to insert beneficiary: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Load reads the roster and the full history, newest transaction first.
func (s *SQLiteStore) Load(ctx context.Context) (*models.Snapshot, error) {
	snap := &models.Snapshot{}

	rows, err := s.db.QueryContext(ctx, "SELECT name, balance FROM people ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to get people: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.Name, &p.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		snap.People = append(snap.People, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}

	txRows, err := s.db.QueryContext(ctx,
		`SELECT id, name, payer, amount, split_mode, recorded_at, description
		 FROM transactions ORDER BY seq DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	defer txRows.Close()

	index := make(map[string]int)
	for txRows.Next() {
		var (
			t          models.Transaction
			mode       string
			recordedAt int64
		)
		if err := txRows.Scan(&t.ID, &t.Name, &t.Payer, &t.Amount, &mode, &recordedAt, &t.Description); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Split.Mode = models.SplitMode(mode)
		t.Date = time.Unix(0, recordedAt)
		index[t.ID] = len(snap.Transactions)
		snap.Transactions = append(snap.Transactions, t)
	}
	if err := txRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	benRows, err := s.db.QueryContext(ctx,
		`SELECT transaction_id, name, share, exact
		 FROM transaction_beneficiaries ORDER BY transaction_id, position`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get beneficiaries: %w", err)
	}
	defer benRows.Close()

	for benRows.Next() {
		var (
			txID, name   string
			share, exact sql.NullFloat64
		)
		if err := benRows.Scan(&txID, &name, &share, &exact); err != nil {
			return nil, fmt.Errorf("failed to scan beneficiary: %w", err)
		}
		i, ok := index[txID]
		if !ok {
			return nil, fmt.Errorf("beneficiary references unknown transaction: %s", txID)
		}
		t := &snap.Transactions[i]
		t.Beneficiaries = append(t.Beneficiaries, name)
		if share.Valid {
			if t.Split.Shares == nil {
				t.Split.Shares = make(map[string]float64)
			}
			t.Split.Shares[name] = share.Float64
		}
		if exact.Valid {
			if t.Split.Exact == nil {
				t.Split.Exact = make(map[string]float64)
			}
			t.Split.Exact[name] = exact.Float64
		}
	}
	if err := benRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate beneficiaries: %w", err)
	}

	return snap, nil
}

// nullable returns m[key], or nil so the column is stored as NULL when absent.
func nullable(m map[string]float64, key string) any {
	if v, ok := m[key]; ok {
		return v
	}
	return nil
}
