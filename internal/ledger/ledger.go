// Package ledger keeps the roster of people and the history of shared
// expenses, and derives who owes whom from them.
//
// A Ledger is opened once per process on top of a storage.Store and passed to
// whatever serves requests. Every mutation is saved before it becomes
// visible: if the store fails, the in-memory state stays as it was.
package ledger

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Ledger owns the roster and the newest-first transaction history.
// It is safe for concurrent use: writers are serialised, readers see a
// consistent snapshot.
type Ledger struct {
	mu      sync.RWMutex
	store   storage.Store
	people  []models.Person
	history []models.Transaction
	closed  bool
	dirty   bool

	now   func() time.Time
	newID func() string
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source used to date transactions.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDGenerator overrides how transaction IDs are generated.
func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) { l.newID = newID }
}

// TransactionInput carries the caller's values for RecordTransaction.
type TransactionInput struct {
	Name          string
	Payer         string
	Amount        float64 // ignored for SplitExact
	Beneficiaries []string
	Split         models.Split
}

// Open loads the last saved snapshot from store.
func Open(ctx context.Context, store storage.Store, opts ...Option) (*Ledger, error) {
	snap, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load: %w", ErrPersistence, err)
	}

	l := &Ledger{
		store:   store,
		people:  snap.People,
		history: snap.Transactions,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Close flushes the current state to the store and closes it. The flush is
// skipped when nothing was mutated since Open, so a read-only session never
// writes. Calling Close more than once is a no-op.
func (l *Ledger) Close(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	var saveErr error
	if l.dirty {
		saveErr = l.store.Save(ctx, l.snapshotLocked())
	}
	closeErr := l.store.Close()
	if saveErr != nil {
		return fmt.Errorf("%w: flush: %w", ErrPersistence, saveErr)
	}
	if closeErr != nil {
		return fmt.Errorf("%w: close: %w", ErrPersistence, closeErr)
	}
	return nil
}

// RegisterPerson adds a person with a zero balance.
func (l *Ledger) RegisterPerson(ctx context.Context, name string) (models.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Person{}, ErrInvalidName
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return models.Person{}, ErrClosed
	}
	if l.indexLocked(name) >= 0 {
		return models.Person{}, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	person := models.Person{Name: name}
	people := append(slices.Clip(l.people), person)
	if err := l.commitLocked(ctx, people, l.history); err != nil {
		return models.Person{}, err
	}
	return person, nil
}

// RecordTransaction validates in, applies it to every balance, and prepends
// it to the history. The recorded transaction is returned.
func (l *Ledger) RecordTransaction(ctx context.Context, in TransactionInput) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return models.Transaction{}, ErrClosed
	}
	return l.recordLocked(ctx, in)
}

// SettleDebt records the currently planned payment from debtor to creditor
// as an ordinary equal-split transaction named "Debt Settlement".
func (l *Ledger) SettleDebt(ctx context.Context, debtor, creditor string) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return models.Transaction{}, ErrClosed
	}
	for _, name := range []string{debtor, creditor} {
		if l.indexLocked(name) < 0 {
			return models.Transaction{}, fmt.Errorf("%w: %q", ErrUnknownPerson, name)
		}
	}

	settlement, ok := calculator.FindSettlement(calculator.PlanSettlements(l.people), debtor, creditor)
	if !ok {
		return models.Transaction{}, fmt.Errorf("%w: %s to %s", ErrNoSettlement, debtor, creditor)
	}

	return l.recordLocked(ctx, TransactionInput{
		Name:          models.SettlementTransactionName,
		Payer:         debtor,
		Amount:        settlement.Payment,
		Beneficiaries: []string{creditor},
		Split:         models.Split{Mode: models.SplitEqual},
	})
}

// Balances returns a copy of the roster in registration order.
func (l *Ledger) Balances() []models.Person {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.people)
}

// History returns a copy of the transactions, newest first.
func (l *Ledger) History() []models.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneHistory(l.history)
}

// Settlements plans the payments that would settle every current balance.
func (l *Ledger) Settlements() []models.Settlement {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return calculator.PlanSettlements(l.people)
}

// Snapshot returns a consistent copy of the roster and history.
func (l *Ledger) Snapshot() *models.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

func (l *Ledger) recordLocked(ctx context.Context, in TransactionInput) (models.Transaction, error) {
	if l.indexLocked(in.Payer) < 0 {
		return models.Transaction{}, fmt.Errorf("%w: payer %q", ErrUnknownPerson, in.Payer)
	}
	if len(in.Beneficiaries) == 0 {
		return models.Transaction{}, fmt.Errorf("%w: must have at least one beneficiary", ErrInvalidSplit)
	}
	for _, b := range in.Beneficiaries {
		if l.indexLocked(b) < 0 {
			return models.Transaction{}, fmt.Errorf("%w: beneficiary %q", ErrUnknownPerson, b)
		}
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = models.DefaultTransactionName
	}

	tx := calculator.NormalizeAmount(models.Transaction{
		ID:            l.newID(),
		Name:          name,
		Payer:         in.Payer,
		Beneficiaries: slices.Clone(in.Beneficiaries),
		Amount:        in.Amount,
		Split:         in.Split.Clone(),
		Date:          l.now(),
	})

	people, err := calculator.ApplyDelta(l.people, tx)
	if err != nil {
		return models.Transaction{}, err
	}
	tx.Description = calculator.Describe(tx)

	history := make([]models.Transaction, 0, len(l.history)+1)
	history = append(history, tx)
	history = append(history, l.history...)

	if err := l.commitLocked(ctx, people, history); err != nil {
		return models.Transaction{}, err
	}
	return tx.Clone(), nil
}

// commitLocked saves the candidate state and only then adopts it.
func (l *Ledger) commitLocked(ctx context.Context, people []models.Person, history []models.Transaction) error {
	snap := &models.Snapshot{People: people, Transactions: history}
	if err := l.store.Save(ctx, snap.Clone()); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	l.people = people
	l.history = history
	l.dirty = true
	return nil
}

func (l *Ledger) snapshotLocked() *models.Snapshot {
	return &models.Snapshot{
		People:       slices.Clone(l.people),
		Transactions: cloneHistory(l.history),
	}
}

func (l *Ledger) indexLocked(name string) int {
	return slices.IndexFunc(l.people, func(p models.Person) bool { return p.Name == name })
}

func cloneHistory(history []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(history))
	for i, tx := range history {
		out[i] = tx.Clone()
	}
	return out
}
