package models

import "slices"

// Snapshot is the complete persisted state of a ledger.
type Snapshot struct {
	// People is the roster in registration order.
	People []Person

	// Transactions is the history, newest first.
	Transactions []Transaction
}

// Clone returns a deep copy of s.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		People:       slices.Clone(s.People),
		Transactions: make([]Transaction, len(s.Transactions)),
	}
	for i, tx := range s.Transactions {
		out.Transactions[i] = tx.Clone()
	}
	return out
}
