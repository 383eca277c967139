package models

import (
	"slices"
	"time"
)

// DefaultTransactionName labels transactions recorded without a name.
const DefaultTransactionName = "Unnamed Transaction"

// SettlementTransactionName labels transactions that pay off a planned settlement.
const SettlementTransactionName = "Debt Settlement"

// Transaction represents one recorded expense.
// Transactions are immutable once they are part of the history.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	// Name is the free-text label.
	Name string

	// Payer is the name of the person who advanced the money.
	Payer string

	// Beneficiaries are the people who shared the expense, in display order.
	Beneficiaries []string

	// Amount is the total advanced by the payer.
	// For SplitExact it is the sum of the exact amounts.
	Amount float64

	// Split describes how Amount is divided among Beneficiaries.
	Split Split

	// Date is when the transaction was recorded.
	Date time.Time

	// Description is the one-line summary rendered when the transaction was recorded.
	Description string
}

// Clone returns a deep copy of t.
func (t Transaction) Clone() Transaction {
	t.Beneficiaries = slices.Clone(t.Beneficiaries)
	t.Split = t.Split.Clone()
	return t
}
