package models

// Settlement is a computed instruction for one person to pay another.
// Settlements are regenerated from balances on every query and never stored.
type Settlement struct {
	// Creditor is the person who receives the payment.
	Creditor string

	// Debtor is the person who pays.
	Debtor string

	// Payment is the amount to transfer. Always positive.
	Payment float64
}
