package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/mmynk/splitledger/internal/models"
)

// ErrInvalidSplit reports split data that is missing, malformed, or
// inconsistent with the transaction's beneficiaries.
var ErrInvalidSplit = errors.New("invalid split")

// NormalizeAmount returns tx with its amount derived from the split where the
// mode requires it. For SplitExact the amount becomes the sum of the exact
// amounts, overriding whatever the caller supplied.
func NormalizeAmount(tx models.Transaction) models.Transaction {
	if tx.Split.Mode == models.SplitExact {
		var total float64
		for _, amount := range tx.Split.Exact {
			total += amount
		}
		tx.Amount = total
	}
	return tx
}

// Owed computes how much each beneficiary of tx owes.
// The amount is expected to be normalized already (see NormalizeAmount).
//
// Algorithm:
//   - equal:  owe = amount / len(beneficiaries)
//   - shares: owe = amount / sum(shares) × shares[beneficiary]
//   - exact:  owe = exact[beneficiary]
func Owed(tx models.Transaction) (map[string]float64, error) {
	if len(tx.Beneficiaries) == 0 {
		return nil, fmt.Errorf("%w: must have at least one beneficiary", ErrInvalidSplit)
	}
	seen := make(map[string]bool, len(tx.Beneficiaries))
	for _, b := range tx.Beneficiaries {
		if seen[b] {
			return nil, fmt.Errorf("%w: beneficiary %q listed more than once", ErrInvalidSplit, b)
		}
		seen[b] = true
	}

	switch tx.Split.Mode {
	case models.SplitEqual:
		if len(tx.Split.Shares) > 0 || len(tx.Split.Exact) > 0 {
			return nil, fmt.Errorf("%w: equal split takes no shares or exact amounts", ErrInvalidSplit)
		}
		if err := checkAmount(tx.Amount); err != nil {
			return nil, err
		}
		owe := tx.Amount / float64(len(tx.Beneficiaries))
		owed := make(map[string]float64, len(tx.Beneficiaries))
		for _, b := range tx.Beneficiaries {
			owed[b] = owe
		}
		return owed, nil

	case models.SplitShares:
		if len(tx.Split.Exact) > 0 {
			return nil, fmt.Errorf("%w: shares split takes no exact amounts", ErrInvalidSplit)
		}
		if err := checkAmount(tx.Amount); err != nil {
			return nil, err
		}
		if err := checkKeys(tx.Split.Shares, seen, "shares"); err != nil {
			return nil, err
		}
		var totalShares float64
		for _, b := range tx.Beneficiaries {
			weight := tx.Split.Shares[b]
			if !(weight > 0) || math.IsInf(weight, 0) {
				return nil, fmt.Errorf("%w: share for %q must be positive, got %v", ErrInvalidSplit, b, weight)
			}
			totalShares += weight
		}
		if math.IsInf(totalShares, 0) {
			return nil, fmt.Errorf("%w: shares overflow when summed", ErrInvalidSplit)
		}
		owePerShare := tx.Amount / totalShares
		owed := make(map[string]float64, len(tx.Beneficiaries))
		for _, b := range tx.Beneficiaries {
			owed[b] = owePerShare * tx.Split.Shares[b]
		}
		return owed, nil

	case models.SplitExact:
		if len(tx.Split.Shares) > 0 {
			return nil, fmt.Errorf("%w: exact split takes no shares", ErrInvalidSplit)
		}
		if err := checkKeys(tx.Split.Exact, seen, "exact amounts"); err != nil {
			return nil, err
		}
		var total float64
		owed := make(map[string]float64, len(tx.Beneficiaries))
		for _, b := range tx.Beneficiaries {
			amount := tx.Split.Exact[b]
			if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
				return nil, fmt.Errorf("%w: exact amount for %q must be non-negative, got %v", ErrInvalidSplit, b, amount)
			}
			owed[b] = amount
			total += amount
		}
		if total <= 0 {
			return nil, fmt.Errorf("%w: exact amounts must sum to a positive total", ErrInvalidSplit)
		}
		if !nearlyEqual(total, tx.Amount) {
			return nil, fmt.Errorf("%w: exact amounts sum to %v, transaction amount is %v", ErrInvalidSplit, total, tx.Amount)
		}
		return owed, nil

	default:
		return nil, fmt.Errorf("%w: unknown split mode %q", ErrInvalidSplit, tx.Split.Mode)
	}
}

// ApplyDelta returns a copy of people with tx applied: the payer receives
// the full amount and every beneficiary is debited their share. When the
// payer is also a beneficiary both adjustments land on the same person.
func ApplyDelta(people []models.Person, tx models.Transaction) ([]models.Person, error) {
	owed, err := Owed(tx)
	if err != nil {
		return nil, err
	}

	updated := make([]models.Person, len(people))
	copy(updated, people)
	for i := range updated {
		p := &updated[i]
		if p.Name == tx.Payer {
			p.Balance += tx.Amount
		}
		if owe, ok := owed[p.Name]; ok {
			p.Balance -= owe
		}
	}
	return updated, nil
}

// checkAmount rejects amounts that cannot be split.
func checkAmount(amount float64) error {
	if !(amount > 0) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: amount must be a positive number, got %v", ErrInvalidSplit, amount)
	}
	return nil
}

// checkKeys verifies that m has an entry for every beneficiary and no others.
func checkKeys(m map[string]float64, beneficiaries map[string]bool, what string) error {
	if len(m) == 0 {
		return fmt.Errorf("%w: %s are required", ErrInvalidSplit, what)
	}
	for name := range m {
		if !beneficiaries[name] {
			return fmt.Errorf("%w: %s given for %q who is not a beneficiary", ErrInvalidSplit, what, name)
		}
	}
	for name := range beneficiaries {
		if _, ok := m[name]; !ok {
			return fmt.Errorf("%w: %s missing for %q", ErrInvalidSplit, what, name)
		}
	}
	return nil
}
