package calculator

import (
	"cmp"
	"math"
	"slices"

	"github.com/mmynk/splitledger/internal/models"
)

// Epsilon is the tolerance under which a balance counts as settled.
// Float amounts drift after repeated division, so exact zero checks are never used.
const Epsilon = 1e-9

// IsSettled reports whether a balance is zero within Epsilon.
func IsSettled(balance float64) bool {
	return math.Abs(balance) <= Epsilon
}

// Conserved reports whether the balances of people sum to zero. The tolerance
// scales with the magnitude of the balances involved.
func Conserved(people []models.Person) bool {
	var sum, magnitude float64
	for _, p := range people {
		sum += p.Balance
		magnitude += math.Abs(p.Balance)
	}
	return math.Abs(sum) <= Epsilon*math.Max(1, magnitude)
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// PlanSettlements computes payments that bring every balance to zero.
// The input is not modified.
//
// Algorithm (greedy largest-first matching):
//   - creditors sorted by balance descending, debtors ascending (most negative first)
//   - payment = min(creditor balance, -debtor balance)
//   - advance whichever side reached zero; both advance when both did
//
// The result is deterministic but not guaranteed to have the fewest possible
// payments for every distribution; that problem is NP-hard in general.
func PlanSettlements(people []models.Person) []models.Settlement {
	var creditors, debtors []models.Person
	for _, p := range people {
		switch {
		case IsSettled(p.Balance):
		case p.Balance > 0:
			creditors = append(creditors, p)
		default:
			debtors = append(debtors, p)
		}
	}

	slices.SortStableFunc(creditors, func(a, b models.Person) int {
		if c := cmp.Compare(b.Balance, a.Balance); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	slices.SortStableFunc(debtors, func(a, b models.Person) int {
		if c := cmp.Compare(a.Balance, b.Balance); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	var settlements []models.Settlement
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		payment := math.Min(creditors[i].Balance, -debtors[j].Balance)
		creditors[i].Balance -= payment
		debtors[j].Balance += payment

		settlements = append(settlements, models.Settlement{
			Creditor: creditors[i].Name,
			Debtor:   debtors[j].Name,
			Payment:  payment,
		})

		if IsSettled(creditors[i].Balance) {
			i++
		}
		if IsSettled(debtors[j].Balance) {
			j++
		}
	}

	return settlements
}

// FindSettlement returns the planned settlement where debtor pays creditor.
func FindSettlement(settlements []models.Settlement, debtor, creditor string) (models.Settlement, bool) {
	for _, s := range settlements {
		if s.Debtor == debtor && s.Creditor == creditor {
			return s, true
		}
	}
	return models.Settlement{}, false
}
