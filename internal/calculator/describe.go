package calculator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// DateFormat is the calendar date layout used in descriptions (dd/mm/yy).
const DateFormat = "02/01/06"

// Describe renders a one-line summary of tx. It is computed once when a
// transaction is recorded and stored with it. A shares split that does not
// validate is rendered with weights only.
//
//	equal:  "15/10/26 | Dinner: Alice paid 90 for Alice, Bob and Carol"
//	shares: "15/10/26 | Taxi: Alice paid 100 for Bob (25, 1 share) and Carol (75, 3 shares)"
//	exact:  "15/10/26 | Tickets: Alice paid 100 for Bob (30) and Carol (70)"
func Describe(tx models.Transaction) string {
	var parts []string
	switch tx.Split.Mode {
	case models.SplitShares:
		owed, err := Owed(tx)
		for _, b := range tx.Beneficiaries {
			weight := tx.Split.Shares[b]
			unit := "shares"
			if weight == 1 {
				unit = "share"
			}
			if err != nil {
				parts = append(parts, fmt.Sprintf("%s (%s %s)", b, FormatAmount(weight), unit))
				continue
			}
			parts = append(parts, fmt.Sprintf("%s (%s, %s %s)", b, FormatAmount(owed[b]), FormatAmount(weight), unit))
		}
	case models.SplitExact:
		for _, b := range tx.Beneficiaries {
			parts = append(parts, fmt.Sprintf("%s (%s)", b, FormatAmount(tx.Split.Exact[b])))
		}
	default:
		parts = tx.Beneficiaries
	}

	return fmt.Sprintf("%s | %s: %s paid %s for %s",
		tx.Date.Format(DateFormat), tx.Name, tx.Payer, FormatAmount(tx.Amount), joinNames(parts))
}

// FormatAmount renders an amount rounded to cents without trailing zeros.
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).Round(2).String()
}

// joinNames joins items as "a", "a and b" or "a, b and c".
func joinNames(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
