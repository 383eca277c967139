package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
)

func roster(names ...string) []models.Person {
	people := make([]models.Person, len(names))
	for i, n := range names {
		people[i] = models.Person{Name: n}
	}
	return people
}

func balanceOf(t *testing.T, people []models.Person, name string) float64 {
	t.Helper()
	for _, p := range people {
		if p.Name == name {
			return p.Balance
		}
	}
	t.Fatalf("no person named %s", name)
	return 0
}

func TestApplyDelta(t *testing.T) {
	tests := []struct {
		name string
		tx   models.Transaction
		want map[string]float64
	}{
		{
			name: "equal split including payer",
			tx: models.Transaction{
				Payer:         "A",
				Amount:        90,
				Beneficiaries: []string{"A", "B", "C"},
				Split:         models.Split{Mode: models.SplitEqual},
			},
			want: map[string]float64{"A": 60, "B": -30, "C": -30},
		},
		{
			name: "equal split excluding payer",
			tx: models.Transaction{
				Payer:         "A",
				Amount:        50,
				Beneficiaries: []string{"B", "C"},
				Split:         models.Split{Mode: models.SplitEqual},
			},
			want: map[string]float64{"A": 50, "B": -25, "C": -25},
		},
		{
			name: "shares split",
			tx: models.Transaction{
				Payer:         "A",
				Amount:        100,
				Beneficiaries: []string{"B", "C"},
				Split:         models.Split{Mode: models.SplitShares, Shares: map[string]float64{"B": 1, "C": 3}},
			},
			want: map[string]float64{"A": 100, "B": -25, "C": -75},
		},
		{
			name: "fractional shares",
			tx: models.Transaction{
				Payer:         "B",
				Amount:        30,
				Beneficiaries: []string{"A", "B"},
				Split:         models.Split{Mode: models.SplitShares, Shares: map[string]float64{"A": 0.5, "B": 1}},
			},
			want: map[string]float64{"A": -10, "B": 10, "C": 0},
		},
		{
			name: "exact split",
			tx: NormalizeAmount(models.Transaction{
				Payer:         "A",
				Amount:        12345,
				Beneficiaries: []string{"B", "C"},
				Split:         models.Split{Mode: models.SplitExact, Exact: map[string]float64{"B": 30, "C": 70}},
			}),
			want: map[string]float64{"A": 100, "B": -30, "C": -70},
		},
		{
			name: "exact split with zero share",
			tx: NormalizeAmount(models.Transaction{
				Payer:         "C",
				Beneficiaries: []string{"A", "B"},
				Split:         models.Split{Mode: models.SplitExact, Exact: map[string]float64{"A": 0, "B": 12.5}},
			}),
			want: map[string]float64{"A": 0, "B": -12.5, "C": 12.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			people := roster("A", "B", "C")
			updated, err := ApplyDelta(people, tt.tx)
			require.NoError(t, err)

			for name, want := range tt.want {
				assert.InDelta(t, want, balanceOf(t, updated, name), 1e-9, "balance of %s", name)
			}
			assert.True(t, Conserved(updated), "balances must sum to zero")

			for _, p := range people {
				assert.Zero(t, p.Balance, "input roster must not be modified")
			}
		})
	}
}

func TestNormalizeAmount(t *testing.T) {
	tx := models.Transaction{
		Amount: 1,
		Split:  models.Split{Mode: models.SplitExact, Exact: map[string]float64{"B": 30, "C": 70}},
	}
	assert.Equal(t, 100.0, NormalizeAmount(tx).Amount)

	tx.Split = models.Split{Mode: models.SplitEqual}
	assert.Equal(t, 1.0, NormalizeAmount(tx).Amount, "non-exact amounts are left alone")
}

func TestOwedRejectsInvalidSplits(t *testing.T) {
	tests := []struct {
		name string
		tx   models.Transaction
	}{
		{
			name: "no beneficiaries",
			tx:   models.Transaction{Amount: 10, Split: models.Split{Mode: models.SplitEqual}},
		},
		{
			name: "duplicate beneficiary",
			tx: models.Transaction{Amount: 10, Beneficiaries: []string{"A", "A"},
				Split: models.Split{Mode: models.SplitEqual}},
		},
		{
			name: "zero amount",
			tx: models.Transaction{Amount: 0, Beneficiaries: []string{"A"},
				Split: models.Split{Mode: models.SplitEqual}},
		},
		{
			name: "negative amount",
			tx: models.Transaction{Amount: -5, Beneficiaries: []string{"A"},
				Split: models.Split{Mode: models.SplitEqual}},
		},
		{
			name: "equal with shares",
			tx: models.Transaction{Amount: 10, Beneficiaries: []string{"A"},
				Split: models.Split{Mode: models.SplitEqual, Shares: map[string]float64{"A": 1}}},
		},
		{
			name: "shares missing",
			tx: models.Transaction{Amount: 10, Beneficiaries: []string{"A", "B"},
				Split: models.Split{Mode: models.SplitShares}},
		},
		{
			name: "shares missing a beneficiary",
			tx: models.Transaction{Amount: 10, Beneficiaries: []string{"A", "B"},
				Split: models.Split{Mode: models.SplitShares, Shares: map[string]float64{"A": 1}}},
		},
		{
			name: "shares for a non-beneficiary",
			tx: models.Transaction{Amount: 10, Beneficiaries: []string{"A"},
				Split: models.Split{Mode: models.SplitShares, Shares: map[string]float64{"A": 1, "Z": 1}}},
		},
		{
			name: "zero share",
			tx: models.Transaction{Amount: 10, Beneficiaries: []string{"A", "B"},
				Split: models.Split{Mode: models.SplitShares, Shares: map[string]float64{"A": 1, "B": 0}}},
		},
		{
			name: "shares sum overflows",
			tx: models.Transaction{Amount: 100, Beneficiaries: []string{"A", "B"},
				Split: models.Split{Mode: models.SplitShares, Shares: map[string]float64{"A": 1e308, "B": 1e308}}},
		},
		{
			name: "exact missing",
			tx: models.Transaction{Beneficiaries: []string{"A"},
				Split: models.Split{Mode: models.SplitExact}},
		},
		{
			name: "exact negative",
			tx: NormalizeAmount(models.Transaction{Beneficiaries: []string{"A", "B"},
				Split: models.Split{Mode: models.SplitExact, Exact: map[string]float64{"A": 20, "B": -5}}}),
		},
		{
			name: "exact all zero",
			tx: NormalizeAmount(models.Transaction{Beneficiaries: []string{"A"},
				Split: models.Split{Mode: models.SplitExact, Exact: map[string]float64{"A": 0}}}),
		},
		{
			name: "exact not normalized",
			tx: models.Transaction{Amount: 5, Beneficiaries: []string{"A"},
				Split: models.Split{Mode: models.SplitExact, Exact: map[string]float64{"A": 10}}},
		},
		{
			name: "unknown mode",
			tx: models.Transaction{Amount: 5, Beneficiaries: []string{"A"},
				Split: models.Split{Mode: "percent"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Owed(tt.tx)
			require.ErrorIs(t, err, ErrInvalidSplit)

			_, err = ApplyDelta(roster("A", "B"), tt.tx)
			require.ErrorIs(t, err, ErrInvalidSplit)
		})
	}
}

func TestConservationAcrossManyTransactions(t *testing.T) {
	people := roster("A", "B", "C", "D", "E", "F", "G")
	names := []string{"A", "B", "C", "D", "E", "F", "G"}

	for i := 0; i < 500; i++ {
		payer := names[i%len(names)]
		beneficiaries := names[:1+(i*3)%len(names)]

		var tx models.Transaction
		switch i % 3 {
		case 0:
			tx = models.Transaction{Payer: payer, Amount: float64(i%97) + 0.01, Beneficiaries: beneficiaries,
				Split: models.Split{Mode: models.SplitEqual}}
		case 1:
			shares := make(map[string]float64, len(beneficiaries))
			for k, b := range beneficiaries {
				shares[b] = float64(k%4) + 0.5
			}
			tx = models.Transaction{Payer: payer, Amount: float64(i) / 7, Beneficiaries: beneficiaries,
				Split: models.Split{Mode: models.SplitShares, Shares: shares}}
		default:
			exact := make(map[string]float64, len(beneficiaries))
			for k, b := range beneficiaries {
				exact[b] = float64(k+1) / 3
			}
			tx = NormalizeAmount(models.Transaction{Payer: payer, Beneficiaries: beneficiaries,
				Split: models.Split{Mode: models.SplitExact, Exact: exact}})
		}

		var err error
		people, err = ApplyDelta(people, tx)
		require.NoError(t, err, "transaction %d", i)
		require.True(t, Conserved(people), "conservation broken after transaction %d", i)
	}
}
