package service

import (
	"time"

	"github.com/mmynk/splitledger/internal/models"
)

// Person is the wire form of models.Person.
type Person struct {
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// Transaction is the wire form of models.Transaction.
type Transaction struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Payer         string             `json:"payer"`
	Beneficiaries []string           `json:"beneficiaries"`
	Amount        float64            `json:"amount"`
	SplitMode     string             `json:"split_mode"`
	Shares        map[string]float64 `json:"shares,omitempty"`
	Exact         map[string]float64 `json:"exact,omitempty"`
	Date          time.Time          `json:"date"`
	Description   string             `json:"description"`
}

// Settlement is the wire form of models.Settlement.
type Settlement struct {
	Creditor string  `json:"creditor"`
	Debtor   string  `json:"debtor"`
	Payment  float64 `json:"payment"`
}

type RegisterPersonRequest struct {
	Name string `json:"name"`
}

type RegisterPersonResponse struct {
	Person Person `json:"person"`
}

// RecordTransactionRequest carries already-parsed form values.
// SplitMode defaults to "equal" when empty; Amount is ignored for "exact".
type RecordTransactionRequest struct {
	Name          string             `json:"name"`
	Payer         string             `json:"payer"`
	Amount        float64            `json:"amount"`
	Beneficiaries []string           `json:"beneficiaries"`
	SplitMode     string             `json:"split_mode"`
	Shares        map[string]float64 `json:"shares,omitempty"`
	Exact         map[string]float64 `json:"exact,omitempty"`
}

type RecordTransactionResponse struct {
	Transaction Transaction `json:"transaction"`
}

type ListBalancesRequest struct{}

type ListBalancesResponse struct {
	People []Person `json:"people"`
}

type ListHistoryRequest struct{}

type ListHistoryResponse struct {
	Transactions []Transaction `json:"transactions"`
}

type PlanSettlementsRequest struct{}

type PlanSettlementsResponse struct {
	Settlements []Settlement `json:"settlements"`
}

type SettleDebtRequest struct {
	Debtor   string `json:"debtor"`
	Creditor string `json:"creditor"`
}

type SettleDebtResponse struct {
	Transaction Transaction `json:"transaction"`
}

type GetOverviewRequest struct{}

// GetOverviewResponse holds everything the front page shows.
type GetOverviewResponse struct {
	People       []Person      `json:"people"`
	Transactions []Transaction `json:"transactions"`
	Settlements  []Settlement  `json:"settlements"`
}

func toPerson(p models.Person) Person {
	return Person{Name: p.Name, Balance: p.Balance}
}

func toPeople(people []models.Person) []Person {
	out := make([]Person, len(people))
	for i, p := range people {
		out[i] = toPerson(p)
	}
	return out
}

func toTransaction(tx models.Transaction) Transaction {
	return Transaction{
		ID:            tx.ID,
		Name:          tx.Name,
		Payer:         tx.Payer,
		Beneficiaries: tx.Beneficiaries,
		Amount:        tx.Amount,
		SplitMode:     string(tx.Split.Mode),
		Shares:        tx.Split.Shares,
		Exact:         tx.Split.Exact,
		Date:          tx.Date,
		Description:   tx.Description,
	}
}

func toTransactions(history []models.Transaction) []Transaction {
	out := make([]Transaction, len(history))
	for i, tx := range history {
		out[i] = toTransaction(tx)
	}
	return out
}

func toSettlements(settlements []models.Settlement) []Settlement {
	out := make([]Settlement, len(settlements))
	for i, s := range settlements {
		out[i] = Settlement{Creditor: s.Creditor, Debtor: s.Debtor, Payment: s.Payment}
	}
	return out
}
