package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
)

// Ledger is the subset of *ledger.Ledger the service needs.
type Ledger interface {
	RegisterPerson(ctx context.Context, name string) (models.Person, error)
	RecordTransaction(ctx context.Context, in ledger.TransactionInput) (models.Transaction, error)
	SettleDebt(ctx context.Context, debtor, creditor string) (models.Transaction, error)
	Balances() []models.Person
	History() []models.Transaction
	Settlements() []models.Settlement
	Snapshot() *models.Snapshot
}

var _ Ledger = (*ledger.Ledger)(nil)

// LedgerService serves the ledger over Connect.
type LedgerService struct {
	ledger Ledger
}

// NewLedgerService creates a new LedgerService on top of l.
func NewLedgerService(l Ledger) *LedgerService {
	return &LedgerService{ledger: l}
}

// RegisterPerson adds a person to the roster.
func (s *LedgerService) RegisterPerson(ctx context.Context, req *connect.Request[RegisterPersonRequest]) (*connect.Response[RegisterPersonResponse], error) {
	slog.Info("RegisterPerson request received", "name", req.Msg.Name)

	person, err := s.ledger.RegisterPerson(ctx, req.Msg.Name)
	if err != nil {
		slog.Error("RegisterPerson failed", "name", req.Msg.Name, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Person registered", "name", person.Name)

	return connect.NewResponse(&RegisterPersonResponse{Person: toPerson(person)}), nil
}

// RecordTransaction records an expense and returns it with its description.
func (s *LedgerService) RecordTransaction(ctx context.Context, req *connect.Request[RecordTransactionRequest]) (*connect.Response[RecordTransactionResponse], error) {
	msg := req.Msg
	slog.Info("RecordTransaction request received",
		"name", msg.Name,
		"payer", msg.Payer,
		"amount", msg.Amount,
		"beneficiaries", msg.Beneficiaries,
		"split_mode", msg.SplitMode,
	)

	mode := models.SplitMode(msg.SplitMode)
	if mode == "" {
		mode = models.SplitEqual
	}

	tx, err := s.ledger.RecordTransaction(ctx, ledger.TransactionInput{
		Name:          msg.Name,
		Payer:         msg.Payer,
		Amount:        msg.Amount,
		Beneficiaries: msg.Beneficiaries,
		Split: models.Split{
			Mode:   mode,
			Shares: msg.Shares,
			Exact:  msg.Exact,
		},
	})
	if err != nil {
		slog.Error("RecordTransaction failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Transaction recorded", "transaction_id", tx.ID, "amount", tx.Amount)

	return connect.NewResponse(&RecordTransactionResponse{Transaction: toTransaction(tx)}), nil
}

// ListBalances returns every person with their current balance.
func (s *LedgerService) ListBalances(ctx context.Context, req *connect.Request[ListBalancesRequest]) (*connect.Response[ListBalancesResponse], error) {
	people := s.ledger.Balances()
	slog.Debug("ListBalances successful", "count", len(people))
	return connect.NewResponse(&ListBalancesResponse{People: toPeople(people)}), nil
}

// ListHistory returns transactions, newest first.
func (s *LedgerService) ListHistory(ctx context.Context, req *connect.Request[ListHistoryRequest]) (*connect.Response[ListHistoryResponse], error) {
	history := s.ledger.History()
	slog.Debug("ListHistory successful", "count", len(history))
	return connect.NewResponse(&ListHistoryResponse{Transactions: toTransactions(history)}), nil
}

// PlanSettlements returns the payments that would settle all balances.
func (s *LedgerService) PlanSettlements(ctx context.Context, req *connect.Request[PlanSettlementsRequest]) (*connect.Response[PlanSettlementsResponse], error) {
	settlements := s.ledger.Settlements()
	slog.Debug("PlanSettlements successful", "count", len(settlements))
	return connect.NewResponse(&PlanSettlementsResponse{Settlements: toSettlements(settlements)}), nil
}

// SettleDebt records the planned payment from debtor to creditor.
func (s *LedgerService) SettleDebt(ctx context.Context, req *connect.Request[SettleDebtRequest]) (*connect.Response[SettleDebtResponse], error) {
	slog.Info("SettleDebt request received", "debtor", req.Msg.Debtor, "creditor", req.Msg.Creditor)

	tx, err := s.ledger.SettleDebt(ctx, req.Msg.Debtor, req.Msg.Creditor)
	if err != nil {
		slog.Error("SettleDebt failed", "debtor", req.Msg.Debtor, "creditor", req.Msg.Creditor, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Debt settled", "transaction_id", tx.ID, "amount", tx.Amount)

	return connect.NewResponse(&SettleDebtResponse{Transaction: toTransaction(tx)}), nil
}

// GetOverview returns balances, history and planned settlements together.
func (s *LedgerService) GetOverview(ctx context.Context, req *connect.Request[GetOverviewRequest]) (*connect.Response[GetOverviewResponse], error) {
	snap := s.ledger.Snapshot()
	settlements := calculator.PlanSettlements(snap.People)

	return connect.NewResponse(&GetOverviewResponse{
		People:       toPeople(snap.People),
		Transactions: toTransactions(snap.Transactions),
		Settlements:  toSettlements(settlements),
	}), nil
}

// toConnectError maps ledger errors onto Connect status codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrInvalidName), errors.Is(err, ledger.ErrInvalidSplit):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ledger.ErrUnknownPerson), errors.Is(err, ledger.ErrNoSettlement):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ledger.ErrDuplicateName):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, ledger.ErrClosed):
		return connect.NewError(connect.CodeUnavailable, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
