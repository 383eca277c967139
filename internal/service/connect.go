package service

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// LedgerServiceName is the fully-qualified name of the ledger service.
const LedgerServiceName = "splitledger.v1.LedgerService"

// Procedure paths served by NewLedgerServiceHandler.
const (
	RegisterPersonProcedure    = "/" + LedgerServiceName + "/RegisterPerson"
	RecordTransactionProcedure = "/" + LedgerServiceName + "/RecordTransaction"
	ListBalancesProcedure      = "/" + LedgerServiceName + "/ListBalances"
	ListHistoryProcedure       = "/" + LedgerServiceName + "/ListHistory"
	PlanSettlementsProcedure   = "/" + LedgerServiceName + "/PlanSettlements"
	SettleDebtProcedure        = "/" + LedgerServiceName + "/SettleDebt"
	GetOverviewProcedure       = "/" + LedgerServiceName + "/GetOverview"
)

// NewLedgerServiceHandler builds an HTTP handler serving every procedure of
// svc. It returns the path prefix to mount the handler on.
func NewLedgerServiceHandler(svc *LedgerService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(RegisterPersonProcedure, connect.NewUnaryHandler(RegisterPersonProcedure, svc.RegisterPerson, opts...))
	mux.Handle(RecordTransactionProcedure, connect.NewUnaryHandler(RecordTransactionProcedure, svc.RecordTransaction, opts...))
	mux.Handle(ListBalancesProcedure, connect.NewUnaryHandler(ListBalancesProcedure, svc.ListBalances, opts...))
	mux.Handle(ListHistoryProcedure, connect.NewUnaryHandler(ListHistoryProcedure, svc.ListHistory, opts...))
	mux.Handle(PlanSettlementsProcedure, connect.NewUnaryHandler(PlanSettlementsProcedure, svc.PlanSettlements, opts...))
	mux.Handle(SettleDebtProcedure, connect.NewUnaryHandler(SettleDebtProcedure, svc.SettleDebt, opts...))
	mux.Handle(GetOverviewProcedure, connect.NewUnaryHandler(GetOverviewProcedure, svc.GetOverview, opts...))

	return "/" + LedgerServiceName + "/", mux
}

// LedgerServiceClient calls a remote ledger service.
type LedgerServiceClient struct {
	registerPerson    *connect.Client[RegisterPersonRequest, RegisterPersonResponse]
	recordTransaction *connect.Client[RecordTransactionRequest, RecordTransactionResponse]
	listBalances      *connect.Client[ListBalancesRequest, ListBalancesResponse]
	listHistory       *connect.Client[ListHistoryRequest, ListHistoryResponse]
	planSettlements   *connect.Client[PlanSettlementsRequest, PlanSettlementsResponse]
	settleDebt        *connect.Client[SettleDebtRequest, SettleDebtResponse]
	getOverview       *connect.Client[GetOverviewRequest, GetOverviewResponse]
}

// NewLedgerServiceClient creates a client for the service at baseURL
// (e.g. http://localhost:8080).
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)

	return &LedgerServiceClient{
		registerPerson: connect.NewClient[RegisterPersonRequest, RegisterPersonResponse](
			httpClient, baseURL+RegisterPersonProcedure, opts...),
		recordTransaction: connect.NewClient[RecordTransactionRequest, RecordTransactionResponse](
			httpClient, baseURL+RecordTransactionProcedure, opts...),
		listBalances: connect.NewClient[ListBalancesRequest, ListBalancesResponse](
			httpClient, baseURL+ListBalancesProcedure, opts...),
		listHistory: connect.NewClient[ListHistoryRequest, ListHistoryResponse](
			httpClient, baseURL+ListHistoryProcedure, opts...),
		planSettlements: connect.NewClient[PlanSettlementsRequest, PlanSettlementsResponse](
			httpClient, baseURL+PlanSettlementsProcedure, opts...),
		settleDebt: connect.NewClient[SettleDebtRequest, SettleDebtResponse](
			httpClient, baseURL+SettleDebtProcedure, opts...),
		getOverview: connect.NewClient[GetOverviewRequest, GetOverviewResponse](
			httpClient, baseURL+GetOverviewProcedure, opts...),
	}
}

func (c *LedgerServiceClient) RegisterPerson(ctx context.Context, req *connect.Request[RegisterPersonRequest]) (*connect.Response[RegisterPersonResponse], error) {
	return c.registerPerson.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) RecordTransaction(ctx context.Context, req *connect.Request[RecordTransactionRequest]) (*connect.Response[RecordTransactionResponse], error) {
	return c.recordTransaction.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListBalances(ctx context.Context, req *connect.Request[ListBalancesRequest]) (*connect.Response[ListBalancesResponse], error) {
	return c.listBalances.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListHistory(ctx context.Context, req *connect.Request[ListHistoryRequest]) (*connect.Response[ListHistoryResponse], error) {
	return c.listHistory.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) PlanSettlements(ctx context.Context, req *connect.Request[PlanSettlementsRequest]) (*connect.Response[PlanSettlementsResponse], error) {
	return c.planSettlements.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) SettleDebt(ctx context.Context, req *connect.Request[SettleDebtRequest]) (*connect.Response[SettleDebtResponse], error) {
	return c.settleDebt.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetOverview(ctx context.Context, req *connect.Request[GetOverviewRequest]) (*connect.Response[GetOverviewResponse], error) {
	return c.getOverview.CallUnary(ctx, req)
}
