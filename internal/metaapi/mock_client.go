package metaapi

import (
	"context"
	"encoding/json"
)

// MockGateway is a configurable in-memory Gateway for tests. Responses can
// be overridden per field; ErrorOnNext injects a one-shot error keyed by
// operation name.
type MockGateway struct {
	ProvisionResult *ProvisionResult
	TradeResult     *TradeResult
	Positions       json.RawMessage

	ErrorOnNext map[string]error

	CreateAccountCalls int
	ExecuteTradeCalls  int
	GetPositionsCalls  int

	LastProvisionRequest ProvisionRequest
	LastTradeRequest     TradeRequest
	LastAccountID        string
}

var _ Gateway = (*MockGateway)(nil)

func NewMockGateway() *MockGateway {
	return &MockGateway{
		ProvisionResult: &ProvisionResult{
			ID:     "mock-account",
			State:  "DEPLOYED",
			Region: "london",
		},
		TradeResult: &TradeResult{
			OrderID:     "mock-order",
			PositionID:  "mock-position",
			Message:     "done",
			StringCode:  "TRADE_RETCODE_DONE",
			NumericCode: 10009,
		},
		Positions:   json.RawMessage(`[]`),
		ErrorOnNext: map[string]error{},
	}
}

func (m *MockGateway) takeError(op string) error {
	if err, ok := m.ErrorOnNext[op]; ok {
		delete(m.ErrorOnNext, op)
		return err
	}
	return nil
}

func (m *MockGateway) CreateAccount(_ context.Context, req ProvisionRequest) (*ProvisionResult, error) {
	m.CreateAccountCalls++
	m.LastProvisionRequest = req
	if err := m.takeError("CreateAccount"); err != nil {
		return nil, err
	}
	out := *m.ProvisionResult
	return &out, nil
}

func (m *MockGateway) ExecuteTrade(_ context.Context, accountID string, req TradeRequest) (*TradeResult, error) {
	m.ExecuteTradeCalls++
	m.LastAccountID = accountID
	m.LastTradeRequest = req
	if err := m.takeError("ExecuteTrade"); err != nil {
		return nil, err
	}
	out := *m.TradeResult
	return &out, nil
}

func (m *MockGateway) GetPositions(_ context.Context, accountID string) (json.RawMessage, error) {
	m.GetPositionsCalls++
	m.LastAccountID = accountID
	if err := m.takeError("GetPositions"); err != nil {
		return nil, err
	}
	return m.Positions, nil
}
