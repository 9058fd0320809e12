package metaapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexID = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestCreateAccountSendsProvisioningHeaders(t *testing.T) {
	var gotPath, gotAuth, gotTxID string
	var gotBody ProvisionRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("auth-token")
		gotTxID = r.Header.Get("transaction-id")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"A1","state":"DEPLOYED","region":"london"}`))
	}))
	defer ts.Close()

	client := NewClient(Config{AuthToken: "secret-token", ProvisioningURL: ts.URL})

	result, err := client.CreateAccount(context.Background(), ProvisionRequest{
		Login:    "10001",
		Password: "pass",
		Name:     "Main",
		Server:   "Demo",
		Platform: "mt5",
		Magic:    123456,
		Type:     "cloud-g2",
	})
	require.NoError(t, err)

	assert.Equal(t, "/users/current/accounts", gotPath)
	assert.Equal(t, "secret-token", gotAuth)
	assert.Regexp(t, hexID, gotTxID, "transaction id must be 128-bit hex")
	assert.Equal(t, "mt5", gotBody.Platform)
	assert.Equal(t, "cloud-g2", gotBody.Type)

	assert.Equal(t, "A1", result.ID)
	assert.Equal(t, "DEPLOYED", result.State)
	assert.Equal(t, "london", result.Region)
}

func TestCreateAccountFreshTransactionIDPerCall(t *testing.T) {
	var ids []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get("transaction-id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"A1"}`))
	}))
	defer ts.Close()

	client := NewClient(Config{AuthToken: "t", ProvisioningURL: ts.URL})
	for i := 0; i < 2; i++ {
		_, err := client.CreateAccount(context.Background(), ProvisionRequest{})
		require.NoError(t, err)
	}
	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
}

func TestCreateAccountUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "login already provisioned", http.StatusConflict)
	}))
	defer ts.Close()

	client := NewClient(Config{AuthToken: "t", ProvisioningURL: ts.URL})

	_, err := client.CreateAccount(context.Background(), ProvisionRequest{})
	require.Error(t, err)

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, http.StatusConflict, gerr.StatusCode)
}

func TestExecuteTradePathAndBody(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody TradeRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("auth-token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"orderId":"O1","stringCode":"TRADE_RETCODE_DONE","numericCode":10009}`))
	}))
	defer ts.Close()

	client := NewClient(Config{AuthToken: "secret-token", TradingURL: ts.URL})

	result, err := client.ExecuteTrade(context.Background(), "acc-1", TradeRequest{
		Symbol:     "EURUSD",
		Volume:     0.1,
		ActionType: "ORDER_TYPE_BUY",
		Magic:      123456,
		Comment:    "Trade via API",
	})
	require.NoError(t, err)

	assert.Equal(t, "/users/current/accounts/acc-1/trade", gotPath)
	assert.Equal(t, "secret-token", gotAuth)
	assert.Equal(t, "EURUSD", gotBody.Symbol)
	assert.Equal(t, "Trade via API", gotBody.Comment)

	assert.Equal(t, "O1", result.OrderID)
	assert.False(t, result.Rejected())
}

func TestGetPositionsRelaysBody(t *testing.T) {
	const body = `[{"symbol":"EURUSD","volume":0.1}]`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/current/accounts/acc-1/positions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer ts.Close()

	client := NewClient(Config{AuthToken: "t", TradingURL: ts.URL})

	positions, err := client.GetPositions(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.JSONEq(t, body, string(positions))
}

func TestGetPositionsTransportError(t *testing.T) {
	client := NewClient(Config{AuthToken: "t", TradingURL: "http://127.0.0.1:1"})

	_, err := client.GetPositions(context.Background(), "acc-1")
	require.Error(t, err)

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Zero(t, gerr.StatusCode)
}

func TestTradeResultRejected(t *testing.T) {
	assert.True(t, (&TradeResult{StringCode: "ERR_TIMEOUT"}).Rejected())
	assert.False(t, (&TradeResult{StringCode: "TRADE_RETCODE_DONE"}).Rejected())
	assert.False(t, (&TradeResult{}).Rejected())
}
