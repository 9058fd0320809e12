package metaapi

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const (
	defaultProvisioningURL = "https://mt-provisioning-api-v1.agiliumtrade.agiliumtrade.ai"
	defaultTradingURL      = "https://mt-client-api-v1.london.agiliumtrade.ai"
	defaultTimeout         = 30 * time.Second
)

// Gateway is the sole point of contact with the MetaApi HTTP API. It is an
// interface so tests can swap in a double.
type Gateway interface {
	CreateAccount(ctx context.Context, req ProvisionRequest) (*ProvisionResult, error)
	ExecuteTrade(ctx context.Context, accountID string, req TradeRequest) (*TradeResult, error)
	GetPositions(ctx context.Context, accountID string) (json.RawMessage, error)
}

// Config carries the gateway settings, read once at startup.
type Config struct {
	AuthToken       string
	ProvisioningURL string
	TradingURL      string
	Timeout         time.Duration
}

// Client talks to the MetaApi provisioning and trading APIs. Every call is a
// single best-effort request: no retries, no backoff.
type Client struct {
	provisioning *resty.Client
	trading      *resty.Client
}

var _ Gateway = (*Client)(nil)

func NewClient(cfg Config) *Client {
	if cfg.ProvisioningURL == "" {
		cfg.ProvisioningURL = defaultProvisioningURL
	}
	if cfg.TradingURL == "" {
		cfg.TradingURL = defaultTradingURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	newBase := func(baseURL string) *resty.Client {
		return resty.New().
			SetBaseURL(baseURL).
			SetTimeout(cfg.Timeout).
			SetHeader("Accept", "application/json").
			SetHeader("auth-token", cfg.AuthToken)
	}

	return &Client{
		provisioning: newBase(cfg.ProvisioningURL),
		trading:      newBase(cfg.TradingURL),
	}
}

func (c *Client) CreateAccount(ctx context.Context, req ProvisionRequest) (*ProvisionResult, error) {
	var out ProvisionResult
	resp, err := c.provisioning.R().
		SetContext(ctx).
		SetHeader("transaction-id", transactionID()).
		SetBody(req).
		SetResult(&out).
		Post("/users/current/accounts")
	if err := callError("create account", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ExecuteTrade(ctx context.Context, accountID string, req TradeRequest) (*TradeResult, error) {
	var out TradeResult
	resp, err := c.trading.R().
		SetContext(ctx).
		SetPathParam("accountID", accountID).
		SetBody(req).
		SetResult(&out).
		Post("/users/current/accounts/{accountID}/trade")
	if err := callError("execute trade", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetPositions(ctx context.Context, accountID string) (json.RawMessage, error) {
	resp, err := c.trading.R().
		SetContext(ctx).
		SetPathParam("accountID", accountID).
		Get("/users/current/accounts/{accountID}/positions")
	if err := callError("get positions", resp, err); err != nil {
		return nil, err
	}
	return json.RawMessage(resp.Body()), nil
}

// transactionID returns a fresh 128-bit hex id. Provisioning calls carry one
// so MetaApi can dedupe; collisions are not otherwise guarded against.
func transactionID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func callError(op string, resp *resty.Response, err error) error {
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	if resp.IsError() {
		return &Error{
			Op:         op,
			StatusCode: resp.StatusCode(),
			Err:        errors.Errorf("non-2xx response: %s", resp.Status()),
		}
	}
	return nil
}
