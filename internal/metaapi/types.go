package metaapi

import (
	"fmt"
	"strings"
)

// ProvisionRequest is the payload for the MetaApi provisioning API.
type ProvisionRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Server   string `json:"server"`
	Platform string `json:"platform"`
	Magic    int    `json:"magic"`
	Type     string `json:"type"`
}

// ProvisionResult is the subset of the provisioning response we keep.
type ProvisionResult struct {
	ID     string `json:"id"`
	State  string `json:"state"`
	Region string `json:"region"`
}

// TradeRequest is the payload for the MetaApi trade endpoint.
type TradeRequest struct {
	Symbol     string  `json:"symbol"`
	Volume     float64 `json:"volume"`
	ActionType string  `json:"actionType"`
	Magic      int     `json:"magic"`
	Comment    string  `json:"comment"`
}

// TradeResult mirrors the MetaApi trade response.
type TradeResult struct {
	OrderID            string `json:"orderId,omitempty"`
	PositionID         string `json:"positionId,omitempty"`
	TradeStartTime     string `json:"tradeStartTime,omitempty"`
	TradeExecutionTime string `json:"tradeExecutionTime,omitempty"`
	Message            string `json:"message,omitempty"`
	StringCode         string `json:"stringCode,omitempty"`
	NumericCode        int    `json:"numericCode,omitempty"`
}

// Rejected reports whether the brokerage refused the trade. MetaApi marks
// refusals with an ERR_-prefixed string code.
func (r *TradeResult) Rejected() bool {
	return strings.HasPrefix(r.StringCode, "ERR_")
}

// Error reports a failed gateway call. StatusCode is the upstream HTTP
// status, 0 when the call failed before any response arrived.
type Error struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("metaapi %s: upstream status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("metaapi %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
