package server

import "time"

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Account is a provisioned MT5 trading account owned by a user. MT5ID is the
// id assigned by the brokerage; uniqueness of the underlying account is
// enforced upstream, not here.
type Account struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	MT5ID     string    `json:"mt5Id"`
	Login     string    `json:"login"`
	Server    string    `json:"server"`
	Name      string    `json:"name"`
	State     string    `json:"state"`
	Region    string    `json:"region"`
	CreatedAt time.Time `json:"createdAt"`
}

// Trade is an append-only record of an executed trade. Rows exist only for
// trades the brokerage accepted.
type Trade struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	AccountID          string    `json:"accountId"`
	Symbol             string    `json:"symbol"`
	Volume             float64   `json:"volume"`
	OrderID            string    `json:"orderId"`
	PositionID         string    `json:"positionId"`
	TradeStartTime     string    `json:"tradeStartTime,omitempty"`
	TradeExecutionTime string    `json:"tradeExecutionTime,omitempty"`
	Message            string    `json:"message"`
	StringCode         string    `json:"stringCode"`
	NumericCode        int       `json:"numericCode"`
	CreatedAt          time.Time `json:"createdAt"`
}
