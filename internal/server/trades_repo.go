package server

import (
	"context"
	"time"
)

func (s *Server) insertTrade(ctx context.Context, t Trade) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO trades (id,user_id,account_id,symbol,volume,order_id,position_id,
  trade_start_time,trade_execution_time,message,string_code,numeric_code,created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
`, t.ID, t.UserID, t.AccountID, t.Symbol, t.Volume, t.OrderID, t.PositionID,
		t.TradeStartTime, t.TradeExecutionTime, t.Message, t.StringCode, t.NumericCode,
		t.CreatedAt.Format(time.RFC3339Nano))
	return err
}

func (s *Server) listTrades(ctx context.Context, userID string) ([]Trade, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id,user_id,account_id,symbol,volume,order_id,position_id,
  trade_start_time,trade_execution_time,message,string_code,numeric_code,created_at
FROM trades WHERE user_id=? ORDER BY created_at DESC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trade
	for rows.Next() {
		var t Trade
		var created string
		if err := rows.Scan(&t.ID, &t.UserID, &t.AccountID, &t.Symbol, &t.Volume, &t.OrderID, &t.PositionID,
			&t.TradeStartTime, &t.TradeExecutionTime, &t.Message, &t.StringCode, &t.NumericCode, &created); err != nil {
			return nil, err
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, t)
	}
	return out, rows.Err()
}
