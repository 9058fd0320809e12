package server

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

func (s *Server) insertAccount(ctx context.Context, a Account) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO accounts (id,user_id,mt5_id,login,server,name,state,region,created_at)
VALUES (?,?,?,?,?,?,?,?,?)
`, a.ID, a.UserID, a.MT5ID, a.Login, a.Server, a.Name, a.State, a.Region, a.CreatedAt.Format(time.RFC3339Nano))
	return err
}

// getAccountByMT5ID looks up an account by its brokerage-assigned id, scoped
// to the owning user. Accounts owned by someone else read as absent.
func (s *Server) getAccountByMT5ID(ctx context.Context, userID, mt5ID string) (*Account, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id,user_id,mt5_id,login,server,name,state,region,created_at
FROM accounts WHERE user_id=? AND mt5_id=?
`, userID, mt5ID)
	var a Account
	var created string
	if err := row.Scan(&a.ID, &a.UserID, &a.MT5ID, &a.Login, &a.Server, &a.Name, &a.State, &a.Region, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	return &a, nil
}

func (s *Server) listAccounts(ctx context.Context, userID string) ([]Account, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id,user_id,mt5_id,login,server,name,state,region,created_at
FROM accounts WHERE user_id=? ORDER BY created_at DESC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		var a Account
		var created string
		if err := rows.Scan(&a.ID, &a.UserID, &a.MT5ID, &a.Login, &a.Server, &a.Name, &a.State, &a.Region, &created); err != nil {
			return nil, err
		}
		a.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, a)
	}
	return out, rows.Err()
}
