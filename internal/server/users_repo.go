package server

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

func (s *Server) insertUser(ctx context.Context, u User) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO users (id,username,password_hash,created_at)
VALUES (?,?,?,?)
`, u.ID, u.Username, u.PasswordHash, u.CreatedAt.Format(time.RFC3339Nano))
	return err
}

func (s *Server) getUserByUsername(ctx context.Context, username string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id,username,password_hash,created_at
FROM users WHERE username=?
`, username)
	var u User
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	return &u, nil
}
