package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"shareit-backend/internal/platform/apperr"
	"shareit-backend/internal/platform/db"
)

type Store struct {
	conn *sqlx.DB
}

func NewStore(conn *sqlx.DB) *Store { return &Store{conn: conn} }

func (s *Store) Insert(ctx context.Context, u *User) error {
	res, err := s.conn.ExecContext(ctx, `INSERT INTO users (name, email) VALUES (?, ?)`, u.Name, u.Email)
	if err != nil {
		if db.IsDuplicate(err) {
			return apperr.ErrConflict("email already exists")
		}
		return fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = id
	return nil
}

func (s *Store) Get(ctx context.Context, q db.DBTX, id int64) (User, error) {
	var u User
	if err := q.GetContext(ctx, &u, `SELECT id, name, email FROM users WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, apperr.ErrNotFound("user not found")
		}
		return User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *Store) List(ctx context.Context) ([]User, error) {
	var out []User
	if err := s.conn.SelectContext(ctx, &out, `SELECT id, name, email FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (s *Store) Update(ctx context.Context, q db.DBTX, u User) error {
	_, err := q.ExecContext(ctx, `UPDATE users SET name = ?, email = ? WHERE id = ?`, u.Name, u.Email, u.ID)
	if err != nil {
		if db.IsDuplicate(err) {
			return apperr.ErrConflict("email already exists")
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete: 利用者に紐づく行を外部キーの依存順に消す。呼び出し側のトランザクション内で使う
func (s *Store) Delete(ctx context.Context, tx db.DBTX, id int64) error {
	steps := []struct {
		name  string
		query string
	}{
		{"comments by user", `DELETE FROM comments WHERE author_id = ?`},
		{"comments on user's items", `DELETE FROM comments WHERE item_id IN (SELECT id FROM items WHERE owner_id = ?)`},
		{"bookings by user", `DELETE FROM bookings WHERE booker_id = ?`},
		{"bookings of user's items", `DELETE FROM bookings WHERE item_id IN (SELECT id FROM items WHERE owner_id = ?)`},
		{"user's items", `DELETE FROM items WHERE owner_id = ?`},
		{"links to user's requests", `UPDATE items SET request_id = NULL WHERE request_id IN (SELECT id FROM item_requests WHERE requestor_id = ?)`},
		{"user's requests", `DELETE FROM item_requests WHERE requestor_id = ?`},
	}
	for _, st := range steps {
		if _, err := tx.ExecContext(ctx, st.query, id); err != nil {
			return fmt.Errorf("delete %s: %w", st.name, err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if aff == 0 {
		return apperr.ErrNotFound("user not found")
	}
	return nil
}
