package requests

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"shareit-backend/internal/platform/apperr"
	"shareit-backend/internal/platform/paging"
)

type Store struct {
	conn *sqlx.DB
}

func NewStore(conn *sqlx.DB) *Store { return &Store{conn: conn} }

const requestColumns = `id, description, requestor_id, created`

func (s *Store) UserExists(ctx context.Context, id int64) (bool, error) {
	var n int
	if err := s.conn.GetContext(ctx, &n, `SELECT COUNT(*) FROM users WHERE id = ?`, id); err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

func (s *Store) Insert(ctx context.Context, r *ItemRequest) error {
	const query = `INSERT INTO item_requests (description, requestor_id, created) VALUES (?, ?, ?)`
	res, err := s.conn.ExecContext(ctx, query, r.Description, r.RequestorID, r.Created)
	if err != nil {
		return fmt.Errorf("insert item_request: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert item_request: %w", err)
	}
	r.ID = id
	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (ItemRequest, error) {
	var r ItemRequest
	if err := s.conn.GetContext(ctx, &r, `SELECT `+requestColumns+` FROM item_requests WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ItemRequest{}, apperr.ErrNotFound("item request not found")
		}
		return ItemRequest{}, fmt.Errorf("get item_request: %w", err)
	}
	return r, nil
}

// ByRequestor: 新しい順
func (s *Store) ByRequestor(ctx context.Context, requestorID int64) ([]ItemRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM item_requests WHERE requestor_id = ? ORDER BY created DESC, id DESC`
	var out []ItemRequest
	if err := s.conn.SelectContext(ctx, &out, query, requestorID); err != nil {
		return nil, fmt.Errorf("list own item_requests: %w", err)
	}
	return out, nil
}

// OthersThan: 自分以外のリクエスト。新しい順
func (s *Store) OthersThan(ctx context.Context, requestorID int64, page paging.Page) ([]ItemRequest, error) {
	query := `
		SELECT ` + requestColumns + ` FROM item_requests
		WHERE requestor_id <> ?
		ORDER BY created DESC, id DESC
		LIMIT ? OFFSET ?`
	var out []ItemRequest
	if err := s.conn.SelectContext(ctx, &out, query, requestorID, page.Limit, page.Offset); err != nil {
		return nil, fmt.Errorf("list item_requests: %w", err)
	}
	return out, nil
}

// Answers: リクエストID ごとの品目
func (s *Store) Answers(ctx context.Context, requestIDs []int64) (map[int64][]answer, error) {
	out := make(map[int64][]answer, len(requestIDs))
	if len(requestIDs) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`
		SELECT id, name, description, is_available, owner_id, request_id
		FROM items WHERE request_id IN (?) ORDER BY id`, requestIDs)
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}
	var rows []answer
	if err := s.conn.SelectContext(ctx, &rows, s.conn.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	for _, a := range rows {
		out[a.RequestID] = append(out[a.RequestID], a)
	}
	return out, nil
}
