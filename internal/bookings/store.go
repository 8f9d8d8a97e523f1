package bookings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"shareit-backend/internal/platform/apperr"
	"shareit-backend/internal/platform/db"
	"shareit-backend/internal/platform/paging"
)

type Store struct {
	conn    *sqlx.DB
	dialect db.Dialect
}

func NewStore(conn *sqlx.DB) *Store {
	return &Store{conn: conn, dialect: db.DialectOf(conn)}
}

const detailSelect = `
	SELECT b.id, b.item_id, b.booker_id, b.start_date, b.end_date, b.status,
	       i.name AS item_name, i.owner_id AS owner_id, u.name AS booker_name
	FROM bookings b
	JOIN items i ON i.id = b.item_id
	JOIN users u ON u.id = b.booker_id`

func (s *Store) UserExists(ctx context.Context, q db.DBTX, id int64) (bool, error) {
	var n int
	if err := q.GetContext(ctx, &n, `SELECT COUNT(*) FROM users WHERE id = ?`, id); err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

// LockItem: 予約作成中は品目行をロックして検証と挿入を直列化する
func (s *Store) LockItem(ctx context.Context, tx db.DBTX, itemID int64) (ItemSnapshot, error) {
	q := `SELECT id, name, owner_id, is_available FROM items WHERE id = ?` + s.dialect.ForUpdate()
	var it ItemSnapshot
	if err := tx.GetContext(ctx, &it, q, itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ItemSnapshot{}, apperr.ErrNotFound("item not found")
		}
		return ItemSnapshot{}, fmt.Errorf("lock item: %w", err)
	}
	return it, nil
}

// ActiveOfItem: 却下以外の予約
func (s *Store) ActiveOfItem(ctx context.Context, q db.DBTX, itemID int64) ([]Booking, error) {
	const query = `
		SELECT id, item_id, booker_id, start_date, end_date, status
		FROM bookings WHERE item_id = ? AND status <> ?`
	var rows []bookingRow
	if err := q.SelectContext(ctx, &rows, query, itemID, StatusRejected); err != nil {
		return nil, fmt.Errorf("select active bookings: %w", err)
	}
	out := make([]Booking, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toBooking())
	}
	return out, nil
}

func (s *Store) Insert(ctx context.Context, q db.DBTX, b *Booking) error {
	const query = `
		INSERT INTO bookings (item_id, booker_id, start_date, end_date, status)
		VALUES (?, ?, ?, ?, ?)`
	res, err := q.ExecContext(ctx, query, b.ItemID, b.BookerID, db.Instant(b.Start), db.Instant(b.End), b.Status)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	b.ID = id
	return nil
}

func (s *Store) Detail(ctx context.Context, q db.DBTX, id int64, lock bool) (detailRow, error) {
	query := detailSelect + ` WHERE b.id = ?`
	if lock {
		query += s.dialect.ForUpdate()
	}
	var r detailRow
	if err := q.GetContext(ctx, &r, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return detailRow{}, apperr.ErrNotFound("booking not found")
		}
		return detailRow{}, fmt.Errorf("get booking: %w", err)
	}
	return r, nil
}

func (s *Store) UpdateStatus(ctx context.Context, q db.DBTX, id int64, from, to Status) error {
	res, err := q.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ? AND status = ?`, to, id, from)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if aff != 1 {
		return apperr.Invalidf("booking %d is no longer %s", id, from)
	}
	return nil
}

// Role: 一覧の視点。予約者本人か、品目の所有者か
type Role int

const (
	AsBooker Role = iota
	AsOwner
)

type ListFilter struct {
	Role   Role
	UserID int64
	State  State
	Now    time.Time
	Page   paging.Page
}

// List: 開始日時の降順
func (s *Store) List(ctx context.Context, f ListFilter) ([]detailRow, error) {
	query := detailSelect
	var args []any
	switch f.Role {
	case AsOwner:
		query += ` WHERE i.owner_id = ?`
	default:
		query += ` WHERE b.booker_id = ?`
	}
	args = append(args, f.UserID)

	cond, condArgs := stateClause(f.State, db.Instant(f.Now))
	query += cond
	args = append(args, condArgs...)

	query += ` ORDER BY b.start_date DESC, b.id DESC LIMIT ? OFFSET ?`
	args = append(args, f.Page.Limit, f.Page.Offset)

	var rows []detailRow
	if err := s.conn.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return rows, nil
}
