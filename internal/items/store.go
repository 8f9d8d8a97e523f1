package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
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

const itemColumns = `id, name, description, is_available, owner_id, request_id`

// UserName: 存在しなければ NotFound
func (s *Store) UserName(ctx context.Context, q db.DBTX, id int64) (string, error) {
	var name string
	if err := q.GetContext(ctx, &name, `SELECT name FROM users WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperr.ErrNotFound("user not found")
		}
		return "", fmt.Errorf("get user: %w", err)
	}
	return name, nil
}

func (s *Store) RequestExists(ctx context.Context, q db.DBTX, id int64) (bool, error) {
	var n int
	if err := q.GetContext(ctx, &n, `SELECT COUNT(*) FROM item_requests WHERE id = ?`, id); err != nil {
		return false, fmt.Errorf("count item_requests: %w", err)
	}
	return n > 0, nil
}

func (s *Store) Insert(ctx context.Context, q db.DBTX, it *Item) error {
	const query = `
		INSERT INTO items (name, description, is_available, owner_id, request_id, search_name, search_description)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := q.ExecContext(ctx, query, it.Name, it.Description, it.Available, it.OwnerID, it.RequestID,
		NormalizeSearch(it.Name), NormalizeSearch(it.Description))
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	it.ID = id
	return nil
}

func (s *Store) Get(ctx context.Context, q db.DBTX, id int64, lock bool) (Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`
	if lock {
		query += s.dialect.ForUpdate()
	}
	var it Item
	if err := q.GetContext(ctx, &it, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, apperr.ErrNotFound("item not found")
		}
		return Item{}, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

func (s *Store) Update(ctx context.Context, q db.DBTX, it Item) error {
	const query = `
		UPDATE items SET name = ?, description = ?, is_available = ?, search_name = ?, search_description = ?
		WHERE id = ?`
	if _, err := q.ExecContext(ctx, query, it.Name, it.Description, it.Available,
		NormalizeSearch(it.Name), NormalizeSearch(it.Description), it.ID); err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

func (s *Store) ListByOwner(ctx context.Context, ownerID int64) ([]Item, error) {
	var out []Item
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = ? ORDER BY id`
	if err := s.conn.SelectContext(ctx, &out, query, ownerID); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Search: 貸出可能な品目を名前・説明の部分一致で探す。
// text も列も NormalizeSearch 済みの値で比べる。SQL の LOWER は使わない
func (s *Store) Search(ctx context.Context, text string, page paging.Page) ([]Item, error) {
	pattern := "%" + likeEscaper.Replace(text) + "%"
	query := `
		SELECT ` + itemColumns + ` FROM items
		WHERE is_available = ?
		  AND (search_name LIKE ? ESCAPE '!' OR search_description LIKE ? ESCAPE '!')
		ORDER BY id
		LIMIT ? OFFSET ?`
	var out []Item
	if err := s.conn.SelectContext(ctx, &out, query, true, pattern, pattern, page.Limit, page.Offset); err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return out, nil
}

// LastBookings: 品目ごとに終了済みの承認予約のうち最新のもの
func (s *Store) LastBookings(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]bookingRef, error) {
	return s.firstBookingPerItem(ctx, itemIDs,
		`end_date < ?`, `end_date DESC, id DESC`, now)
}

// NextBookings: 品目ごとに未開始の承認予約のうち最も早いもの
func (s *Store) NextBookings(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]bookingRef, error) {
	return s.firstBookingPerItem(ctx, itemIDs,
		`start_date > ?`, `start_date ASC, id ASC`, now)
}

func (s *Store) firstBookingPerItem(ctx context.Context, itemIDs []int64, cond, order string, now time.Time) (map[int64]bookingRef, error) {
	out := make(map[int64]bookingRef, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`
		SELECT id, item_id, booker_id, start_date, end_date FROM bookings
		WHERE item_id IN (?) AND status = 'APPROVED' AND `+cond+`
		ORDER BY `+order, itemIDs, db.Instant(now))
	if err != nil {
		return nil, fmt.Errorf("build bookings query: %w", err)
	}
	var rows []bookingRef
	if err := s.conn.SelectContext(ctx, &rows, s.conn.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select bookings: %w", err)
	}
	for _, r := range rows {
		if _, seen := out[r.ItemID]; !seen {
			out[r.ItemID] = r
		}
	}
	return out, nil
}

const commentSelect = `
	SELECT c.id, c.text, c.item_id, c.author_id, u.name AS author_name, c.created
	FROM comments c JOIN users u ON u.id = c.author_id`

// Comments: 品目ごとのコメント（投稿順）
func (s *Store) Comments(ctx context.Context, itemIDs []int64) (map[int64][]Comment, error) {
	out := make(map[int64][]Comment, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(commentSelect+` WHERE c.item_id IN (?) ORDER BY c.created, c.id`, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("build comments query: %w", err)
	}
	var rows []Comment
	if err := s.conn.SelectContext(ctx, &rows, s.conn.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select comments: %w", err)
	}
	for _, c := range rows {
		out[c.ItemID] = append(out[c.ItemID], c)
	}
	return out, nil
}

// HasFinishedBooking: author がこの品目を借りて、承認済みかつ終了済みの予約があるか
func (s *Store) HasFinishedBooking(ctx context.Context, q db.DBTX, itemID, bookerID int64, now time.Time) (bool, error) {
	const query = `
		SELECT COUNT(*) FROM bookings
		WHERE item_id = ? AND booker_id = ? AND status = 'APPROVED' AND end_date < ?`
	var n int
	if err := q.GetContext(ctx, &n, query, itemID, bookerID, db.Instant(now)); err != nil {
		return false, fmt.Errorf("count finished bookings: %w", err)
	}
	return n > 0, nil
}

func (s *Store) InsertComment(ctx context.Context, q db.DBTX, c *Comment) error {
	const query = `INSERT INTO comments (text, item_id, author_id, created) VALUES (?, ?, ?, ?)`
	res, err := q.ExecContext(ctx, query, c.Text, c.ItemID, c.AuthorID, c.Created)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	c.ID = id
	return nil
}
