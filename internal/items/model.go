package items

import (
	"database/sql"

	"shareit-backend/internal/platform/db"
)

type Item struct {
	ID          int64         `db:"id"`
	Name        string        `db:"name"`
	Description string        `db:"description"`
	Available   bool          `db:"is_available"`
	OwnerID     int64         `db:"owner_id"`
	RequestID   sql.NullInt64 `db:"request_id"`
}

type Comment struct {
	ID         int64   `db:"id"`
	Text       string  `db:"text"`
	ItemID     int64   `db:"item_id"`
	AuthorID   int64   `db:"author_id"`
	AuthorName string  `db:"author_name"`
	Created    db.Time `db:"created"`
}

// bookingRef: 品目詳細に載せる直近/次回の承認済み予約
type bookingRef struct {
	ID       int64   `db:"id"`
	ItemID   int64   `db:"item_id"`
	BookerID int64   `db:"booker_id"`
	Start    db.Time `db:"start_date"`
	End      db.Time `db:"end_date"`
}
