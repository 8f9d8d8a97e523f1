package requests

import "shareit-backend/internal/platform/db"

type ItemRequest struct {
	ID          int64   `db:"id"`
	Description string  `db:"description"`
	RequestorID int64   `db:"requestor_id"`
	Created     db.Time `db:"created"`
}

// answer: リクエストに応えて登録された品目
type answer struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Available   bool   `db:"is_available"`
	OwnerID     int64  `db:"owner_id"`
	RequestID   int64  `db:"request_id"`
}
