package bookings

import (
	"time"

	"shareit-backend/internal/platform/db"
)

type Booking struct {
	ID       int64
	ItemID   int64
	BookerID int64
	Start    time.Time
	End      time.Time
	Status   Status
}

// ItemSnapshot: 予約検証に必要な品目の情報
type ItemSnapshot struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	OwnerID   int64  `db:"owner_id"`
	Available bool   `db:"is_available"`
}

// bookingRow: bookings テーブルの1行
type bookingRow struct {
	ID       int64   `db:"id"`
	ItemID   int64   `db:"item_id"`
	BookerID int64   `db:"booker_id"`
	Start    db.Time `db:"start_date"`
	End      db.Time `db:"end_date"`
	Status   Status  `db:"status"`
}

func (r bookingRow) toBooking() Booking {
	return Booking{
		ID:       r.ID,
		ItemID:   r.ItemID,
		BookerID: r.BookerID,
		Start:    r.Start.Time,
		End:      r.End.Time,
		Status:   r.Status,
	}
}

// detailRow: 品目名・所有者・予約者名まで JOIN した行
type detailRow struct {
	bookingRow
	ItemName   string `db:"item_name"`
	OwnerID    int64  `db:"owner_id"`
	BookerName string `db:"booker_name"`
}
