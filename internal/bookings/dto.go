package bookings

import "time"

type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required,gt=0"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status Status    `json:"status"`
	Booker UserRef   `json:"booker"`
	Item   ItemRef   `json:"item"`
}

func toResponse(r detailRow) BookingResponse {
	return BookingResponse{
		ID:     r.ID,
		Start:  r.Start.Time,
		End:    r.End.Time,
		Status: r.Status,
		Booker: UserRef{ID: r.BookerID, Name: r.BookerName},
		Item:   ItemRef{ID: r.ItemID, Name: r.ItemName},
	}
}
