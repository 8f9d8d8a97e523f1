package items

import (
	"time"

	"shareit-backend/internal/platform/optional"
)

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=255"`
	Description string `json:"description" binding:"required,notblank,max=1000"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId" binding:"omitempty,gt=0"`
}

// UpdateItemRequest: キーが無い項目はそのまま。null や空白は受け付けない
type UpdateItemRequest struct {
	Name        optional.Field[string] `json:"name"`
	Description optional.Field[string] `json:"description"`
	Available   optional.Field[bool]   `json:"available"`
}

type CommentRequest struct {
	Text string `json:"text" binding:"required,notblank,max=2000"`
}

type BookingShort struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type ItemResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	OwnerID     int64             `json:"ownerId"`
	RequestID   *int64            `json:"requestId,omitempty"`
	LastBooking *BookingShort     `json:"lastBooking"`
	NextBooking *BookingShort     `json:"nextBooking"`
	Comments    []CommentResponse `json:"comments"`
}

func toResponse(it Item) ItemResponse {
	res := ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		OwnerID:     it.OwnerID,
		Comments:    []CommentResponse{},
	}
	if it.RequestID.Valid {
		id := it.RequestID.Int64
		res.RequestID = &id
	}
	return res
}

func toBookingShort(b bookingRef) *BookingShort {
	return &BookingShort{ID: b.ID, BookerID: b.BookerID, Start: b.Start.Time, End: b.End.Time}
}

func toCommentResponse(c Comment) CommentResponse {
	return CommentResponse{ID: c.ID, Text: c.Text, AuthorName: c.AuthorName, Created: c.Created.Time}
}
