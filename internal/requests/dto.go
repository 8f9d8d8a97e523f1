package requests

import "time"

const maxDescriptionLength = 1000

type CreateRequest struct {
	Description string `json:"description" binding:"required,notblank,max=1000"`
}

type ItemShort struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   int64  `json:"requestId"`
}

type RequestResponse struct {
	ID          int64       `json:"id"`
	Description string      `json:"description"`
	RequestorID int64       `json:"requestorId"`
	Created     time.Time   `json:"created"`
	Items       []ItemShort `json:"items"`
}

func toResponse(r ItemRequest, items []answer) RequestResponse {
	res := RequestResponse{
		ID:          r.ID,
		Description: r.Description,
		RequestorID: r.RequestorID,
		Created:     r.Created.Time,
		Items:       make([]ItemShort, 0, len(items)),
	}
	for _, it := range items {
		res.Items = append(res.Items, ItemShort{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Available:   it.Available,
			OwnerID:     it.OwnerID,
			RequestID:   it.RequestID,
		})
	}
	return res
}
