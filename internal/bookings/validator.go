package bookings

import (
	"time"

	"shareit-backend/internal/platform/apperr"
)

// ValidateCandidate: 新しい予約 [start, end] を既存予約に対して検証する。
// 所有者自身の予約は品目が存在しないのと同じ扱い。端点が接するだけでも重複とみなす
func ValidateCandidate(item ItemSnapshot, bookerID int64, start, end time.Time, existing []Booking) error {
	if !item.Available {
		return apperr.ErrInvalid("item is not available")
	}
	if bookerID == item.OwnerID {
		return apperr.ErrNotFound("item not found")
	}
	if !end.After(start) {
		return apperr.ErrInvalid("dates invalid: end must be after start")
	}
	for _, e := range existing {
		if e.Status == StatusRejected {
			continue
		}
		if Overlaps(start, end, e.Start, e.End) {
			return apperr.Invalidf("overlap: item %d is already booked from %s to %s",
				item.ID, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
		}
	}
	return nil
}

// Overlaps: 閉区間 [aStart, aEnd] と [bStart, bEnd] が共有点を持つか
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !(aEnd.Before(bStart) || aStart.After(bEnd))
}
