package bookings

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"shareit-backend/internal/platform/apperr"
	"shareit-backend/internal/platform/clock"
	"shareit-backend/internal/platform/db"
	"shareit-backend/internal/platform/logging"
	"shareit-backend/internal/platform/paging"
)

type Service struct {
	conn  *sqlx.DB
	store *Store
	clock clock.Clock
}

func NewService(conn *sqlx.DB, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Service{conn: conn, store: NewStore(conn), clock: clk}
}

// POST /bookings
func (s *Service) Create(ctx context.Context, bookerID int64, in CreateBookingRequest) (BookingResponse, error) {
	now := s.clock.Now()
	start, end := db.Instant(in.Start), db.Instant(in.End)
	if start.Before(now) {
		return BookingResponse{}, apperr.ErrInvalid("start must not be in the past")
	}
	if !end.After(now) {
		return BookingResponse{}, apperr.ErrInvalid("end must be in the future")
	}

	ok, err := s.store.UserExists(ctx, s.conn, bookerID)
	if err != nil {
		return BookingResponse{}, err
	}
	if !ok {
		return BookingResponse{}, apperr.ErrNotFound("user not found")
	}

	var out detailRow
	err = db.RunInTx(ctx, s.conn, nil, func(ctx context.Context, tx db.DBTX) error {
		item, err := s.store.LockItem(ctx, tx, in.ItemID)
		if err != nil {
			return err
		}
		existing, err := s.store.ActiveOfItem(ctx, tx, item.ID)
		if err != nil {
			return err
		}
		if err := ValidateCandidate(item, bookerID, start, end, existing); err != nil {
			return err
		}

		b := Booking{ItemID: item.ID, BookerID: bookerID, Start: start, End: end, Status: StatusWaiting}
		if err := s.store.Insert(ctx, tx, &b); err != nil {
			return err
		}
		out, err = s.store.Detail(ctx, tx, b.ID, false)
		return err
	})
	if err != nil {
		return BookingResponse{}, err
	}

	logging.FromContext(ctx).Info("booking created",
		slog.Int64("booking_id", out.ID), slog.Int64("item_id", out.ItemID), slog.Int64("booker_id", bookerID))
	return toResponse(out), nil
}

// PATCH /bookings/:id?approved=
func (s *Service) Approve(ctx context.Context, bookingID int64, approved bool, actorID int64) (BookingResponse, error) {
	var out detailRow
	err := db.RunInTx(ctx, s.conn, nil, func(ctx context.Context, tx db.DBTX) error {
		r, err := s.store.Detail(ctx, tx, bookingID, true)
		if err != nil {
			return err
		}
		if r.OwnerID != actorID {
			return apperr.ErrForbidden("only the item owner can approve a booking")
		}
		next, err := Transition(r.Status, approved)
		if err != nil {
			return err
		}
		if err := s.store.UpdateStatus(ctx, tx, r.ID, r.Status, next); err != nil {
			return err
		}
		r.Status = next
		out = r
		return nil
	})
	if err != nil {
		return BookingResponse{}, err
	}

	logging.FromContext(ctx).Info("booking decided",
		slog.Int64("booking_id", out.ID), slog.String("status", string(out.Status)))
	return toResponse(out), nil
}

// GET /bookings/:id  予約者か所有者以外には存在しないものとして扱う
func (s *Service) Get(ctx context.Context, bookingID, actorID int64) (BookingResponse, error) {
	r, err := s.store.Detail(ctx, s.conn, bookingID, false)
	if err != nil {
		return BookingResponse{}, err
	}
	if r.BookerID != actorID && r.OwnerID != actorID {
		return BookingResponse{}, apperr.ErrNotFound("booking not found")
	}
	return toResponse(r), nil
}

// GET /bookings
func (s *Service) ListForBooker(ctx context.Context, actorID int64, state string, from, size int) ([]BookingResponse, error) {
	return s.list(ctx, AsBooker, actorID, state, from, size)
}

// GET /bookings/owner
func (s *Service) ListForOwner(ctx context.Context, actorID int64, state string, from, size int) ([]BookingResponse, error) {
	return s.list(ctx, AsOwner, actorID, state, from, size)
}

func (s *Service) list(ctx context.Context, role Role, actorID int64, state string, from, size int) ([]BookingResponse, error) {
	ok, err := s.store.UserExists(ctx, s.conn, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrNotFound("user not found")
	}
	st, err := ParseState(state)
	if err != nil {
		return nil, err
	}
	page, err := paging.FromSize(from, size)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.List(ctx, ListFilter{Role: role, UserID: actorID, State: st, Now: s.clock.Now(), Page: page})
	if err != nil {
		return nil, err
	}
	out := make([]BookingResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toResponse(r))
	}
	return out, nil
}
