package requests

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"shareit-backend/internal/platform/apperr"
	"shareit-backend/internal/platform/clock"
	"shareit-backend/internal/platform/db"
	"shareit-backend/internal/platform/logging"
	"shareit-backend/internal/platform/paging"
)

type Service struct {
	store *Store
	clock clock.Clock
}

func NewService(conn *sqlx.DB, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Service{store: NewStore(conn), clock: clk}
}

func (s *Service) requireUser(ctx context.Context, id int64) error {
	ok, err := s.store.UserExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound("user not found")
	}
	return nil
}

// POST /requests
func (s *Service) Create(ctx context.Context, requestorID int64, in CreateRequest) (RequestResponse, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return RequestResponse{}, apperr.ErrInvalid("description must not be blank")
	}
	if len([]rune(desc)) > maxDescriptionLength {
		return RequestResponse{}, apperr.Invalidf("description must be at most %d characters", maxDescriptionLength)
	}
	if err := s.requireUser(ctx, requestorID); err != nil {
		return RequestResponse{}, err
	}

	r := ItemRequest{Description: desc, RequestorID: requestorID, Created: db.Time{Time: db.Instant(s.clock.Now())}}
	if err := s.store.Insert(ctx, &r); err != nil {
		return RequestResponse{}, err
	}
	logging.FromContext(ctx).Info("item request created", slog.Int64("request_id", r.ID), slog.Int64("requestor_id", requestorID))
	return toResponse(r, nil), nil
}

// GET /requests
func (s *Service) ListOwn(ctx context.Context, requestorID int64) ([]RequestResponse, error) {
	if err := s.requireUser(ctx, requestorID); err != nil {
		return nil, err
	}
	list, err := s.store.ByRequestor(ctx, requestorID)
	if err != nil {
		return nil, err
	}
	return s.withAnswers(ctx, list)
}

// GET /requests/all
func (s *Service) ListOthers(ctx context.Context, actorID int64, from, size int) ([]RequestResponse, error) {
	if err := s.requireUser(ctx, actorID); err != nil {
		return nil, err
	}
	page, err := paging.FromSize(from, size)
	if err != nil {
		return nil, err
	}
	list, err := s.store.OthersThan(ctx, actorID, page)
	if err != nil {
		return nil, err
	}
	return s.withAnswers(ctx, list)
}

// GET /requests/:id
func (s *Service) Get(ctx context.Context, actorID, requestID int64) (RequestResponse, error) {
	if err := s.requireUser(ctx, actorID); err != nil {
		return RequestResponse{}, err
	}
	r, err := s.store.Get(ctx, requestID)
	if err != nil {
		return RequestResponse{}, err
	}
	out, err := s.withAnswers(ctx, []ItemRequest{r})
	if err != nil {
		return RequestResponse{}, err
	}
	return out[0], nil
}

func (s *Service) withAnswers(ctx context.Context, list []ItemRequest) ([]RequestResponse, error) {
	ids := make([]int64, 0, len(list))
	for _, r := range list {
		ids = append(ids, r.ID)
	}
	answers, err := s.store.Answers(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]RequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toResponse(r, answers[r.ID]))
	}
	return out, nil
}
