package items

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"

	"shareit-backend/internal/platform/apperr"
	"shareit-backend/internal/platform/clock"
	"shareit-backend/internal/platform/db"
	"shareit-backend/internal/platform/logging"
	"shareit-backend/internal/platform/paging"
)

const (
	SearchDefaultSize = 20
	maxCommentLength  = 2000
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

// POST /items
func (s *Service) Create(ctx context.Context, ownerID int64, in CreateItemRequest) (ItemResponse, error) {
	name, desc := strings.TrimSpace(in.Name), strings.TrimSpace(in.Description)
	if name == "" || desc == "" {
		return ItemResponse{}, apperr.ErrInvalid("name and description must not be blank")
	}
	if in.Available == nil {
		return ItemResponse{}, apperr.ErrInvalid("available is required")
	}

	it := Item{Name: name, Description: desc, Available: *in.Available, OwnerID: ownerID}
	err := db.RunInTx(ctx, s.conn, nil, func(ctx context.Context, tx db.DBTX) error {
		if _, err := s.store.UserName(ctx, tx, ownerID); err != nil {
			return err
		}
		if in.RequestID != nil {
			ok, err := s.store.RequestExists(ctx, tx, *in.RequestID)
			if err != nil {
				return err
			}
			if !ok {
				return apperr.ErrNotFound("item request not found")
			}
			it.RequestID = sql.NullInt64{Int64: *in.RequestID, Valid: true}
		}
		return s.store.Insert(ctx, tx, &it)
	})
	if err != nil {
		return ItemResponse{}, err
	}

	logging.FromContext(ctx).Info("item created", slog.Int64("item_id", it.ID), slog.Int64("owner_id", ownerID))
	return toResponse(it), nil
}

// PATCH /items/:id
func (s *Service) Update(ctx context.Context, itemID, actorID int64, in UpdateItemRequest) (ItemResponse, error) {
	if in.Name.Set && (in.Name.Null || strings.TrimSpace(in.Name.Value) == "") {
		return ItemResponse{}, apperr.ErrInvalid("name must not be blank")
	}
	if in.Description.Set && (in.Description.Null || strings.TrimSpace(in.Description.Value) == "") {
		return ItemResponse{}, apperr.ErrInvalid("description must not be blank")
	}
	if in.Available.Set && in.Available.Null {
		return ItemResponse{}, apperr.ErrInvalid("available must not be null")
	}

	var it Item
	err := db.RunInTx(ctx, s.conn, nil, func(ctx context.Context, tx db.DBTX) error {
		cur, err := s.store.Get(ctx, tx, itemID, true)
		if err != nil {
			return err
		}
		if cur.OwnerID != actorID {
			return apperr.ErrForbidden("only the owner can edit an item")
		}
		cur.Name = strings.TrimSpace(in.Name.Get(cur.Name))
		cur.Description = strings.TrimSpace(in.Description.Get(cur.Description))
		cur.Available = in.Available.Get(cur.Available)
		if err := s.store.Update(ctx, tx, cur); err != nil {
			return err
		}
		it = cur
		return nil
	})
	if err != nil {
		return ItemResponse{}, err
	}

	logging.FromContext(ctx).Info("item updated", slog.Int64("item_id", it.ID))
	out, err := s.enrich(ctx, []Item{it}, true)
	if err != nil {
		return ItemResponse{}, err
	}
	return out[0], nil
}

// GET /items/:id  予約情報は所有者にだけ見せる
func (s *Service) Get(ctx context.Context, itemID, actorID int64) (ItemResponse, error) {
	it, err := s.store.Get(ctx, s.conn, itemID, false)
	if err != nil {
		return ItemResponse{}, err
	}
	out, err := s.enrich(ctx, []Item{it}, it.OwnerID == actorID)
	if err != nil {
		return ItemResponse{}, err
	}
	return out[0], nil
}

// GET /items
func (s *Service) ListOwned(ctx context.Context, ownerID int64) ([]ItemResponse, error) {
	if _, err := s.store.UserName(ctx, s.conn, ownerID); err != nil {
		return nil, err
	}
	list, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, list, true)
}

// NormalizeSearch: 全角英数を半角に寄せて小文字化する
func NormalizeSearch(text string) string {
	return cases.Lower(language.Und).String(width.Fold.String(strings.TrimSpace(text)))
}

// GET /items/search?text=
func (s *Service) Search(ctx context.Context, actorID int64, text string, from, size int) ([]ItemResponse, error) {
	q := NormalizeSearch(text)
	if q == "" {
		return []ItemResponse{}, nil
	}
	if _, err := s.store.UserName(ctx, s.conn, actorID); err != nil {
		return nil, err
	}
	page, err := paging.FromSize(from, size)
	if err != nil {
		return nil, err
	}
	list, err := s.store.Search(ctx, q, page)
	if err != nil {
		return nil, err
	}
	out := make([]ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, toResponse(it))
	}
	return out, nil
}

// POST /items/:id/comment  借りて返し終わった人だけ書ける
func (s *Service) AddComment(ctx context.Context, itemID, authorID int64, in CommentRequest) (CommentResponse, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return CommentResponse{}, apperr.ErrInvalid("text must not be blank")
	}
	if len([]rune(text)) > maxCommentLength {
		return CommentResponse{}, apperr.Invalidf("text must be at most %d characters", maxCommentLength)
	}

	now := db.Instant(s.clock.Now())
	c := Comment{Text: text, ItemID: itemID, AuthorID: authorID, Created: db.Time{Time: now}}
	err := db.RunInTx(ctx, s.conn, nil, func(ctx context.Context, tx db.DBTX) error {
		if _, err := s.store.Get(ctx, tx, itemID, false); err != nil {
			return err
		}
		name, err := s.store.UserName(ctx, tx, authorID)
		if err != nil {
			return err
		}
		c.AuthorName = name

		ok, err := s.store.HasFinishedBooking(ctx, tx, itemID, authorID, now)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Invalidf("user %d has no finished booking of item %d", authorID, itemID)
		}
		return s.store.InsertComment(ctx, tx, &c)
	})
	if err != nil {
		return CommentResponse{}, err
	}

	logging.FromContext(ctx).Info("comment added", slog.Int64("item_id", itemID), slog.Int64("comment_id", c.ID))
	return toCommentResponse(c), nil
}

// enrich: コメントと(必要なら)直近/次回の予約をまとめて引いて付ける
func (s *Service) enrich(ctx context.Context, list []Item, withBookings bool) ([]ItemResponse, error) {
	ids := make([]int64, 0, len(list))
	for _, it := range list {
		ids = append(ids, it.ID)
	}

	comments, err := s.store.Comments(ctx, ids)
	if err != nil {
		return nil, err
	}

	var last, next map[int64]bookingRef
	if withBookings {
		now := s.clock.Now()
		if last, err = s.store.LastBookings(ctx, ids, now); err != nil {
			return nil, err
		}
		if next, err = s.store.NextBookings(ctx, ids, now); err != nil {
			return nil, err
		}
	}

	out := make([]ItemResponse, 0, len(list))
	for _, it := range list {
		res := toResponse(it)
		for _, c := range comments[it.ID] {
			res.Comments = append(res.Comments, toCommentResponse(c))
		}
		if b, ok := last[it.ID]; ok {
			res.LastBooking = toBookingShort(b)
		}
		if b, ok := next[it.ID]; ok {
			res.NextBooking = toBookingShort(b)
		}
		out = append(out, res)
	}
	return out, nil
}
