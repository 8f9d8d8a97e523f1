package users

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"shareit-backend/internal/platform/apperr"
	"shareit-backend/internal/platform/db"
	"shareit-backend/internal/platform/logging"
)

var validate = validator.New()

type Service struct {
	conn  *sqlx.DB
	store *Store
}

func NewService(conn *sqlx.DB) *Service {
	return &Service{conn: conn, store: NewStore(conn)}
}

// POST /users
func (s *Service) Create(ctx context.Context, in CreateUserRequest) (UserResponse, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" {
		return UserResponse{}, apperr.ErrInvalid("name must not be blank")
	}
	if email == "" {
		return UserResponse{}, apperr.ErrInvalid("email must not be blank")
	}

	u := User{Name: name, Email: email}
	if err := s.store.Insert(ctx, &u); err != nil {
		return UserResponse{}, err
	}
	logging.FromContext(ctx).Info("user created", slog.Int64("user_id", u.ID))
	return toResponse(u), nil
}

// PATCH /users/:id
func (s *Service) Update(ctx context.Context, id int64, in UpdateUserRequest) (UserResponse, error) {
	var out User
	err := db.RunInTx(ctx, s.conn, nil, func(ctx context.Context, tx db.DBTX) error {
		u, err := s.store.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
			u.Name = strings.TrimSpace(*in.Name)
		}
		if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
			email := strings.TrimSpace(*in.Email)
			if err := validate.Var(email, "email,max=512"); err != nil {
				return apperr.ErrInvalid("email must be a valid email")
			}
			u.Email = email
		}
		if len(u.Name) > 255 {
			return apperr.ErrInvalid("name must be at most 255 characters")
		}
		if err := s.store.Update(ctx, tx, u); err != nil {
			return err
		}
		out = u
		return nil
	})
	if err != nil {
		return UserResponse{}, err
	}
	return toResponse(out), nil
}

// GET /users/:id
func (s *Service) Get(ctx context.Context, id int64) (UserResponse, error) {
	u, err := s.store.Get(ctx, s.conn, id)
	if err != nil {
		return UserResponse{}, err
	}
	return toResponse(u), nil
}

// GET /users
func (s *Service) List(ctx context.Context) ([]UserResponse, error) {
	us, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserResponse, 0, len(us))
	for _, u := range us {
		out = append(out, toResponse(u))
	}
	return out, nil
}

// DELETE /users/:id  所有品目・予約・コメント・リクエストもまとめて消す
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := db.RunInTx(ctx, s.conn, nil, func(ctx context.Context, tx db.DBTX) error {
		return s.store.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Info("user deleted", slog.Int64("user_id", id))
	return nil
}
