package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidtube/user-service/internal/domain/user/model"
)

type UserRepo interface {
	Create(ctx context.Context, u model.User) (uuid.UUID, error)

	GetByID(ctx context.Context, id uuid.UUID) (model.User, error)

	// GetByUsernameOrEmail returns the first user matching either value.
	GetByUsernameOrEmail(ctx context.Context, username, email string) (model.User, error)

	// UpdateRefreshToken writes the single refresh_token column; an empty
	// token clears the persisted session.
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error

	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	UpdateAccount(ctx context.Context, id uuid.UUID, fullName, email string) error

	UpdateAvatar(ctx context.Context, id uuid.UUID, url, key string) error

	UpdateCoverImage(ctx context.Context, id uuid.UUID, url, key string) error
}
