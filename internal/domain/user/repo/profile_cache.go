package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidtube/user-service/internal/domain/user/model"
)

// ProfileCache holds sanitized user views. It is a read-through cache:
// callers treat a miss or an error the same way and fall back to the
// UserRepo.
type ProfileCache interface {
	Get(ctx context.Context, id uuid.UUID) (model.PublicUser, bool, error)

	Set(ctx context.Context, u model.PublicUser) error

	Invalidate(ctx context.Context, id uuid.UUID) error
}
