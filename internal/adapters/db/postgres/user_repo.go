package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	customErrors "github.com/vidtube/user-service/internal/domain/user/errors"
	"github.com/vidtube/user-service/internal/domain/user/model"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (p *UserRepo) Create(ctx context.Context, u model.User) (uuid.UUID, error) {
	res := p.db.WithContext(ctx).Create(&u)
	if err := res.Error; err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, customErrors.ErrAlreadyExists
		}
		return uuid.Nil, customErrors.WrapInternal(err, "Create")
	}
	return u.ID, nil
}

func (p *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where("id = ?", id).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, "GetByID")
	}

	return u, nil
}

func (p *UserRepo) GetByUsernameOrEmail(ctx context.Context, username, email string) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, "GetByUsernameOrEmail")
	}

	return u, nil
}

func (p *UserRepo) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	return p.updateColumns(ctx, id, "UpdateRefreshToken", map[string]interface{}{
		"refresh_token": token,
	})
}

func (p *UserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return p.updateColumns(ctx, id, "UpdatePassword", map[string]interface{}{
		"password_hash": passwordHash,
	})
}

func (p *UserRepo) UpdateAccount(ctx context.Context, id uuid.UUID, fullName, email string) error {
	return p.updateColumns(ctx, id, "UpdateAccount", map[string]interface{}{
		"full_name": fullName,
		"email":     email,
	})
}

func (p *UserRepo) UpdateAvatar(ctx context.Context, id uuid.UUID, url, key string) error {
	return p.updateColumns(ctx, id, "UpdateAvatar", map[string]interface{}{
		"avatar_url": url,
		"avatar_key": key,
	})
}

func (p *UserRepo) UpdateCoverImage(ctx context.Context, id uuid.UUID, url, key string) error {
	return p.updateColumns(ctx, id, "UpdateCoverImage", map[string]interface{}{
		"cover_image_url": url,
		"cover_image_key": key,
	})
}

// updateColumns writes the named columns only, bypassing full-row hooks
// and validation.
func (p *UserRepo) updateColumns(ctx context.Context, id uuid.UUID, op string, cols map[string]interface{}) error {
	res := p.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(cols)
	if err := res.Error; err != nil {
		if isUniqueViolation(err) {
			return customErrors.ErrAlreadyExists
		}
		return customErrors.WrapInternal(err, op)
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
