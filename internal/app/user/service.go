package user

import (
	"context"

	"github.com/alexedwards/argon2id"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/vidtube/user-service/internal/adapters/transport/http/dto"
	"github.com/vidtube/user-service/internal/domain/user/media"
	"github.com/vidtube/user-service/internal/domain/user/model"
	"github.com/vidtube/user-service/internal/domain/user/repo"
	"github.com/vidtube/user-service/internal/domain/user/token"
	"github.com/vidtube/user-service/internal/infra/config"
)

var argonParams = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

type userService struct {
	users repo.UserRepo
	cache repo.ProfileCache
	media media.Store
	codec token.Codec
	cfg   *config.Config
	v     *validator.Validate
}

type Service interface {
	Register(ctx context.Context, in dto.RegisterDTO, avatar media.File, cover *media.File) (model.PublicUser, error)
	Login(ctx context.Context, in dto.LoginDTO) (model.PublicUser, model.TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	Refresh(ctx context.Context, presentedToken string) (model.TokenPair, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, in dto.ChangePasswordDTO) error
	IssueSession(ctx context.Context, userID uuid.UUID) (model.TokenPair, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (model.PublicUser, error)
	UpdateAccount(ctx context.Context, userID uuid.UUID, in dto.UpdateAccountDTO) (model.PublicUser, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, file media.File) (model.PublicUser, error)
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, file media.File) (model.PublicUser, error)
}

func New(
	ur repo.UserRepo,
	pc repo.ProfileCache,
	ms media.Store,
	tc token.Codec,
	cfg *config.Config,
	v *validator.Validate,
) Service {
	return &userService{
		users: ur, cache: pc, media: ms, codec: tc, cfg: cfg, v: v,
	}
}
