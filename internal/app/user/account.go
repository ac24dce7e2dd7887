package user

import (
	"context"
	"errors"
	"strings"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/vidtube/user-service/internal/adapters/transport/http/dto"
	customErrors "github.com/vidtube/user-service/internal/domain/user/errors"
	"github.com/vidtube/user-service/internal/domain/user/media"
	"github.com/vidtube/user-service/internal/domain/user/model"
)

// Register creates the account after uploading its media. Every completed
// upload pushes a compensating delete; if the create fails, compensations
// run in reverse order so no orphaned objects remain in the store.
func (s *userService) Register(ctx context.Context, in dto.RegisterDTO, avatar media.File, cover *media.File) (model.PublicUser, error) {
	if err := s.v.Struct(in); err != nil {
		return model.PublicUser{}, customErrors.NewInvalidArgument(err.Error())
	}

	username := strings.ToLower(in.Username)

	_, err := s.users.GetByUsernameOrEmail(ctx, username, in.Email)
	switch {
	case err == nil:
		return model.PublicUser{}, customErrors.ErrAlreadyExists
	case !errors.Is(err, customErrors.ErrNotFound):
		return model.PublicUser{}, customErrors.WrapInternal(err, "Register")
	}

	if avatar.Content == nil {
		return model.PublicUser{}, customErrors.NewInvalidArgument("avatar file is missing")
	}

	var compensations []func(context.Context)
	rollback := func() {
		for i := len(compensations) - 1; i >= 0; i-- {
			compensations[i](ctx)
		}
	}

	avatarUp, err := s.media.Upload(ctx, avatar)
	if err != nil {
		return model.PublicUser{}, customErrors.WrapInternal(err, "upload avatar")
	}
	compensations = append(compensations, func(ctx context.Context) {
		_ = s.media.Delete(ctx, avatarUp.Key)
	})

	var coverUp media.Upload
	if cover != nil && cover.Content != nil {
		coverUp, err = s.media.Upload(ctx, *cover)
		if err != nil {
			rollback()
			return model.PublicUser{}, customErrors.WrapInternal(err, "upload cover image")
		}
		compensations = append(compensations, func(ctx context.Context) {
			_ = s.media.Delete(ctx, coverUp.Key)
		})
	}

	hash, err := argon2id.CreateHash(in.Password+s.cfg.PasswordPepper, argonParams)
	if err != nil {
		rollback()
		return model.PublicUser{}, customErrors.WrapInternal(err, "Register")
	}

	u := model.User{
		ID:            uuid.New(),
		Username:      username,
		Email:         in.Email,
		FullName:      in.FullName,
		AvatarURL:     avatarUp.URL,
		AvatarKey:     avatarUp.Key,
		CoverImageURL: coverUp.URL,
		CoverImageKey: coverUp.Key,
		PasswordHash:  hash,
	}

	if _, err := s.users.Create(ctx, u); err != nil {
		rollback()
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.PublicUser{}, customErrors.ErrAlreadyExists
		}
		return model.PublicUser{}, customErrors.WrapInternal(err, "Register")
	}

	created, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return model.PublicUser{}, customErrors.WrapInternal(err, "Register")
	}

	return created.Public(), nil
}

func (s *userService) CurrentUser(ctx context.Context, userID uuid.UUID) (model.PublicUser, error) {
	if view, ok, err := s.cache.Get(ctx, userID); err == nil && ok {
		return view, nil
	}

	u, err := s.users.GetByID(ctx, userID)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.PublicUser{}, customErrors.ErrNotFound
	case err != nil:
		return model.PublicUser{}, customErrors.WrapInternal(err, "CurrentUser")
	}

	view := u.Public()
	_ = s.cache.Set(ctx, view)
	return view, nil
}

func (s *userService) UpdateAccount(ctx context.Context, userID uuid.UUID, in dto.UpdateAccountDTO) (model.PublicUser, error) {
	if err := s.v.Struct(in); err != nil {
		return model.PublicUser{}, customErrors.NewInvalidArgument(err.Error())
	}

	if err := s.users.UpdateAccount(ctx, userID, in.FullName, in.Email); err != nil {
		switch {
		case errors.Is(err, customErrors.ErrNotFound):
			return model.PublicUser{}, customErrors.ErrNotFound
		case errors.Is(err, customErrors.ErrAlreadyExists):
			return model.PublicUser{}, customErrors.ErrAlreadyExists
		}
		return model.PublicUser{}, customErrors.WrapInternal(err, "UpdateAccount")
	}

	return s.refreshView(ctx, userID, "UpdateAccount")
}

func (s *userService) UpdateAvatar(ctx context.Context, userID uuid.UUID, file media.File) (model.PublicUser, error) {
	return s.updateMedia(ctx, userID, file, "UpdateAvatar",
		func(u model.User) string { return u.AvatarKey },
		s.users.UpdateAvatar,
	)
}

func (s *userService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, file media.File) (model.PublicUser, error) {
	return s.updateMedia(ctx, userID, file, "UpdateCoverImage",
		func(u model.User) string { return u.CoverImageKey },
		s.users.UpdateCoverImage,
	)
}

func (s *userService) updateMedia(
	ctx context.Context,
	userID uuid.UUID,
	file media.File,
	op string,
	oldKey func(model.User) string,
	persist func(ctx context.Context, id uuid.UUID, url, key string) error,
) (model.PublicUser, error) {
	if file.Content == nil {
		return model.PublicUser{}, customErrors.NewInvalidArgument("file is required")
	}

	u, err := s.users.GetByID(ctx, userID)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.PublicUser{}, customErrors.ErrNotFound
	case err != nil:
		return model.PublicUser{}, customErrors.WrapInternal(err, op)
	}

	up, err := s.media.Upload(ctx, file)
	if err != nil {
		return model.PublicUser{}, customErrors.WrapInternal(err, op)
	}

	if err := persist(ctx, userID, up.URL, up.Key); err != nil {
		_ = s.media.Delete(ctx, up.Key)
		return model.PublicUser{}, customErrors.WrapInternal(err, op)
	}

	// Previous object is unreachable once the row points at the new one.
	if key := oldKey(u); key != "" {
		_ = s.media.Delete(ctx, key)
	}

	return s.refreshView(ctx, userID, op)
}

func (s *userService) refreshView(ctx context.Context, userID uuid.UUID, op string) (model.PublicUser, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.PublicUser{}, customErrors.WrapInternal(err, op)
	}
	view := u.Public()
	_ = s.cache.Invalidate(ctx, userID)
	_ = s.cache.Set(ctx, view)
	return view, nil
}
