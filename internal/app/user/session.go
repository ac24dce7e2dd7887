package user

import (
	"context"
	"errors"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/vidtube/user-service/internal/adapters/transport/http/dto"
	customErrors "github.com/vidtube/user-service/internal/domain/user/errors"
	"github.com/vidtube/user-service/internal/domain/user/model"
)

// IssueSession mints a fresh access/refresh pair for the user and persists
// the refresh token with a single-column write. The previous refresh token,
// if any, is superseded by that write: one active session per user.
func (s *userService) IssueSession(ctx context.Context, userID uuid.UUID) (model.TokenPair, error) {
	u, err := s.users.GetByID(ctx, userID)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.TokenPair{}, customErrors.ErrNotFound
	case err != nil:
		return model.TokenPair{}, customErrors.WrapInternal(err, "IssueSession")
	}

	at, atExp, err := s.codec.GenerateAccessToken(u.ID)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateAccessToken")
	}
	rt, rtExp, err := s.codec.GenerateRefreshToken(u.ID)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateRefreshToken")
	}

	if err := s.users.UpdateRefreshToken(ctx, u.ID, rt); err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "PersistRefreshToken")
	}

	now := time.Now()

	return model.TokenPair{
		AccessToken:  at,
		RefreshToken: rt,
		AccessTTL:    atExp.Sub(now),
		RefreshTTL:   rtExp.Sub(now),
		UserID:       u.ID,
	}, nil
}

func (s *userService) Login(ctx context.Context, in dto.LoginDTO) (model.PublicUser, model.TokenPair, error) {
	if in.Email == "" && in.Username == "" {
		return model.PublicUser{}, model.TokenPair{}, customErrors.NewInvalidArgument("email or username is required")
	}
	if err := s.v.Struct(in); err != nil {
		return model.PublicUser{}, model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	u, err := s.users.GetByUsernameOrEmail(ctx, in.Username, in.Email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.PublicUser{}, model.TokenPair{}, customErrors.ErrNotFound
	case err != nil:
		return model.PublicUser{}, model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}

	ok, err := argon2id.ComparePasswordAndHash(in.Password+s.cfg.PasswordPepper, u.PasswordHash)
	if err != nil {
		return model.PublicUser{}, model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}
	if !ok {
		return model.PublicUser{}, model.TokenPair{}, customErrors.ErrInvalidCredentials
	}

	pair, err := s.IssueSession(ctx, u.ID)
	if err != nil {
		return model.PublicUser{}, model.TokenPair{}, err
	}

	// Re-fetch so the returned view reflects the persisted record, with
	// the password hash and refresh token projected away.
	fresh, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return model.PublicUser{}, model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}

	return fresh.Public(), pair, nil
}

// Logout clears the persisted refresh token. Clearing an already-empty
// field is a no-op, so repeated calls converge on the same state.
func (s *userService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.UpdateRefreshToken(ctx, userID, ""); err != nil {
		return customErrors.WrapInternal(err, "Logout")
	}
	_ = s.cache.Invalidate(ctx, userID)
	return nil
}

// Refresh exchanges a presented refresh token for a new pair. The token is
// one-shot: it must equal the persisted value exactly, and issuing the new
// pair overwrites that value, so a second presentation of the same token
// fails the comparison.
func (s *userService) Refresh(ctx context.Context, presentedToken string) (model.TokenPair, error) {
	if presentedToken == "" {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	claims, err := s.codec.ValidateRefreshToken(presentedToken)
	if err != nil {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, uid)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.TokenPair{}, customErrors.ErrInvalidToken
	case err != nil:
		return model.TokenPair{}, customErrors.WrapInternal(err, "Refresh")
	}

	if u.RefreshToken == "" || u.RefreshToken != presentedToken {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	return s.IssueSession(ctx, u.ID)
}

func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, in dto.ChangePasswordDTO) error {
	if err := s.v.Struct(in); err != nil {
		return customErrors.NewInvalidArgument(err.Error())
	}

	u, err := s.users.GetByID(ctx, userID)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return customErrors.ErrNotFound
	case err != nil:
		return customErrors.WrapInternal(err, "ChangePassword")
	}

	ok, err := argon2id.ComparePasswordAndHash(in.OldPassword+s.cfg.PasswordPepper, u.PasswordHash)
	if err != nil {
		return customErrors.WrapInternal(err, "ChangePassword")
	}
	if !ok {
		return customErrors.ErrInvalidCredentials
	}

	hash, err := argon2id.CreateHash(in.NewPassword+s.cfg.PasswordPepper, argonParams)
	if err != nil {
		return customErrors.WrapInternal(err, "ChangePassword")
	}

	// The active session stays valid: changing the password does not
	// rotate or revoke the persisted refresh token.
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return customErrors.WrapInternal(err, "ChangePassword")
	}
	return nil
}
