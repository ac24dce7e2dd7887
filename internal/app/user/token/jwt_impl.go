package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	customErrors "github.com/vidtube/user-service/internal/domain/user/errors"
	domaintoken "github.com/vidtube/user-service/internal/domain/user/token"
	"github.com/vidtube/user-service/internal/infra/config"
)

// JWTCodec signs both session tokens with HS256 using separate secrets, so
// a refresh token can never pass as an access token.
type JWTCodec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	audience      string
}

func NewJWTCodec(cfg *config.Config) (*JWTCodec, error) {
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return nil, customErrors.WrapInternal(errors.New("empty token secret"), "NewJWTCodec")
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, customErrors.WrapInternal(errors.New("access and refresh secrets must differ"), "NewJWTCodec")
	}

	return &JWTCodec{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		issuer:        cfg.Issuer,
		audience:      cfg.Audience,
	}, nil
}

func (j *JWTCodec) GenerateAccessToken(userID uuid.UUID) (string, time.Time, error) {
	now := time.Now()

	claims := domaintoken.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    j.issuer,
			Audience:  jwt.ClaimStrings{j.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.accessSecret)
	if err != nil {
		return "", time.Time{}, customErrors.WrapInternal(err, "sign access token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

func (j *JWTCodec) GenerateRefreshToken(userID uuid.UUID) (string, time.Time, error) {
	now := time.Now()

	claims := domaintoken.RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    j.issuer,
			Audience:  jwt.ClaimStrings{j.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.refreshTTL)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.refreshSecret)
	if err != nil {
		return "", time.Time{}, customErrors.WrapInternal(err, "sign refresh token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

func (j *JWTCodec) ValidateAccessToken(raw string) (domaintoken.AccessClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &domaintoken.AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return j.accessSecret, nil
	}, jwt.WithIssuedAt(), jwt.WithLeeway(2*time.Minute))

	if err != nil || !token.Valid {
		return domaintoken.AccessClaims{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*domaintoken.AccessClaims)
	if !ok {
		return domaintoken.AccessClaims{}, customErrors.WrapInternal(
			errors.New("claims not AccessClaims"), "ValidateAccessToken",
		)
	}

	if err := j.checkIssuerAudience(claims.Issuer, claims.Audience); err != nil {
		return domaintoken.AccessClaims{}, err
	}

	return *claims, nil
}

func (j *JWTCodec) ValidateRefreshToken(raw string) (domaintoken.RefreshClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &domaintoken.RefreshClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return j.refreshSecret, nil
	}, jwt.WithIssuedAt(), jwt.WithLeeway(2*time.Minute))

	if err != nil || !token.Valid {
		return domaintoken.RefreshClaims{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*domaintoken.RefreshClaims)
	if !ok {
		return domaintoken.RefreshClaims{}, customErrors.WrapInternal(
			errors.New("claims not RefreshClaims"), "ValidateRefreshToken",
		)
	}

	if err := j.checkIssuerAudience(claims.Issuer, claims.Audience); err != nil {
		return domaintoken.RefreshClaims{}, err
	}

	return *claims, nil
}

func (j *JWTCodec) checkIssuerAudience(issuer string, audience jwt.ClaimStrings) error {
	if j.issuer != "" && issuer != j.issuer {
		return customErrors.ErrInvalidToken
	}

	if j.audience != "" {
		okAudi := false
		for _, a := range audience {
			if a == j.audience {
				okAudi = true
				break
			}
		}
		if !okAudi {
			return customErrors.ErrInvalidToken
		}
	}

	return nil
}
