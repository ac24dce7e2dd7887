package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vidtube/user-service/internal/infra/config"
)

func testConfig() *config.Config {
	return &config.Config{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     time.Minute,
		RefreshTokenTTL:    time.Hour,
		Issuer:             "test",
		Audience:           "test",
	}
}

func TestJWTCodec_GenerateValidate(t *testing.T) {
	codec, err := NewJWTCodec(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	uid := uuid.New()
	token, exp, err := codec.GenerateAccessToken(uid)
	if err != nil || exp.IsZero() {
		t.Fatalf("bad generate: %v", err)
	}
	claims, err := codec.ValidateAccessToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != uid.String() {
		t.Fatalf("want %s got %s", uid, claims.Subject)
	}
}

func TestJWTCodec_RefreshCycle(t *testing.T) {
	codec, _ := NewJWTCodec(testConfig())
	uid := uuid.New()
	rTok, exp, err := codec.GenerateRefreshToken(uid)
	if err != nil || exp.IsZero() {
		t.Fatalf("bad generate: %v", err)
	}
	cl, err := codec.ValidateRefreshToken(rTok)
	if err != nil || cl.Subject != uid.String() {
		t.Fatalf("validate error: %v", err)
	}
}

func TestJWTCodec_SecretsMustDiffer(t *testing.T) {
	cfg := testConfig()
	cfg.RefreshTokenSecret = cfg.AccessTokenSecret
	if _, err := NewJWTCodec(cfg); err == nil {
		t.Fatal("expected error for identical secrets")
	}
}

func TestJWTCodec_RefreshNotValidAsAccess(t *testing.T) {
	codec, _ := NewJWTCodec(testConfig())
	rTok, _, _ := codec.GenerateRefreshToken(uuid.New())
	if _, err := codec.ValidateAccessToken(rTok); err == nil {
		t.Fatal("refresh token must not validate as access token")
	}
	aTok, _, _ := codec.GenerateAccessToken(uuid.New())
	if _, err := codec.ValidateRefreshToken(aTok); err == nil {
		t.Fatal("access token must not validate as refresh token")
	}
}

func TestJWTCodec_ValidateErrors(t *testing.T) {
	codec, _ := NewJWTCodec(testConfig())
	if _, err := codec.ValidateAccessToken("bad"); err == nil {
		t.Fatal("expected error")
	}
	otherCfg := testConfig()
	otherCfg.Issuer = "wrong"
	other, _ := NewJWTCodec(otherCfg)
	tok, _, _ := other.GenerateAccessToken(uuid.New())
	if _, err := codec.ValidateAccessToken(tok); err == nil {
		t.Fatal("expected issuer error")
	}
}

func TestJWTCodec_InvalidAudience(t *testing.T) {
	codec, _ := NewJWTCodec(testConfig())
	otherCfg := testConfig()
	otherCfg.Audience = "other"
	other, _ := NewJWTCodec(otherCfg)
	tok, _, _ := other.GenerateAccessToken(uuid.New())
	if _, err := codec.ValidateAccessToken(tok); err == nil {
		t.Fatal("expected audience error")
	}
	rTok, _, _ := other.GenerateRefreshToken(uuid.New())
	if _, err := codec.ValidateRefreshToken(rTok); err == nil {
		t.Fatal("expected audience error")
	}
}

func TestJWTCodec_InvalidAlg(t *testing.T) {
	codec, _ := NewJWTCodec(testConfig())
	token, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := codec.ValidateAccessToken(token); err == nil {
		t.Fatal("expected invalid alg")
	}
	if _, err := codec.ValidateRefreshToken(token); err == nil {
		t.Fatal("expected invalid alg")
	}
}

func TestJWTCodec_Expired(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTokenTTL = -10 * time.Minute
	codec, _ := NewJWTCodec(cfg)
	tok, _, _ := codec.GenerateAccessToken(uuid.New())
	if _, err := codec.ValidateAccessToken(tok); err == nil {
		t.Fatal("expected expiry error")
	}
}
