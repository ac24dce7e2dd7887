package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vidtube/user-service/internal/domain/user/errors"
	"github.com/vidtube/user-service/internal/domain/user/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, repo *UserRepo) model.User {
	t.Helper()
	u := model.User{
		ID:           uuid.New(),
		Username:     "chan",
		Email:        "chan@example.com",
		FullName:     "Chan",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
	if _, err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("create: %v", err)
	}
	return u
}

func TestUserRepo_CreateAndGet(t *testing.T) {
	repo := NewUserRepo(setupDB(t))
	ctx := context.Background()
	u := seedUser(t, repo)

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil || got.Email != u.Email {
		t.Fatalf("get by id: %v", err)
	}

	byName, err := repo.GetByUsernameOrEmail(ctx, "chan", "")
	if err != nil || byName.ID != u.ID {
		t.Fatalf("get by username: %v", err)
	}
	byEmail, err := repo.GetByUsernameOrEmail(ctx, "", "chan@example.com")
	if err != nil || byEmail.ID != u.ID {
		t.Fatalf("get by email: %v", err)
	}

	if _, err := repo.GetByUsernameOrEmail(ctx, "nobody", "nobody@example.com"); !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserRepo_RefreshTokenRoundTrip(t *testing.T) {
	repo := NewUserRepo(setupDB(t))
	ctx := context.Background()
	u := seedUser(t, repo)

	if err := repo.UpdateRefreshToken(ctx, u.ID, "tok-1"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	got, _ := repo.GetByID(ctx, u.ID)
	if got.RefreshToken != "tok-1" {
		t.Fatalf("want tok-1 got %q", got.RefreshToken)
	}

	if err := repo.UpdateRefreshToken(ctx, u.ID, ""); err != nil {
		t.Fatalf("clear token: %v", err)
	}
	got, _ = repo.GetByID(ctx, u.ID)
	if got.RefreshToken != "" {
		t.Fatalf("token not cleared: %q", got.RefreshToken)
	}
}

func TestUserRepo_UpdateMissingUser(t *testing.T) {
	repo := NewUserRepo(setupDB(t))
	ctx := context.Background()

	if err := repo.UpdateRefreshToken(ctx, uuid.New(), "tok"); !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := repo.UpdatePassword(ctx, uuid.New(), "h"); !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserRepo_PartialUpdates(t *testing.T) {
	repo := NewUserRepo(setupDB(t))
	ctx := context.Background()
	u := seedUser(t, repo)

	if err := repo.UpdateAccount(ctx, u.ID, "New Name", "new@example.com"); err != nil {
		t.Fatalf("update account: %v", err)
	}
	if err := repo.UpdateAvatar(ctx, u.ID, "https://cdn/av.png", "av-key"); err != nil {
		t.Fatalf("update avatar: %v", err)
	}
	if err := repo.UpdateCoverImage(ctx, u.ID, "https://cdn/cv.png", "cv-key"); err != nil {
		t.Fatalf("update cover: %v", err)
	}

	got, _ := repo.GetByID(ctx, u.ID)
	if got.FullName != "New Name" || got.Email != "new@example.com" {
		t.Fatalf("account not updated: %+v", got)
	}
	if got.AvatarKey != "av-key" || got.CoverImageKey != "cv-key" {
		t.Fatalf("media keys not updated: %+v", got)
	}
	// untouched columns survive the partial writes
	if got.PasswordHash != "hash" {
		t.Fatalf("password hash clobbered: %q", got.PasswordHash)
	}
}
