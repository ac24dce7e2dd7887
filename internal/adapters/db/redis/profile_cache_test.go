package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/vidtube/user-service/internal/domain/user/model"
)

func newCache(t *testing.T) (*ProfileCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	t.Cleanup(mr.Close)

	client := redisv9.NewClient(&redisv9.Options{
		Addr: mr.Addr(),
	})
	return NewProfileCache(client, time.Minute), mr
}

func TestProfileCache_SetGet(t *testing.T) {
	cache, _ := newCache(t)
	ctx := context.Background()

	view := model.PublicUser{ID: uuid.New(), Username: "u1", Email: "u1@example.com"}
	if err := cache.Set(ctx, view); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := cache.Get(ctx, view.ID)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Username != "u1" {
		t.Fatalf("want u1 got %s", got.Username)
	}
}

func TestProfileCache_MissOnAbsentKey(t *testing.T) {
	cache, _ := newCache(t)

	_, ok, err := cache.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if ok {
		t.Fatal("absent key must be a miss")
	}
}

func TestProfileCache_Invalidate(t *testing.T) {
	cache, _ := newCache(t)
	ctx := context.Background()

	view := model.PublicUser{ID: uuid.New(), Username: "u2"}
	if err := cache.Set(ctx, view); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := cache.Invalidate(ctx, view.ID); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	_, ok, _ := cache.Get(ctx, view.ID)
	if ok {
		t.Fatal("invalidated key must be a miss")
	}
}

func TestProfileCache_CorruptEntryIsMiss(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()

	id := uuid.New()
	mr.Set("profile:"+id.String(), "{not json")

	_, ok, err := cache.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if ok {
		t.Fatal("corrupt entry must be a miss")
	}
}
