package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/vidtube/user-service/internal/domain/user/model"
)

type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	return &ProfileCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *ProfileCache) Get(ctx context.Context, id uuid.UUID) (model.PublicUser, bool, error) {
	raw, err := c.client.Get(ctx, key(id)).Result()
	switch {
	case err == redis.Nil:
		return model.PublicUser{}, false, nil
	case err != nil:
		return model.PublicUser{}, false, err
	}

	var view model.PublicUser
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		// corrupt entry, drop it and report a miss
		_ = c.client.Del(ctx, key(id)).Err()
		return model.PublicUser{}, false, nil
	}
	return view, true, nil
}

func (c *ProfileCache) Set(ctx context.Context, u model.PublicUser) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(u.ID), raw, c.ttl).Err()
}

func (c *ProfileCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, key(id)).Err()
}

func key(id uuid.UUID) string {
	return "profile:" + id.String()
}
