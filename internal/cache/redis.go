package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/travelpro/config"
	"github.com/Domenick1991/travelpro/internal/repository"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client   *redis.Client
	draftTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, draftTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:   redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		draftTTL: draftTTL,
	}
}

// Get and Put let Redis act as the collection store. Collections never expire.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, collectionKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (c *RedisCache) Put(ctx context.Context, key string, value []byte) error {
	return c.client.Set(ctx, collectionKey(key), value, 0).Err()
}

func (c *RedisCache) GetDraft(ctx context.Context, key string) (string, bool, error) {
	text, err := c.client.Get(ctx, draftKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return text, true, nil
}

func (c *RedisCache) SetDraft(ctx context.Context, key, text string) error {
	return c.client.Set(ctx, draftKey(key), text, c.draftTTL).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func collectionKey(key string) string {
	return fmt.Sprintf("travelpro:%s", key)
}

func draftKey(key string) string {
	return fmt.Sprintf("travelpro:draft:%s", key)
}

var _ repository.KVRepository = (*RedisCache)(nil)
