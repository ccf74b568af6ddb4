package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quickcourt/courtbooking/config"
	"github.com/quickcourt/courtbooking/internal/domain"
)

type RedisCache struct {
	client    *redis.Client
	venuesTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, venuesTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		venuesTTL: venuesTTL,
	}
}

func (c *RedisCache) GetVenues(ctx context.Context) ([]domain.Facility, error) {
	data, err := c.client.Get(ctx, venuesKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var venues []domain.Facility
	if err := json.Unmarshal(data, &venues); err != nil {
		return nil, err
	}
	return venues, nil
}

func (c *RedisCache) SetVenues(ctx context.Context, venues []domain.Facility) error {
	payload, err := json.Marshal(venues)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, venuesKey(), payload, c.venuesTTL).Err()
}

// AcquireSlotLock takes a best-effort hold on a court interval while the
// transactional create runs. The database transaction remains the actual
// guarantee; this only narrows the window under concurrent load.
func (c *RedisCache) AcquireSlotLock(ctx context.Context, courtID int64, date string, start, end domain.TimeOfDay, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, slotLockKey(courtID, date, start, end), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseSlotLock(ctx context.Context, courtID int64, date string, start, end domain.TimeOfDay) error {
	return c.client.Del(ctx, slotLockKey(courtID, date, start, end)).Err()
}

func venuesKey() string {
	return "cache:venues"
}

func slotLockKey(courtID int64, date string, start, end domain.TimeOfDay) string {
	return fmt.Sprintf("lock:court:%d:%s:%s-%s", courtID, date, start, end)
}
