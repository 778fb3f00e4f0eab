package redisad

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"hotel_site/internal/adapters/observability"
)

// Cache is both the short-lived cache for hotel cards and the durable
// store for visitor state (state keys carry no TTL).
type Cache struct{ c *redis.Client }

func New(addr, pass string, db int) *Cache {
	return &Cache{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func NewFromClient(c *redis.Client) *Cache { return &Cache{c: c} }

func (r *Cache) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

func (r *Cache) Close() error { return r.c.Close() }

func (r *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observability.ObserveCache("redis", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	observability.ObserveCache("redis", "hit")
	return true, json.Unmarshal(v, dst)
}

func (r *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache("redis", "set")
	return r.c.Set(ctx, key, b, time.Duration(ttlSec)*time.Second).Err()
}

func (r *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache("redis", "del")
	return r.c.Del(ctx, key).Err()
}

func stateKey(visitorID, namespace string) string {
	return "state:" + namespace + ":" + visitorID
}

func (r *Cache) Load(ctx context.Context, visitorID, namespace string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, stateKey(visitorID, namespace)).Bytes()
	if err == redis.Nil {
		observability.ObserveState("redis", namespace, "miss")
		return false, nil
	}
	if err != nil {
		observability.ObserveState("redis", namespace, "error")
		return false, err
	}
	observability.ObserveState("redis", namespace, "hit")
	return true, json.Unmarshal(v, dst)
}

func (r *Cache) Save(ctx context.Context, visitorID, namespace string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	// 0 = no expiry; visitor state lives until cleared.
	if err := r.c.Set(ctx, stateKey(visitorID, namespace), b, 0).Err(); err != nil {
		observability.ObserveState("redis", namespace, "error")
		return err
	}
	observability.ObserveState("redis", namespace, "save")
	return nil
}
