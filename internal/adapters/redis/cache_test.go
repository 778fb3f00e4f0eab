package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisad "hotel_site/internal/adapters/redis"
	"hotel_site/internal/domain"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGetDel(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	card := domain.HotelCard{ID: "lp1", Name: "Harbour View"}
	if err := c.Set(ctx, "hotel-card:lp1", card, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got domain.HotelCard
	ok, err := c.Get(ctx, "hotel-card:lp1", &got)
	if err != nil || !ok || got.Name != "Harbour View" {
		t.Fatalf("get: ok=%v err=%v got=%+v", ok, err, got)
	}

	mr.FastForward(61 * time.Second)
	ok, err = c.Get(ctx, "hotel-card:lp1", &got)
	if err != nil || ok {
		t.Fatalf("expected expiry, ok=%v err=%v", ok, err)
	}

	_ = c.Set(ctx, "k", 1, 60)
	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if mr.Exists("k") {
		t.Fatalf("key should be gone")
	}
}

func TestCache_StateHasNoExpiry(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	var pref domain.CurrencyPreference
	ok, err := c.Load(ctx, "v1", domain.NamespaceCurrency, &pref)
	if err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}

	want := domain.CurrencyPreference{Currency: "EUR", HasUserChoice: true}
	if err := c.Save(ctx, "v1", domain.NamespaceCurrency, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ttl := mr.TTL("state:currency-preference:v1"); ttl != 0 {
		t.Fatalf("state must not expire, ttl=%v", ttl)
	}

	mr.FastForward(365 * 24 * time.Hour)
	ok, err = c.Load(ctx, "v1", domain.NamespaceCurrency, &pref)
	if err != nil || !ok || pref != want {
		t.Fatalf("load: ok=%v err=%v pref=%+v", ok, err, pref)
	}

	// namespaces do not collide
	var rec domain.ConsentRecord
	if ok, _ := c.Load(ctx, "v1", domain.NamespaceConsent, &rec); ok {
		t.Fatalf("consent namespace should be empty")
	}
}
