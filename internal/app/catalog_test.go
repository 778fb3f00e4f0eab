package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hotel_site/internal/app"
	"hotel_site/internal/domain"
)

func TestCard_CacheMissThenHit(t *testing.T) {
	p := &fakeProvider{hotels: map[string]json.RawMessage{
		"lp1": json.RawMessage(`{"data":{"name":"Harbour View","city":"Lisbon","country":"pt","starRating":4,"rating":"8.7","reviewCount":120,"hotelImages":[{"url":"https://img/1.jpg"}]}}`),
	}}
	cache := &fakeCache{}
	svc := app.NewCatalogService(p, cache, 10*time.Minute)

	card, err := svc.Card(context.Background(), "lp1")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if card.Name != "Harbour View" || card.City != "Lisbon" || card.Country != "PT" {
		t.Fatalf("unexpected card %+v", card)
	}
	if card.Stars == nil || *card.Stars != 4 || card.Rating == nil || *card.Rating != 8.7 {
		t.Fatalf("unexpected numbers %+v", card)
	}
	if card.Reviews != 120 || card.PhotoURL != "https://img/1.jpg" {
		t.Fatalf("unexpected extras %+v", card)
	}

	// second read is served from cache
	p.hotels["lp1"] = json.RawMessage(`{"data":{"name":"SHOULD NOT SEE THIS"}}`)
	again, _ := svc.Card(context.Background(), "lp1")
	if again.Name != "Harbour View" {
		t.Fatalf("expected cached name, got %s", again.Name)
	}
	if p.count("GetHotelDetails") != 1 {
		t.Fatalf("expected one provider call, got %d", p.count("GetHotelDetails"))
	}
}

func TestCard_UnreadableCacheEntryIsRefetched(t *testing.T) {
	p := &fakeProvider{hotels: map[string]json.RawMessage{"lp1": json.RawMessage(`{"data":{"name":"Fresh"}}`)}}
	cache := &fakeCache{getErr: errors.New("unexpected end of JSON input")}
	svc := app.NewCatalogService(p, cache, time.Minute)

	card, err := svc.Card(context.Background(), "lp1")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if card.Name != "Fresh" {
		t.Fatalf("expected provider card, got %+v", card)
	}
	if p.count("GetHotelDetails") != 1 {
		t.Fatalf("expected a provider call, got %d", p.count("GetHotelDetails"))
	}
	if got := cache.store["hotel-card:lp1"]; got.Name != "Fresh" {
		t.Fatalf("cache entry not rewritten: %+v", got)
	}
}

func TestCard_NilCache(t *testing.T) {
	p := &fakeProvider{hotels: map[string]json.RawMessage{"x": json.RawMessage(`{"name":"Bare"}`)}}
	svc := app.NewCatalogService(p, nil, time.Minute)
	card, err := svc.Card(context.Background(), "x")
	if err != nil || card.Name != "Bare" {
		t.Fatalf("card=%+v err=%v", card, err)
	}
}

func TestFeatured_MergesAndFallsBack(t *testing.T) {
	p := &fakeProvider{hotels: map[string]json.RawMessage{
		"live": json.RawMessage(`{"data":{"name":"Live Name","rating":9.1}}`),
		"bad":  json.RawMessage(`{"data":{}}`),
	}}
	svc := app.NewCatalogService(p, &fakeCache{}, time.Minute)

	editorial := []domain.HotelCard{
		{ID: "live", Name: "Editorial Name", Badge: "Deal", FromRate: pfloat(120)},
		{ID: "missing", Name: "Missing Hotel"},
		{ID: "bad", Name: "Nameless Upstream"},
		{Name: "No id"},
	}
	got := svc.Featured(context.Background(), editorial)

	if len(got) != 4 {
		t.Fatalf("expected 4 cards, got %d", len(got))
	}
	if got[0].Name != "Live Name" || got[0].Badge != "Deal" || got[0].FromRate == nil || *got[0].Rating != 9.1 {
		t.Fatalf("live card not merged: %+v", got[0])
	}
	if got[1].Name != "Missing Hotel" || got[2].Name != "Nameless Upstream" || got[3].Name != "No id" {
		t.Fatalf("fallbacks not kept in order: %+v", got)
	}
	if editorial[0].Name != "Editorial Name" {
		t.Fatalf("input slice must not be mutated")
	}
}
