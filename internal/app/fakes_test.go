package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"hotel_site/internal/domain"
)

// ---- fakes ----

var errBoom = errors.New("provider exploded: secret upstream detail")

type fakeProvider struct {
	mu    sync.Mutex
	calls map[string]int
	err   error

	lastOfferID string
	lastReviews domain.ReviewsQuery
	lastText    string
	hotels      map[string]json.RawMessage
}

func (f *fakeProvider) hit(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[op]++
}

func (f *fakeProvider) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeProvider) result(v string) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(v), nil
}

func (f *fakeProvider) GetBooking(ctx context.Context, id string) (json.RawMessage, error) {
	f.hit("GetBooking")
	return f.result(`{"data":{"bookingId":"` + id + `"}}`)
}
func (f *fakeProvider) CancelBooking(ctx context.Context, id string) (json.RawMessage, error) {
	f.hit("CancelBooking")
	return f.result(`{"data":{"status":"CANCELLED"}}`)
}
func (f *fakeProvider) PrebookRate(ctx context.Context, offerID string) (json.RawMessage, error) {
	f.hit("PrebookRate")
	f.lastOfferID = offerID
	return f.result(`{"data":{"prebookId":"pb-1"}}`)
}
func (f *fakeProvider) GetCurrencies(ctx context.Context) (json.RawMessage, error) {
	f.hit("GetCurrencies")
	return f.result(`{"data":[{"code":"EUR"}]}`)
}
func (f *fakeProvider) GetHotelDetails(ctx context.Context, id string) (json.RawMessage, error) {
	f.hit("GetHotelDetails")
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if raw, ok := f.hotels[id]; ok {
		return raw, nil
	}
	return nil, domain.ErrNotFound
}
func (f *fakeProvider) SearchPlaces(ctx context.Context, text string) (json.RawMessage, error) {
	f.hit("SearchPlaces")
	f.lastText = text
	return f.result(`{"data":[{"placeId":"p1"}]}`)
}
func (f *fakeProvider) GetHotelReviews(ctx context.Context, q domain.ReviewsQuery) (json.RawMessage, error) {
	f.hit("GetHotelReviews")
	f.lastReviews = q
	return f.result(`{"data":[]}`)
}

type fakeStorage struct {
	recs    map[string][]byte
	saves   int
	loadErr error
	saveErr error
}

func (s *fakeStorage) Load(ctx context.Context, vid, ns string, dst any) (bool, error) {
	if s.loadErr != nil {
		return false, s.loadErr
	}
	b, ok := s.recs[ns+":"+vid]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (s *fakeStorage) Save(ctx context.Context, vid, ns string, v any) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	if s.recs == nil {
		s.recs = map[string][]byte{}
	}
	b, _ := json.Marshal(v)
	s.recs[ns+":"+vid] = b
	s.saves++
	return nil
}

type fakeCache struct {
	mu     sync.Mutex
	store  map[string]domain.HotelCard
	getErr error
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		// same shape as the redis adapter on a corrupt payload
		return true, c.getErr
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	*dst.(*domain.HotelCard) = v
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string]domain.HotelCard{}
	}
	c.store[key] = v.(domain.HotelCard)
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error { return nil }

type fakeDetector struct {
	code  string
	calls int
}

func (d *fakeDetector) DetectCurrency() (string, bool) {
	d.calls++
	return d.code, d.code != ""
}

func pfloat(f float64) *float64 { return &f }
