package domain

import (
	"context"
	"encoding/json"
)

// Provider is the hotel-inventory service every booking and search call is delegated to.
// Payloads are relayed verbatim, so results stay raw JSON.
type Provider interface {
	GetBooking(ctx context.Context, bookingID string) (json.RawMessage, error)
	CancelBooking(ctx context.Context, bookingID string) (json.RawMessage, error)
	PrebookRate(ctx context.Context, offerID string) (json.RawMessage, error)
	GetCurrencies(ctx context.Context) (json.RawMessage, error)
	GetHotelDetails(ctx context.Context, hotelID string) (json.RawMessage, error)
	SearchPlaces(ctx context.Context, text string) (json.RawMessage, error)
	GetHotelReviews(ctx context.Context, q ReviewsQuery) (json.RawMessage, error)
}

// StateStorage is the durable home of per-visitor state records.
// Each record lives under its own namespace; Load reports false when nothing was saved yet.
type StateStorage interface {
	Load(ctx context.Context, visitorID, namespace string, dst any) (bool, error)
	Save(ctx context.Context, visitorID, namespace string, v any) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// CurrencyDetector guesses a currency from the browser locale.
type CurrencyDetector interface {
	DetectCurrency() (string, bool)
}

type ReviewsQuery struct {
	HotelID string
	Limit   int
	Offset  int
}
