package app

import (
	"context"
	"encoding/json"
	"strconv"
	"unicode/utf8"

	"hotel_site/internal/domain"
)

// Caller-facing messages. Provider error detail never leaves the server.
const (
	MsgOfferIDRequired = "offerId is required"
	MsgHotelIDRequired = "hotelId is required"

	MsgFetchBooking    = "Failed to fetch booking"
	MsgCancelBooking   = "Failed to cancel booking"
	MsgPrebook         = "Failed to prebook rate"
	MsgFetchCurrencies = "Failed to fetch currencies"
	MsgFetchHotel      = "Failed to fetch hotel details"
	MsgSearchPlaces    = "Failed to search places"
	MsgFetchReviews    = "Failed to fetch reviews"
)

const (
	DefaultReviewsLimit  = 10
	DefaultReviewsOffset = 0
	MinPlacesQueryLen    = 2
)

// EmptyPlaces is returned for place searches too short to send upstream.
var EmptyPlaces = json.RawMessage(`{"data":[]}`)

// BookingService is the thin layer between the proxy routes and the provider:
// presence checks, one provider call, error classification.
type BookingService struct {
	provider domain.Provider
}

func NewBookingService(p domain.Provider) *BookingService {
	return &BookingService{provider: p}
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (json.RawMessage, error) {
	out, err := s.provider.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, upstream(MsgFetchBooking, err)
	}
	return out, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, bookingID string) (json.RawMessage, error) {
	out, err := s.provider.CancelBooking(ctx, bookingID)
	if err != nil {
		return nil, upstream(MsgCancelBooking, err)
	}
	return out, nil
}

func (s *BookingService) Prebook(ctx context.Context, offerID string) (json.RawMessage, error) {
	if offerID == "" {
		return nil, invalid(MsgOfferIDRequired)
	}
	out, err := s.provider.PrebookRate(ctx, offerID)
	if err != nil {
		return nil, upstream(MsgPrebook, err)
	}
	return out, nil
}

func (s *BookingService) Currencies(ctx context.Context) (json.RawMessage, error) {
	out, err := s.provider.GetCurrencies(ctx)
	if err != nil {
		return nil, upstream(MsgFetchCurrencies, err)
	}
	return out, nil
}

func (s *BookingService) HotelDetails(ctx context.Context, hotelID string) (json.RawMessage, error) {
	out, err := s.provider.GetHotelDetails(ctx, hotelID)
	if err != nil {
		return nil, upstream(MsgFetchHotel, err)
	}
	return out, nil
}

// SearchPlaces answers short queries locally with an empty result set.
func (s *BookingService) SearchPlaces(ctx context.Context, text string) (json.RawMessage, error) {
	if utf8.RuneCountInString(text) < MinPlacesQueryLen {
		return EmptyPlaces, nil
	}
	out, err := s.provider.SearchPlaces(ctx, text)
	if err != nil {
		return nil, upstream(MsgSearchPlaces, err)
	}
	return out, nil
}

func (s *BookingService) Reviews(ctx context.Context, q domain.ReviewsQuery) (json.RawMessage, error) {
	if q.HotelID == "" {
		return nil, invalid(MsgHotelIDRequired)
	}
	out, err := s.provider.GetHotelReviews(ctx, q)
	if err != nil {
		return nil, upstream(MsgFetchReviews, err)
	}
	return out, nil
}

// NewReviewsQuery parses raw query values; a missing or non-numeric limit/offset
// falls back to its default.
func NewReviewsQuery(hotelID, limit, offset string) domain.ReviewsQuery {
	return domain.ReviewsQuery{
		HotelID: hotelID,
		Limit:   atoiOr(limit, DefaultReviewsLimit),
		Offset:  atoiOr(offset, DefaultReviewsOffset),
	}
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
