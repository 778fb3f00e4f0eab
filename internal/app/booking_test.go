package app_test

import (
	"context"
	"errors"
	"testing"

	"hotel_site/internal/app"
	"hotel_site/internal/domain"
)

func asAppErr(t *testing.T, err error) *app.Error {
	t.Helper()
	var ae *app.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *app.Error, got %T (%v)", err, err)
	}
	return ae
}

func TestPrebook_RequiresOfferID(t *testing.T) {
	p := &fakeProvider{}
	svc := app.NewBookingService(p)

	_, err := svc.Prebook(context.Background(), "")
	ae := asAppErr(t, err)
	if ae.Kind != app.KindInvalid || ae.Msg != "offerId is required" {
		t.Fatalf("unexpected error %+v", ae)
	}
	if p.count("PrebookRate") != 0 {
		t.Fatalf("provider must not be called")
	}

	if _, err := svc.Prebook(context.Background(), "offer-1"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.lastOfferID != "offer-1" {
		t.Fatalf("offer id not forwarded: %q", p.lastOfferID)
	}
}

func TestSearchPlaces_ShortTextSkipsProvider(t *testing.T) {
	p := &fakeProvider{}
	svc := app.NewBookingService(p)

	for _, text := range []string{"", "a", "é"} {
		out, err := svc.SearchPlaces(context.Background(), text)
		if err != nil {
			t.Fatalf("%q: unexpected err %v", text, err)
		}
		if string(out) != `{"data":[]}` {
			t.Fatalf("%q: unexpected body %s", text, out)
		}
	}
	if p.count("SearchPlaces") != 0 {
		t.Fatalf("provider must not be called for short text")
	}

	if _, err := svc.SearchPlaces(context.Background(), "Pa"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.count("SearchPlaces") != 1 || p.lastText != "Pa" {
		t.Fatalf("expected one provider call with Pa, got %d %q", p.count("SearchPlaces"), p.lastText)
	}
}

func TestReviews_RequiresHotelID(t *testing.T) {
	p := &fakeProvider{}
	svc := app.NewBookingService(p)

	_, err := svc.Reviews(context.Background(), domain.ReviewsQuery{Limit: 10})
	ae := asAppErr(t, err)
	if ae.Kind != app.KindInvalid || ae.Msg != "hotelId is required" {
		t.Fatalf("unexpected error %+v", ae)
	}
	if p.count("GetHotelReviews") != 0 {
		t.Fatalf("provider must not be called")
	}
}

func TestNewReviewsQuery(t *testing.T) {
	cases := []struct {
		limit, offset string
		want          domain.ReviewsQuery
	}{
		{"5", "10", domain.ReviewsQuery{HotelID: "h", Limit: 5, Offset: 10}},
		{"", "", domain.ReviewsQuery{HotelID: "h", Limit: 10, Offset: 0}},
		{"abc", "-", domain.ReviewsQuery{HotelID: "h", Limit: 10, Offset: 0}},
	}
	for _, tc := range cases {
		if got := app.NewReviewsQuery("h", tc.limit, tc.offset); got != tc.want {
			t.Errorf("NewReviewsQuery(%q,%q) = %+v want %+v", tc.limit, tc.offset, got, tc.want)
		}
	}
}

func TestUpstreamErrors_AreFlattened(t *testing.T) {
	p := &fakeProvider{err: errBoom}
	svc := app.NewBookingService(p)
	ctx := context.Background()

	calls := []struct {
		name string
		call func() error
		msg  string
	}{
		{"booking", func() error { _, err := svc.GetBooking(ctx, "b1"); return err }, app.MsgFetchBooking},
		{"cancel", func() error { _, err := svc.CancelBooking(ctx, "b1"); return err }, app.MsgCancelBooking},
		{"prebook", func() error { _, err := svc.Prebook(ctx, "o1"); return err }, app.MsgPrebook},
		{"currencies", func() error { _, err := svc.Currencies(ctx); return err }, app.MsgFetchCurrencies},
		{"hotel", func() error { _, err := svc.HotelDetails(ctx, "h1"); return err }, app.MsgFetchHotel},
		{"places", func() error { _, err := svc.SearchPlaces(ctx, "Paris"); return err }, app.MsgSearchPlaces},
		{"reviews", func() error {
			_, err := svc.Reviews(ctx, domain.ReviewsQuery{HotelID: "h1", Limit: 10})
			return err
		}, app.MsgFetchReviews},
	}
	for _, c := range calls {
		ae := asAppErr(t, c.call())
		if ae.Kind != app.KindUpstream || ae.Msg != c.msg {
			t.Errorf("%s: unexpected error %+v", c.name, ae)
		}
		if !errors.Is(ae, errBoom) {
			t.Errorf("%s: cause must stay reachable for logging", c.name)
		}
	}
}
