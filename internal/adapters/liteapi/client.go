// internal/adapters/liteapi/client.go
package liteapi

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotel_site/internal/adapters/observability"
	"hotel_site/internal/domain"
)

const maxBody = 8 << 20

type Client struct {
	dataBase string
	bookBase string
	hc       *http.Client
	key      string
	rl       *rate.Limiter
}

// New builds a provider client. dataBase serves static content (hotels, places, reviews,
// currencies); bookBase serves the booking flow (prebook, bookings).
func New(dataBase, bookBase, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		dataBase: strings.TrimRight(dataBase, "/"),
		bookBase: strings.TrimRight(bookBase, "/"),
		hc:       &http.Client{Timeout: 20 * time.Second},
		key:      key,
		rl:       rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Booking flow ----

func (c *Client) GetBooking(ctx context.Context, bookingID string) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/bookings/%s", c.bookBase, url.PathEscape(bookingID))
	return c.do(ctx, "booking", http.MethodGet, u, nil)
}

func (c *Client) CancelBooking(ctx context.Context, bookingID string) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/bookings/%s", c.bookBase, url.PathEscape(bookingID))
	return c.do(ctx, "booking_cancel", http.MethodPut, u, nil)
}

func (c *Client) PrebookRate(ctx context.Context, offerID string) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]any{"offerId": offerID})
	if err != nil {
		return nil, err
	}
	return c.do(ctx, "prebook", http.MethodPost, c.bookBase+"/rates/prebook", body)
}

// ---- Static data ----

func (c *Client) GetCurrencies(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "currencies", http.MethodGet, c.dataBase+"/data/currencies", nil)
}

func (c *Client) GetHotelDetails(ctx context.Context, hotelID string) (json.RawMessage, error) {
	q := url.Values{"hotelId": {hotelID}}
	return c.do(ctx, "hotel", http.MethodGet, c.dataBase+"/data/hotel?"+q.Encode(), nil)
}

func (c *Client) SearchPlaces(ctx context.Context, text string) (json.RawMessage, error) {
	q := url.Values{"textQuery": {text}}
	return c.do(ctx, "places", http.MethodGet, c.dataBase+"/data/places?"+q.Encode(), nil)
}

func (c *Client) GetHotelReviews(ctx context.Context, rq domain.ReviewsQuery) (json.RawMessage, error) {
	q := url.Values{
		"hotelId": {rq.HotelID},
		"limit":   {strconv.Itoa(rq.Limit)},
		"offset":  {strconv.Itoa(rq.Offset)},
	}
	return c.do(ctx, "reviews", http.MethodGet, c.dataBase+"/data/reviews?"+q.Encode(), nil)
}

// ---- Internals ----

// do sends one request with client-side rate limiting and returns the raw JSON body.
// Only GETs are retried (429 and transient 5xx, honoring Retry-After); a prebook or
// cancellation is never sent twice.
func (c *Client) do(ctx context.Context, endpoint, method, u string, body []byte) (json.RawMessage, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	attempts := 1
	if method == http.MethodGet {
		attempts = 4
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		// build a fresh request each attempt
		var rdr io.Reader
		if body != nil {
			rdr = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, rdr)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-API-Key", c.key)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "hotel-site/1.0")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveProvider(endpoint, 0, time.Since(start))
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			if i < attempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, lastErr
		}
		observability.ObserveProvider(endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusAccepted:
			raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
			resp.Body.Close()
			if err != nil {
				return nil, err
			}
			if !json.Valid(raw) {
				return nil, fmt.Errorf("%s: provider returned invalid JSON", endpoint)
			}
			return json.RawMessage(raw), nil

		case http.StatusNoContent:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return json.RawMessage(`{}`), nil

		case http.StatusNotFound:
			resp.Body.Close()
			return nil, domain.ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return nil, domain.ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return nil, domain.ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("%s: remote %d", endpoint, resp.StatusCode)
			if i < attempts-1 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, lastErr

		default:
			// read a small error body for diagnostics
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return nil, fmt.Errorf("%s: bad status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	if lastErr == nil {
		lastErr = errors.New("no attempt succeeded")
	}
	return nil, lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns 200ms, 400ms, 800ms... plus up to 50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
