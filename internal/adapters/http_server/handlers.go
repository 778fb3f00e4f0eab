package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_site/internal/adapters/locale"
	"hotel_site/internal/app"
	"hotel_site/internal/site"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	Booking  *app.BookingService
	Stores   *app.Stores
	Catalog  *app.CatalogService
	Detector *locale.Detector
	Content  *site.Content
	Pages    *site.Renderer
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Handle("/static/*", site.Static())
	s.mux.Get("/", h.home)

	s.mux.Route("/api", func(r chi.Router) {
		r.Get("/booking/{bookingId}", h.getBooking)
		r.Put("/booking/{bookingId}", h.cancelBooking)
		r.Post("/booking/prebook", h.prebook)
		r.Get("/currencies", h.currencies)
		r.Get("/hotels/{hotelId}", h.hotelDetails)
		r.Get("/places", h.places)
		r.Get("/reviews", h.reviews)

		r.Get("/preferences", h.getPreferences)
		r.Put("/preferences/currency", h.setCurrency)
		r.Post("/preferences/currency/detect", h.detectCurrency)
		r.Get("/consent", h.getConsent)
		r.Post("/consent/accept", h.acceptConsent)
		r.Post("/consent/reject", h.rejectConsent)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeRaw passes a provider body through unchanged.
func writeRaw(w http.ResponseWriter, status int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("write proxied body failed")
	}
}

// writeCacheable is writeRaw with a weak ETag so clients can revalidate read-only lookups.
func writeCacheable(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	w.Header().Set("ETag", etag)
	if etagMatches(r.Header.Values("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeRaw(w, http.StatusOK, body)
}

// etagMatches applies If-None-Match weak comparison: "*" or any listed tag equal to etag
// once the W/ prefixes are dropped.
func etagMatches(headers []string, etag string) bool {
	want := strings.TrimPrefix(etag, "W/")
	for _, h := range headers {
		for _, tag := range strings.Split(h, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "*" || strings.TrimPrefix(tag, "W/") == want {
				return true
			}
		}
	}
	return false
}

// writeAppError maps service errors onto 400/500. Only the static message is sent;
// the cause goes to the log.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	var ae *app.Error
	if !errors.As(err, &ae) {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("unclassified handler error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if ae.Kind == app.KindInvalid {
		writeError(w, http.StatusBadRequest, ae.Msg)
		return
	}
	log.Error().Err(ae.Err).Str("path", r.URL.Path).Msg(ae.Msg)
	writeError(w, http.StatusInternalServerError, ae.Msg)
}

// ---- booking proxy ----

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	out, err := h.Booking.GetBooking(r.Context(), chi.URLParam(r, "bookingId"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeRaw(w, http.StatusOK, out)
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	out, err := h.Booking.CancelBooking(r.Context(), chi.URLParam(r, "bookingId"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeRaw(w, http.StatusOK, out)
}

type prebookRequest struct {
	OfferID string `json:"offerId"`
}

func (h *Handlers) prebook(w http.ResponseWriter, r *http.Request) {
	var req prebookRequest
	// an unreadable body counts as a missing offerId
	_ = json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
	out, err := h.Booking.Prebook(r.Context(), req.OfferID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeRaw(w, http.StatusOK, out)
}

func (h *Handlers) currencies(w http.ResponseWriter, r *http.Request) {
	out, err := h.Booking.Currencies(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeCacheable(w, r, out)
}

func (h *Handlers) hotelDetails(w http.ResponseWriter, r *http.Request) {
	out, err := h.Booking.HotelDetails(r.Context(), chi.URLParam(r, "hotelId"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeCacheable(w, r, out)
}

func (h *Handlers) places(w http.ResponseWriter, r *http.Request) {
	out, err := h.Booking.SearchPlaces(r.Context(), r.URL.Query().Get("text"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeRaw(w, http.StatusOK, out)
}

func (h *Handlers) reviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.Booking.Reviews(r.Context(), app.NewReviewsQuery(q.Get("hotelId"), q.Get("limit"), q.Get("offset")))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeCacheable(w, r, out)
}
