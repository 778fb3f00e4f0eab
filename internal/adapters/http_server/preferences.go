package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_site/internal/domain"
)

const (
	msgCurrencyRequired    = "currency is required"
	msgCurrencyUnsupported = "currency is not supported"
	msgLoadPreferences     = "Failed to load preferences"
	msgSavePreferences     = "Failed to save preferences"
)

type preferencesResponse struct {
	Currency      string         `json:"currency"`
	HasUserChoice bool           `json:"hasUserChoice"`
	Consent       domain.Consent `json:"consent"`
}

type consentResponse struct {
	Consent domain.Consent `json:"consent"`
}

func storageFailure(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log.Error().Err(err).Str("path", r.URL.Path).Str("visitor", VisitorID(r)).Msg(msg)
	writeError(w, http.StatusInternalServerError, msg)
}

func (h *Handlers) getPreferences(w http.ResponseWriter, r *http.Request) {
	ctx, vid := r.Context(), VisitorID(r)
	cur, err := h.Stores.Currency(ctx, vid)
	if err != nil {
		storageFailure(w, r, err, msgLoadPreferences)
		return
	}
	consent, err := h.Stores.Consent(ctx, vid)
	if err != nil {
		storageFailure(w, r, err, msgLoadPreferences)
		return
	}
	pref := cur.State()
	writeJSON(w, http.StatusOK, preferencesResponse{
		Currency:      pref.Currency,
		HasUserChoice: pref.HasUserChoice,
		Consent:       consent.State(),
	})
}

type setCurrencyRequest struct {
	Currency string `json:"currency"`
}

func (h *Handlers) setCurrency(w http.ResponseWriter, r *http.Request) {
	var req setCurrencyRequest
	_ = json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
	if strings.TrimSpace(req.Currency) == "" {
		writeError(w, http.StatusBadRequest, msgCurrencyRequired)
		return
	}
	code, ok := h.Detector.Normalize(req.Currency)
	if !ok {
		writeError(w, http.StatusBadRequest, msgCurrencyUnsupported)
		return
	}

	ctx := r.Context()
	cur, err := h.Stores.Currency(ctx, VisitorID(r))
	if err != nil {
		storageFailure(w, r, err, msgLoadPreferences)
		return
	}
	if err := cur.SetCurrency(ctx, code); err != nil {
		storageFailure(w, r, err, msgSavePreferences)
		return
	}
	writeJSON(w, http.StatusOK, cur.State())
}

func (h *Handlers) detectCurrency(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cur, err := h.Stores.Currency(ctx, VisitorID(r))
	if err != nil {
		storageFailure(w, r, err, msgLoadPreferences)
		return
	}
	if err := cur.InitCurrencyFromBrowser(ctx, h.Detector.FromAcceptLanguage(r.Header.Get("Accept-Language"))); err != nil {
		storageFailure(w, r, err, msgSavePreferences)
		return
	}
	writeJSON(w, http.StatusOK, cur.State())
}

func (h *Handlers) getConsent(w http.ResponseWriter, r *http.Request) {
	consent, err := h.Stores.Consent(r.Context(), VisitorID(r))
	if err != nil {
		storageFailure(w, r, err, msgLoadPreferences)
		return
	}
	writeJSON(w, http.StatusOK, consentResponse{Consent: consent.State()})
}

func (h *Handlers) acceptConsent(w http.ResponseWriter, r *http.Request) {
	h.decideConsent(w, r, true)
}

func (h *Handlers) rejectConsent(w http.ResponseWriter, r *http.Request) {
	h.decideConsent(w, r, false)
}

func (h *Handlers) decideConsent(w http.ResponseWriter, r *http.Request, accept bool) {
	ctx := r.Context()
	consent, err := h.Stores.Consent(ctx, VisitorID(r))
	if err != nil {
		storageFailure(w, r, err, msgLoadPreferences)
		return
	}
	if accept {
		err = consent.AcceptAll(ctx)
	} else {
		err = consent.RejectAll(ctx)
	}
	if err != nil {
		storageFailure(w, r, err, msgSavePreferences)
		return
	}
	writeJSON(w, http.StatusOK, consentResponse{Consent: consent.State()})
}
