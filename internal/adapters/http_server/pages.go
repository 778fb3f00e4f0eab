package httpserver

import (
	"bytes"
	"net/http"

	"github.com/rs/zerolog/log"

	"hotel_site/internal/app"
	"hotel_site/internal/domain"
	"hotel_site/internal/site"
)

// home renders the landing page. Storage trouble degrades to the defaults instead of failing the page.
// A visitor without a cookie gets the detected currency on the page only; nothing is stored for them
// until they call one of the preference routes or come back with the cookie.
func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	ctx, vid := r.Context(), VisitorID(r)
	acceptLang := r.Header.Get("Accept-Language")
	detector := h.Detector.FromAcceptLanguage(acceptLang)
	pref, consent := h.Stores.Fallback()

	if IsNewVisitor(r) {
		pref, _ = app.ApplyDetectedCurrency(pref, detector)
	} else {
		pref, consent = h.knownVisitorState(r, vid, detector, pref, consent)
	}

	modal := app.NewLegalModal()
	if kind := domain.ParseModalKind(r.URL.Query().Get("legal")); kind != domain.ModalNone {
		modal.Open(kind)
	}

	featured := h.Catalog.Featured(ctx, h.Content.Featured.Hotels)
	page := site.BuildHome(h.Content, featured, pref, consent, modal.Current(), site.PreferredTag(acceptLang))

	var buf bytes.Buffer
	if err := h.Pages.Home(&buf, page); err != nil {
		log.Error().Err(err).Msg("render home page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Vary", "Accept-Language, Cookie")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("write home page")
	}
}

func (h *Handlers) knownVisitorState(r *http.Request, vid string, detector domain.CurrencyDetector,
	pref domain.CurrencyPreference, consent domain.Consent) (domain.CurrencyPreference, domain.Consent) {
	ctx := r.Context()
	if cur, err := h.Stores.Currency(ctx, vid); err != nil {
		log.Warn().Err(err).Str("visitor", vid).Msg("home: currency preference unavailable")
	} else {
		if err := cur.InitCurrencyFromBrowser(ctx, detector); err != nil {
			log.Warn().Err(err).Str("visitor", vid).Msg("home: detected currency not saved")
		}
		pref = cur.State()
	}
	if cs, err := h.Stores.Consent(ctx, vid); err != nil {
		log.Warn().Err(err).Str("visitor", vid).Msg("home: cookie consent unavailable")
	} else {
		consent = cs.State()
	}
	return pref, consent
}
