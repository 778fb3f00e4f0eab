package app

import (
	"context"
	"fmt"

	"hotel_site/internal/domain"
)

// Stores hands out per-visitor state containers. Each container loads once from
// storage and saves after every mutation.
type Stores struct {
	storage         domain.StateStorage
	defaultCurrency string
}

func NewStores(st domain.StateStorage, defaultCurrency string) *Stores {
	return &Stores{storage: st, defaultCurrency: defaultCurrency}
}

// Fallback is the state a visitor with nothing stored starts from.
func (s *Stores) Fallback() (domain.CurrencyPreference, domain.Consent) {
	return domain.CurrencyPreference{Currency: s.defaultCurrency}, domain.ConsentUndecided
}

func (s *Stores) Currency(ctx context.Context, visitorID string) (*CurrencyStore, error) {
	cs := &CurrencyStore{storage: s.storage, visitor: visitorID}
	ok, err := s.storage.Load(ctx, visitorID, domain.NamespaceCurrency, &cs.state)
	if err != nil {
		return nil, fmt.Errorf("load currency preference: %w", err)
	}
	if !ok || cs.state.Currency == "" {
		cs.state = domain.CurrencyPreference{Currency: s.defaultCurrency}
	}
	return cs, nil
}

func (s *Stores) Consent(ctx context.Context, visitorID string) (*ConsentStore, error) {
	var rec domain.ConsentRecord
	ok, err := s.storage.Load(ctx, visitorID, domain.NamespaceConsent, &rec)
	if err != nil {
		return nil, fmt.Errorf("load cookie consent: %w", err)
	}
	if !ok || rec.Consent == "" {
		rec.Consent = domain.ConsentUndecided
	}
	return &ConsentStore{storage: s.storage, visitor: visitorID, state: rec}, nil
}

// ---- currency ----

type CurrencyStore struct {
	storage domain.StateStorage
	visitor string
	state   domain.CurrencyPreference
}

func (c *CurrencyStore) State() domain.CurrencyPreference { return c.state }

// SetCurrency records an explicit choice. Detection never overrides it afterwards.
func (c *CurrencyStore) SetCurrency(ctx context.Context, code string) error {
	c.state = domain.CurrencyPreference{Currency: code, HasUserChoice: true}
	return c.save(ctx)
}

// InitCurrencyFromBrowser applies a detected currency unless the visitor already chose one.
// The detected value is not an explicit choice, so later detection may still replace it.
func (c *CurrencyStore) InitCurrencyFromBrowser(ctx context.Context, d domain.CurrencyDetector) error {
	next, changed := ApplyDetectedCurrency(c.state, d)
	if !changed {
		return nil
	}
	c.state = next
	return c.save(ctx)
}

// ApplyDetectedCurrency is the detection rule without persistence: pref gets the detected
// currency unless it holds an explicit choice. changed is false when nothing would move.
func ApplyDetectedCurrency(pref domain.CurrencyPreference, d domain.CurrencyDetector) (domain.CurrencyPreference, bool) {
	if pref.HasUserChoice || d == nil {
		return pref, false
	}
	code, ok := d.DetectCurrency()
	if !ok || code == "" || code == pref.Currency {
		return pref, false
	}
	pref.Currency = code
	return pref, true
}

func (c *CurrencyStore) save(ctx context.Context) error {
	if err := c.storage.Save(ctx, c.visitor, domain.NamespaceCurrency, c.state); err != nil {
		return fmt.Errorf("save currency preference: %w", err)
	}
	return nil
}

// ---- cookie consent ----

// ConsentStore moves from undecided to accepted or rejected. There is no way back to undecided.
type ConsentStore struct {
	storage domain.StateStorage
	visitor string
	state   domain.ConsentRecord
}

func (c *ConsentStore) State() domain.Consent { return c.state.Consent }

func (c *ConsentStore) AcceptAll(ctx context.Context) error {
	return c.set(ctx, domain.ConsentAccepted)
}

func (c *ConsentStore) RejectAll(ctx context.Context) error {
	return c.set(ctx, domain.ConsentRejected)
}

func (c *ConsentStore) set(ctx context.Context, v domain.Consent) error {
	c.state.Consent = v
	if err := c.storage.Save(ctx, c.visitor, domain.NamespaceConsent, c.state); err != nil {
		return fmt.Errorf("save cookie consent: %w", err)
	}
	return nil
}

// ---- legal modal ----

// LegalModal tracks which legal modal is open. It is never persisted.
type LegalModal struct {
	kind domain.ModalKind
}

func NewLegalModal() *LegalModal { return &LegalModal{kind: domain.ModalNone} }

func (m *LegalModal) Open(kind domain.ModalKind) { m.kind = kind }

func (m *LegalModal) Close() { m.kind = domain.ModalNone }

func (m *LegalModal) Current() domain.ModalKind { return m.kind }

func (m *LegalModal) IsOpen() bool { return m.kind != domain.ModalNone && m.kind != "" }
