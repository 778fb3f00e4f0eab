package domain

// Storage namespaces for persisted visitor state.
const (
	NamespaceCurrency = "currency-preference"
	NamespaceConsent  = "cookie-consent"
)

type CurrencyPreference struct {
	Currency      string `json:"currency"`
	HasUserChoice bool   `json:"hasUserChoice"`
}

type Consent string

const (
	ConsentUndecided Consent = "undecided"
	ConsentAccepted  Consent = "accepted"
	ConsentRejected  Consent = "rejected"
)

// ConsentRecord is the persisted shape of the cookie-consent choice.
type ConsentRecord struct {
	Consent Consent `json:"consent"`
}

type ModalKind string

const (
	ModalNone    ModalKind = "none"
	ModalPrivacy ModalKind = "privacy"
	ModalTerms   ModalKind = "terms"
	ModalHelp    ModalKind = "help"
	ModalCookies ModalKind = "cookies"
)

// ParseModalKind maps a query value onto a modal; anything unknown is ModalNone.
func ParseModalKind(s string) ModalKind {
	switch k := ModalKind(s); k {
	case ModalPrivacy, ModalTerms, ModalHelp, ModalCookies:
		return k
	}
	return ModalNone
}
