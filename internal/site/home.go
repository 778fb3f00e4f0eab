package site

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"golang.org/x/text/language"

	"hotel_site/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Static serves the embedded CSS and JS under /static/.
func Static() http.Handler {
	sub, _ := fs.Sub(staticFS, "static")
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// SectionOrder is the fixed top-to-bottom order of the home page.
var SectionOrder = []string{"hero", "search", "featured", "promotions", "testimonials", "newsletter"}

// HomePage is the view model for "/".
type HomePage struct {
	Lang     language.Tag
	Sections []string
	Content  *Content
	Featured []domain.HotelCard
	Currency domain.CurrencyPreference
	Consent  domain.Consent
	Modal    domain.ModalKind
	Legal    *LegalDoc
}

func (p HomePage) ShowCookieBanner() bool { return p.Consent == domain.ConsentUndecided }

func BuildHome(c *Content, featured []domain.HotelCard, pref domain.CurrencyPreference,
	consent domain.Consent, modal domain.ModalKind, lang language.Tag) HomePage {
	p := HomePage{
		Lang:     lang,
		Sections: append([]string(nil), SectionOrder...),
		Content:  c,
		Featured: featured,
		Currency: pref,
		Consent:  consent,
		Modal:    modal,
	}
	if doc, ok := c.Legal[modal]; ok && modal != domain.ModalNone {
		p.Legal = &doc
	}
	return p
}

// cardView is what the hotel-card component renders.
type cardView struct {
	Hotel    domain.HotelCard
	Currency string
	Lang     language.Tag
}

func cardData(h domain.HotelCard, p HomePage) cardView {
	return cardView{Hotel: h, Currency: p.Content.Featured.Currency, Lang: p.Lang}
}

// PreferredTag picks the first parseable language from an Accept-Language header.
func PreferredTag(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	return tags[0]
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.New("site").Funcs(funcMap()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: t}, nil
}

func (r *Renderer) Home(w io.Writer, p HomePage) error {
	return r.tmpl.ExecuteTemplate(w, "home", p)
}
