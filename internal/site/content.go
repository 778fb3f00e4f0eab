// Package site renders the marketing pages: editorial content, presentational
// components and the home page composition.
package site

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"hotel_site/internal/domain"
)

//go:embed content/site.yaml
var defaultContent []byte

type Content struct {
	Hero         Hero                          `yaml:"hero"`
	Search       Search                        `yaml:"search"`
	Featured     Featured                      `yaml:"featured"`
	Promotions   Promotions                    `yaml:"promotions"`
	Testimonials Testimonials                  `yaml:"testimonials"`
	Newsletter   Newsletter                    `yaml:"newsletter"`
	Legal        map[domain.ModalKind]LegalDoc `yaml:"legal"`
}

type Hero struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	CTALabel string `yaml:"cta_label"`
	Image    string `yaml:"image"`
}

type Search struct {
	Placeholder string `yaml:"placeholder"`
	Button      string `yaml:"button"`
}

type Featured struct {
	Title string `yaml:"title"`
	// Currency of the editorial from_rate values.
	Currency string             `yaml:"currency"`
	Hotels   []domain.HotelCard `yaml:"hotels"`
}

type Promotions struct {
	Title string      `yaml:"title"`
	Items []Promotion `yaml:"items"`
}

type Promotion struct {
	Title string        `yaml:"title"`
	Badge string        `yaml:"badge"`
	Link  string        `yaml:"link"`
	Body  string        `yaml:"body"`
	HTML  template.HTML `yaml:"-"`
}

type Testimonials struct {
	Title string        `yaml:"title"`
	Items []Testimonial `yaml:"items"`
}

type Testimonial struct {
	Author   string  `yaml:"author"`
	Location string  `yaml:"location"`
	Rating   float64 `yaml:"rating"`
	Quote    string  `yaml:"quote"`
}

type Newsletter struct {
	Title  string `yaml:"title"`
	Body   string `yaml:"body"`
	Button string `yaml:"button"`
}

type LegalDoc struct {
	Title string        `yaml:"title"`
	Body  string        `yaml:"body"`
	HTML  template.HTML `yaml:"-"`
}

// LoadContent reads the content document at path, or the embedded default when path is empty.
func LoadContent(path string) (*Content, error) {
	if path == "" {
		return ParseContent(defaultContent)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	return ParseContent(raw)
}

// ParseContent decodes the YAML document and renders every markdown body to sanitized HTML.
func ParseContent(raw []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	md := newMarkdown()
	for i := range c.Promotions.Items {
		h, err := md.render(c.Promotions.Items[i].Body)
		if err != nil {
			return nil, fmt.Errorf("promotion %q: %w", c.Promotions.Items[i].Title, err)
		}
		c.Promotions.Items[i].HTML = h
	}
	for kind, doc := range c.Legal {
		if domain.ParseModalKind(string(kind)) == domain.ModalNone {
			return nil, fmt.Errorf("unknown legal document %q", kind)
		}
		h, err := md.render(doc.Body)
		if err != nil {
			return nil, fmt.Errorf("legal %s: %w", kind, err)
		}
		doc.HTML = h
		c.Legal[kind] = doc
	}
	return &c, nil
}

type markdown struct {
	gm     goldmark.Markdown
	policy *bluemonday.Policy
}

func newMarkdown() *markdown {
	return &markdown{
		gm:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}
}

func (m *markdown) render(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := m.gm.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(m.policy.SanitizeBytes(buf.Bytes())), nil
}
