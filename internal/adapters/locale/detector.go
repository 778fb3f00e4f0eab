// Package locale maps browser locales onto ISO-4217 currencies.
package locale

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"hotel_site/internal/domain"
)

type Detector struct {
	supported map[string]struct{}
}

// NewDetector limits detection to the given currency codes; an empty list allows any.
func NewDetector(supported []string) *Detector {
	d := &Detector{supported: map[string]struct{}{}}
	for _, c := range supported {
		d.supported[strings.ToUpper(c)] = struct{}{}
	}
	return d
}

// Detect walks the Accept-Language preferences in q order and returns the currency of
// the first region that has one we sell in.
func (d *Detector) Detect(acceptLanguage string) (string, bool) {
	if strings.TrimSpace(acceptLanguage) == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		return "", false
	}
	for _, tag := range tags {
		region, conf := tag.Region()
		if conf == language.No {
			continue
		}
		unit, ok := currency.FromRegion(region)
		if !ok {
			continue
		}
		if code, ok := d.Normalize(unit.String()); ok {
			return code, true
		}
	}
	return "", false
}

// Normalize upper-cases code and reports whether it is a known ISO-4217 code we accept.
func (d *Detector) Normalize(code string) (string, bool) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", false
	}
	iso := unit.String()
	if len(d.supported) > 0 {
		if _, ok := d.supported[iso]; !ok {
			return "", false
		}
	}
	return iso, true
}

// FromAcceptLanguage binds the detector to one request's header.
func (d *Detector) FromAcceptLanguage(header string) domain.CurrencyDetector {
	return browserLocale{d: d, header: header}
}

type browserLocale struct {
	d      *Detector
	header string
}

func (b browserLocale) DetectCurrency() (string, bool) { return b.d.Detect(b.header) }
