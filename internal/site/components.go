package site

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stars renders a 0-5 rating as filled and empty stars, rounded to the nearest whole star.
func Stars(v any) string {
	r, ok := toFloat(v)
	if !ok {
		return ""
	}
	n := int(math.Round(math.Max(0, math.Min(5, r))))
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// Score formats a 0-10 guest score with one decimal.
func Score(v any) string {
	r, ok := toFloat(v)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%.1f", r)
}

// ScoreLabel buckets a 0-10 guest score into the wording shown next to it.
func ScoreLabel(v any) string {
	r, ok := toFloat(v)
	switch {
	case !ok:
		return ""
	case r >= 9:
		return "Exceptional"
	case r >= 8:
		return "Excellent"
	case r >= 7:
		return "Very good"
	case r >= 6:
		return "Good"
	}
	return "Reviewed"
}

// Price formats amount in the given ISO currency for the visitor's language.
func Price(amount any, code string, tag language.Tag) string {
	a, ok := toFloat(amount)
	if !ok {
		return ""
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%.2f %s", a, code)
	}
	return message.NewPrinter(tag).Sprint(currency.Symbol(unit.Amount(a)))
}

// BadgeClass maps a badge label onto its colour utility classes.
func BadgeClass(label string) string {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "save") || strings.Contains(l, "deal") || strings.Contains(l, "%"):
		return "badge bg-rose-600 text-white"
	case strings.Contains(l, "luxury"):
		return "badge bg-amber-500 text-black"
	case strings.Contains(l, "new"):
		return "badge bg-emerald-600 text-white"
	}
	return "badge bg-slate-200 text-slate-800"
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case *float64:
		if x == nil {
			return 0, false
		}
		return *x, true
	case int:
		return float64(x), true
	}
	return 0, false
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"stars":      Stars,
		"score":      Score,
		"scoreLabel": ScoreLabel,
		"price":      Price,
		"badgeClass": BadgeClass,
		"cardData":   cardData,
	}
}
