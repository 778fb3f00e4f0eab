package app

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"hotel_site/internal/domain"
)

/********** alias registry (single source of truth) **********/

var cardAliases = map[string][]string{
	"name":    {"name", "hotelName", "hotel_name"},
	"city":    {"city", "address.city", "location.city"},
	"country": {"country", "countryCode", "country_code", "address.country"},
	"stars":   {"starRating", "stars", "star_rating"},
	"rating":  {"rating", "reviewScore", "review_score", "guestRating"},
	"reviews": {"reviewCount", "review_count", "reviewsCount"},
	"photo":   {"main_photo", "mainPhoto", "thumbnail", "hotelImages.0.url", "images.0.url"},
}

/********** tiny helpers **********/

// lookupAny: nested lookup with dot paths; numeric parts index into arrays.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		switch obj := cur.(type) {
		case map[string]any:
			v, ok := obj[part]
			if !ok {
				return nil
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(obj) {
				return nil
			}
			cur = obj[i]
		default:
			return nil
		}
	}
	return cur
}

func firstStr(m map[string]any, key string) string {
	for _, p := range cardAliases[key] {
		if s, ok := lookupAny(m, p).(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func firstFloat(m map[string]any, key string) *float64 {
	for _, p := range cardAliases[key] {
		switch v := lookupAny(m, p).(type) {
		case float64:
			return &v
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

/********** mapper **********/

// mapCard pulls the card fields out of a provider hotel-detail payload.
// The payload may be wrapped in {"data": {...}}.
func mapCard(id string, raw json.RawMessage) (domain.HotelCard, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return domain.HotelCard{}, fmt.Errorf("decode hotel %s: %w", id, err)
	}
	if inner, ok := m["data"].(map[string]any); ok {
		m = inner
	}
	card := domain.HotelCard{
		ID:       id,
		Name:     firstStr(m, "name"),
		City:     firstStr(m, "city"),
		Country:  strings.ToUpper(firstStr(m, "country")),
		Stars:    firstFloat(m, "stars"),
		Rating:   firstFloat(m, "rating"),
		PhotoURL: firstStr(m, "photo"),
	}
	if n := firstFloat(m, "reviews"); n != nil {
		card.Reviews = int(*n)
	}
	if card.Name == "" {
		return domain.HotelCard{}, fmt.Errorf("hotel %s: payload has no name", id)
	}
	return card, nil
}

// mergeCard overlays live provider data on the editorial card; editorial-only
// fields (badge, from rate) always come from the fallback.
func mergeCard(fallback, live domain.HotelCard) domain.HotelCard {
	out := fallback
	if live.Name != "" {
		out.Name = live.Name
	}
	if live.City != "" {
		out.City = live.City
	}
	if live.Country != "" {
		out.Country = live.Country
	}
	if live.Stars != nil {
		out.Stars = live.Stars
	}
	if live.Rating != nil {
		out.Rating = live.Rating
	}
	if live.Reviews > 0 {
		out.Reviews = live.Reviews
	}
	if live.PhotoURL != "" {
		out.PhotoURL = live.PhotoURL
	}
	return out
}
