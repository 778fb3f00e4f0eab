package domain

// HotelCard is the display slice of a hotel used by listing cards on the site.
type HotelCard struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	City     string   `json:"city,omitempty" yaml:"city"`
	Country  string   `json:"country,omitempty" yaml:"country"`
	Stars    *float64 `json:"stars,omitempty" yaml:"stars"`
	Rating   *float64 `json:"rating,omitempty" yaml:"rating"`
	Reviews  int      `json:"reviews,omitempty" yaml:"reviews"`
	PhotoURL string   `json:"photo,omitempty" yaml:"photo"`
	Badge    string   `json:"badge,omitempty" yaml:"badge"`
	FromRate *float64 `json:"fromRate,omitempty" yaml:"from_rate"`
}
