package domain

import "strconv"

// Currency is the only currency prices are quoted in.
const Currency = "ARS"

// Service is a bookable car-wash service.
type Service struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	ImageURL        string  `json:"image_url,omitempty"`
	IsActive        bool    `json:"is_active"`
}

// PriceLabel renders the price the way the catalog shows it, e.g. "ARS 1000".
func (s Service) PriceLabel() string {
	return Currency + " " + strconv.FormatFloat(s.Price, 'f', -1, 64)
}
