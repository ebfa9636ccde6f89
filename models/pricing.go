package models

import "time"

// PricingTier is one distance band of the delivery tariff. A nil
// MaxDistance means the band is unbounded above. Bands are half-open:
// a distance d falls in the tier when min <= d < max.
type PricingTier struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	MinDistance float64   `json:"min_distance"`
	MaxDistance *float64  `json:"max_distance,omitempty"`
	BasePrice   float64   `json:"base_price"`
	PricePerKm  float64   `json:"price_per_km"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PricingTierInput struct {
	MinDistance float64  `json:"min_distance"`
	MaxDistance *float64 `json:"max_distance"`
	BasePrice   float64  `json:"base_price"`
	PricePerKm  float64  `json:"price_per_km"`
}

// TierForDistance picks the first active tier whose band contains the
// distance. tiers must already be sorted ascending by MinDistance,
// which is how the store returns them.
func TierForDistance(tiers []PricingTier, distanceKm float64) *PricingTier {
	for i := range tiers {
		t := &tiers[i]
		if !t.IsActive {
			continue
		}
		if distanceKm < t.MinDistance {
			continue
		}
		if t.MaxDistance != nil && distanceKm >= *t.MaxDistance {
			continue
		}
		return t
	}
	return nil
}

// PriceForDistance applies the tier formula: base price plus the
// per-km rate over the whole distance.
func PriceForDistance(t *PricingTier, distanceKm float64) float64 {
	return t.BasePrice + t.PricePerKm*distanceKm
}
