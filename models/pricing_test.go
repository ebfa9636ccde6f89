package models

import "testing"

func f(v float64) *float64 { return &v }

func testTiers() []PricingTier {
	return []PricingTier{
		{ID: "t1", MinDistance: 0, MaxDistance: f(5), BasePrice: 10000, PricePerKm: 2000, IsActive: true},
		{ID: "t2", MinDistance: 5, MaxDistance: f(15), BasePrice: 15000, PricePerKm: 1800, IsActive: true},
		{ID: "t3", MinDistance: 15, MaxDistance: nil, BasePrice: 25000, PricePerKm: 1500, IsActive: true},
	}
}

func TestTierForDistance(t *testing.T) {
	tiers := testTiers()
	tests := []struct {
		distance float64
		wantID   string
	}{
		{0, "t1"},
		{4.9, "t1"},
		{5, "t2"},   // bands are half-open: max_distance excluded
		{14.99, "t2"},
		{15, "t3"},
		{250, "t3"}, // unbounded top tier
	}
	for _, tt := range tests {
		got := TierForDistance(tiers, tt.distance)
		if got == nil {
			t.Errorf("TierForDistance(%v) = nil, want %s", tt.distance, tt.wantID)
			continue
		}
		if got.ID != tt.wantID {
			t.Errorf("TierForDistance(%v) = %s, want %s", tt.distance, got.ID, tt.wantID)
		}
	}
}

func TestTierForDistanceSkipsInactive(t *testing.T) {
	tiers := testTiers()
	tiers[0].IsActive = false
	if got := TierForDistance(tiers, 2); got != nil {
		t.Errorf("inactive tier should not match, got %s", got.ID)
	}
}

func TestTierForDistanceNoMatch(t *testing.T) {
	tiers := []PricingTier{{MinDistance: 10, BasePrice: 1, PricePerKm: 1, IsActive: true}}
	if got := TierForDistance(tiers, 3); got != nil {
		t.Error("distance below the lowest band should not match")
	}
}

func TestPriceForDistance(t *testing.T) {
	tier := &PricingTier{BasePrice: 15000, PricePerKm: 1800}
	got := PriceForDistance(tier, 10)
	if got != 33000 {
		t.Errorf("PriceForDistance = %v, want 33000", got)
	}
}
