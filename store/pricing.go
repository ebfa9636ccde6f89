package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"kurir-pintar/api/models"
)

const pricingColumns = `id, user_id, min_distance, max_distance, base_price, price_per_km, is_active, created_at, updated_at`

func scanTier(row pgx.Row) (*models.PricingTier, error) {
	var t models.PricingTier
	err := row.Scan(&t.ID, &t.UserID, &t.MinDistance, &t.MaxDistance,
		&t.BasePrice, &t.PricePerKm, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListPricingTiers always returns the user's tiers sorted ascending by
// min_distance, which TierForDistance relies on.
func (s *Store) ListPricingTiers(ctx context.Context, userID string) ([]models.PricingTier, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+pricingColumns+`
		FROM pricing_config
		WHERE user_id = $1
		ORDER BY min_distance ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list pricing tiers: %w", err)
	}
	defer rows.Close()

	tiers := []models.PricingTier{}
	for rows.Next() {
		t, err := scanTier(rows)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, *t)
	}
	return tiers, rows.Err()
}

func (s *Store) CreatePricingTier(ctx context.Context, userID string, in models.PricingTierInput) (*models.PricingTier, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO pricing_config (user_id, min_distance, max_distance, base_price, price_per_km, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING `+pricingColumns,
		userID, in.MinDistance, in.MaxDistance, in.BasePrice, in.PricePerKm)
	return scanTier(row)
}

func (s *Store) DeletePricingTier(ctx context.Context, userID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM pricing_config WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete pricing tier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
