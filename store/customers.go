package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"kurir-pintar/api/models"
)

// ErrNotFound is returned when a row does not exist or belongs to a
// different user.
var ErrNotFound = errors.New("not found")

const customerColumns = `id, user_id, name, phone, address, notes, latitude, longitude, created_at, updated_at`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.Address,
		&c.Notes, &c.Latitude, &c.Longitude, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) ListCustomers(ctx context.Context, userID string) ([]models.Customer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}

func (s *Store) CreateCustomer(ctx context.Context, userID string, in models.CustomerInput) (*models.Customer, error) {
	var notes *string
	if in.Notes != "" {
		notes = &in.Notes
	}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO customers (user_id, name, phone, address, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+customerColumns,
		userID, in.Name, in.Phone, in.Address, notes)
	return scanCustomer(row)
}

func (s *Store) UpdateCustomer(ctx context.Context, userID, id string, in models.CustomerInput) (*models.Customer, error) {
	var notes *string
	if in.Notes != "" {
		notes = &in.Notes
	}
	row := s.pool.QueryRow(ctx, `
		UPDATE customers SET
			name = $1, phone = $2, address = $3, notes = $4, updated_at = now()
		WHERE id = $5 AND user_id = $6
		RETURNING `+customerColumns,
		in.Name, in.Phone, in.Address, notes, id, userID)
	return scanCustomer(row)
}

func (s *Store) DeleteCustomer(ctx context.Context, userID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM customers WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
