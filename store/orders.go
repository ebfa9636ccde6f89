package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"kurir-pintar/api/models"
)

const orderColumns = `id, user_id, customer_id, order_number, pickup_address,
	pickup_latitude, pickup_longitude, pickup_time, delivery_type, status,
	total_distance, total_price, notes, created_at, updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.UserID, &o.CustomerID, &o.OrderNumber, &o.PickupAddress,
		&o.PickupLat, &o.PickupLon, &o.PickupTime, &o.DeliveryType, &o.Status,
		&o.TotalDistance, &o.TotalPrice, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

type CreateOrderParams struct {
	CustomerID   *string
	OrderNumber  string
	PickupAddr   string
	DeliveryType models.DeliveryType
	Notes        *string
}

func (s *Store) CreateOrder(ctx context.Context, userID string, p CreateOrderParams) (*models.Order, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO orders (user_id, customer_id, order_number, pickup_address, delivery_type, status, notes)
		VALUES ($1, $2, $3, $4, $5, 'pending', $6)
		RETURNING `+orderColumns,
		userID, p.CustomerID, p.OrderNumber, p.PickupAddr, p.DeliveryType, p.Notes)
	return scanOrder(row)
}

// InsertDestinations writes the destination rows for an order. It is a
// separate call from CreateOrder on purpose: the two inserts are not
// wrapped in a transaction and a failure here leaves the order behind
// without stops, matching the upstream flow.
func (s *Store) InsertDestinations(ctx context.Context, dests []models.OrderDestination) error {
	for _, d := range dests {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO order_destinations
				(order_id, customer_id, sequence_number, address, contact_name, contact_phone, notes, delivery_status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			d.OrderID, d.CustomerID, d.SequenceNumber, d.Address,
			d.ContactName, d.ContactPhone, d.Notes, d.DeliveryStatus)
		if err != nil {
			return fmt.Errorf("insert destination %d: %w", d.SequenceNumber, err)
		}
	}
	return nil
}

func (s *Store) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (s *Store) GetOrder(ctx context.Context, userID, id string) (*models.Order, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1 AND user_id = $2`, id, userID)
	o, err := scanOrder(row)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, order_id, customer_id, sequence_number, address,
			contact_name, contact_phone, notes, delivery_status,
			latitude, longitude, delivered_at, created_at
		FROM order_destinations
		WHERE order_id = $1
		ORDER BY sequence_number`, id)
	if err != nil {
		return nil, fmt.Errorf("load destinations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d models.OrderDestination
		if err := rows.Scan(&d.ID, &d.OrderID, &d.CustomerID, &d.SequenceNumber,
			&d.Address, &d.ContactName, &d.ContactPhone, &d.Notes, &d.DeliveryStatus,
			&d.Latitude, &d.Longitude, &d.DeliveredAt, &d.CreatedAt); err != nil {
			return nil, err
		}
		o.Destinations = append(o.Destinations, d)
	}
	return o, rows.Err()
}

func (s *Store) UpdateOrderStatus(ctx context.Context, userID, id string, status models.OrderStatus) (*models.Order, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE orders SET status = $1, updated_at = now()
		WHERE id = $2 AND user_id = $3
		RETURNING `+orderColumns,
		status, id, userID)
	return scanOrder(row)
}

func (s *Store) DeleteOrder(ctx context.Context, userID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM orders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkDestinationDelivered flips one stop to delivered and stamps the
// delivery time. The order must belong to the user.
func (s *Store) MarkDestinationDelivered(ctx context.Context, userID, orderID string, seq int, at time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE order_destinations d SET delivery_status = 'delivered', delivered_at = $1
		FROM orders o
		WHERE d.order_id = o.id AND o.id = $2 AND o.user_id = $3 AND d.sequence_number = $4`,
		at, orderID, userID, seq)
	if err != nil {
		return fmt.Errorf("mark destination delivered: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type DashboardStats struct {
	TotalOrders    int     `json:"total_orders"`
	ActiveOrders   int     `json:"active_orders"`
	TotalCustomers int     `json:"total_customers"`
	CompletedToday int     `json:"completed_today"`
	TodayRevenue   float64 `json:"today_revenue"`
	TotalRevenue   float64 `json:"total_revenue"`
}

func (s *Store) GetDashboardStats(ctx context.Context, userID string) (*DashboardStats, error) {
	var st DashboardStats
	err := s.pool.QueryRow(ctx, `
		SELECT
			COUNT(*)::int,
			COUNT(*) FILTER (WHERE status IN ('pending', 'picked_up', 'in_transit'))::int,
			COUNT(*) FILTER (WHERE status = 'delivered' AND updated_at::date = now()::date)::int,
			COALESCE(SUM(total_price) FILTER (WHERE created_at::date = now()::date), 0)::float8,
			COALESCE(SUM(total_price), 0)::float8
		FROM orders
		WHERE user_id = $1`, userID,
	).Scan(&st.TotalOrders, &st.ActiveOrders, &st.CompletedToday, &st.TodayRevenue, &st.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}

	err = s.pool.QueryRow(ctx,
		`SELECT COUNT(*)::int FROM customers WHERE user_id = $1`, userID,
	).Scan(&st.TotalCustomers)
	if err != nil {
		return nil, fmt.Errorf("customer stats: %w", err)
	}
	return &st, nil
}
