package models

import (
	"fmt"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPickedUp  OrderStatus = "picked_up"
	OrderStatusInTransit OrderStatus = "in_transit"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type DeliveryType string

const (
	DeliveryTypeDirect DeliveryType = "direct"
	DeliveryTypeRelay  DeliveryType = "relay"
)

const (
	DestinationStatusPending   = "pending"
	DestinationStatusDelivered = "delivered"
)

// MaxDestinations caps how many stops a single order may carry.
const (
	MinDestinations = 1
	MaxDestinations = 10
)

type Order struct {
	ID            string       `json:"id"`
	UserID        string       `json:"user_id"`
	CustomerID    *string      `json:"customer_id,omitempty"`
	OrderNumber   string       `json:"order_number"`
	PickupAddress string       `json:"pickup_address"`
	PickupLat     *float64     `json:"pickup_latitude,omitempty"`
	PickupLon     *float64     `json:"pickup_longitude,omitempty"`
	PickupTime    *time.Time   `json:"pickup_time,omitempty"`
	DeliveryType  DeliveryType `json:"delivery_type"`
	Status        OrderStatus  `json:"status"`
	TotalDistance *float64     `json:"total_distance,omitempty"`
	TotalPrice    *float64     `json:"total_price,omitempty"`
	Notes         *string      `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`

	Destinations []OrderDestination `json:"destinations,omitempty"`
}

type OrderDestination struct {
	ID             string     `json:"id"`
	OrderID        string     `json:"order_id"`
	CustomerID     *string    `json:"customer_id,omitempty"`
	SequenceNumber int        `json:"sequence_number"`
	Address        string     `json:"address"`
	ContactName    *string    `json:"contact_name,omitempty"`
	ContactPhone   *string    `json:"contact_phone,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	DeliveryStatus string     `json:"delivery_status"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// DestinationInput is one stop as entered on the order form.
type DestinationInput struct {
	Address      string `json:"address"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	Notes        string `json:"notes"`
}

// NewOrderNumber generates the time-based order number shown to users.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%d", now.UnixMilli())
}

// ValidOrderStatus reports whether s is one of the five known states.
// Anything else is rejected rather than stored.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusPickedUp, OrderStatusInTransit,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidStatusTransition enforces the order lifecycle:
// pending -> picked_up -> in_transit -> delivered, with cancellation
// allowed from any non-terminal state.
func ValidStatusTransition(from, to OrderStatus) bool {
	if !ValidOrderStatus(from) || !ValidOrderStatus(to) {
		return false
	}
	switch from {
	case OrderStatusPending:
		return to == OrderStatusPickedUp || to == OrderStatusCancelled
	case OrderStatusPickedUp:
		return to == OrderStatusInTransit || to == OrderStatusCancelled
	case OrderStatusInTransit:
		return to == OrderStatusDelivered || to == OrderStatusCancelled
	}
	return false
}

// BuildDestinations turns form entries into destination rows with
// sequence numbers 1..N in entry order. The optimized route, if the
// user ran one, is never persisted back here.
func BuildDestinations(orderID string, inputs []DestinationInput) []OrderDestination {
	dests := make([]OrderDestination, 0, len(inputs))
	for i, in := range inputs {
		d := OrderDestination{
			OrderID:        orderID,
			SequenceNumber: i + 1,
			Address:        in.Address,
			DeliveryStatus: DestinationStatusPending,
		}
		if in.ContactName != "" {
			d.ContactName = &inputs[i].ContactName
		}
		if in.ContactPhone != "" {
			d.ContactPhone = &inputs[i].ContactPhone
		}
		if in.Notes != "" {
			d.Notes = &inputs[i].Notes
		}
		dests = append(dests, d)
	}
	return dests
}

// ValidateDestinations checks the 1..10 window and that every entry
// carries a non-blank address.
func ValidateDestinations(inputs []DestinationInput) error {
	if len(inputs) < MinDestinations {
		return fmt.Errorf("at least %d destination required", MinDestinations)
	}
	if len(inputs) > MaxDestinations {
		return fmt.Errorf("at most %d destinations allowed", MaxDestinations)
	}
	for i, in := range inputs {
		if strings.TrimSpace(in.Address) == "" {
			return fmt.Errorf("destination %d: address is required", i+1)
		}
	}
	return nil
}
