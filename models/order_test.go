package models

import (
	"strings"
	"testing"
	"time"
)

func TestValidStatusTransition(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPending, OrderStatusPickedUp, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusInTransit, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusPickedUp, OrderStatusInTransit, true},
		{OrderStatusPickedUp, OrderStatusCancelled, true},
		{OrderStatusPickedUp, OrderStatusPending, false},
		{OrderStatusInTransit, OrderStatusDelivered, true},
		{OrderStatusInTransit, OrderStatusCancelled, true},
		{OrderStatusInTransit, OrderStatusPickedUp, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{"", OrderStatusPending, false},
		{OrderStatusPending, "", false},
		{OrderStatusPending, "shipped", false},
	}
	for _, tt := range tests {
		got := ValidStatusTransition(tt.from, tt.to)
		if got != tt.want {
			t.Errorf("ValidStatusTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusPickedUp, OrderStatusInTransit, OrderStatusDelivered, OrderStatusCancelled} {
		if !ValidOrderStatus(s) {
			t.Errorf("ValidOrderStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []OrderStatus{"", "shipped", "PENDING", "done"} {
		if ValidOrderStatus(s) {
			t.Errorf("ValidOrderStatus(%q) = true, want false", s)
		}
	}
}

func TestNewOrderNumber(t *testing.T) {
	now := time.UnixMilli(1714000000000)
	got := NewOrderNumber(now)
	if got != "ORD-1714000000000" {
		t.Errorf("NewOrderNumber = %q, want ORD-1714000000000", got)
	}
}

func TestBuildDestinations(t *testing.T) {
	inputs := []DestinationInput{
		{Address: "Jl. Sudirman 1", ContactName: "Budi", ContactPhone: "0812"},
		{Address: "Jl. Thamrin 5"},
		{Address: "Jl. Gatot Subroto 10", Notes: "gate B"},
	}
	dests := BuildDestinations("order-1", inputs)
	if len(dests) != 3 {
		t.Fatalf("got %d destinations, want 3", len(dests))
	}
	for i, d := range dests {
		if d.SequenceNumber != i+1 {
			t.Errorf("destination %d: sequence_number = %d, want %d", i, d.SequenceNumber, i+1)
		}
		if d.OrderID != "order-1" {
			t.Errorf("destination %d: order_id = %q", i, d.OrderID)
		}
		if d.Address != inputs[i].Address {
			t.Errorf("destination %d: address = %q, want %q (entry order kept)", i, d.Address, inputs[i].Address)
		}
		if d.DeliveryStatus != DestinationStatusPending {
			t.Errorf("destination %d: delivery_status = %q", i, d.DeliveryStatus)
		}
	}
	if dests[0].ContactName == nil || *dests[0].ContactName != "Budi" {
		t.Error("first destination should keep contact name")
	}
	if dests[1].ContactName != nil || dests[1].ContactPhone != nil || dests[1].Notes != nil {
		t.Error("blank optional fields should stay nil")
	}
	if dests[2].Notes == nil || *dests[2].Notes != "gate B" {
		t.Error("third destination should keep notes")
	}
}

func TestValidateDestinations(t *testing.T) {
	many := make([]DestinationInput, 11)
	for i := range many {
		many[i].Address = "somewhere"
	}
	tests := []struct {
		name    string
		inputs  []DestinationInput
		wantErr string
	}{
		{"empty", nil, "at least 1"},
		{"eleven", many, "at most 10"},
		{"blank address", []DestinationInput{{Address: "  "}}, "address is required"},
		{"one ok", []DestinationInput{{Address: "Jl. Sudirman 1"}}, ""},
		{"ten ok", many[:10], ""},
	}
	for _, tt := range tests {
		err := ValidateDestinations(tt.inputs)
		if tt.wantErr == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: error = %v, want containing %q", tt.name, err, tt.wantErr)
		}
	}
}
