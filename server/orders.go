package server

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"kurir-pintar/api/models"
	"kurir-pintar/api/store"
)

type createOrderRequest struct {
	CustomerID    string                    `json:"customer_id"`
	PickupAddress string                    `json:"pickup_address"`
	DeliveryType  string                    `json:"delivery_type"`
	Notes         string                    `json:"notes"`
	Destinations  []models.DestinationInput `json:"destinations"`
}

// CreateOrder handles POST /api/v1/orders. The order row and its
// destination rows are inserted as two independent calls with no
// rollback of the first if the second fails; a failed destination
// insert leaves an order without stops (known gap, surfaced as 500).
// @Summary Create an order with 1-10 destinations
// @Tags Orders
// @Accept json
// @Produce json
// @Success 201 {object} models.Order
// @Failure 400 {object} map[string]string
// @Router /orders [post]
func (s *Server) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.PickupAddress) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "pickup address is required")
	}
	deliveryType := models.DeliveryType(req.DeliveryType)
	if deliveryType == "" {
		deliveryType = models.DeliveryTypeDirect
	}
	if deliveryType != models.DeliveryTypeDirect && deliveryType != models.DeliveryTypeRelay {
		return fiber.NewError(fiber.StatusBadRequest, "delivery type must be direct or relay")
	}
	if err := models.ValidateDestinations(req.Destinations); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	params := store.CreateOrderParams{
		OrderNumber:  models.NewOrderNumber(time.Now()),
		PickupAddr:   req.PickupAddress,
		DeliveryType: deliveryType,
	}
	if req.CustomerID != "" {
		params.CustomerID = &req.CustomerID
	}
	if req.Notes != "" {
		params.Notes = &req.Notes
	}

	order, err := s.store.CreateOrder(c.Context(), userID(c), params)
	if err != nil {
		return err
	}

	dests := models.BuildDestinations(order.ID, req.Destinations)
	if err := s.store.InsertDestinations(c.Context(), dests); err != nil {
		// No compensating delete of the order row.
		log.Printf("Order %s created but destinations failed: %v", order.ID, err)
		return err
	}
	order.Destinations = dests

	ordersCreated.Inc()
	s.publishDispatch(order.ID)
	if err := s.logEvent(map[string]interface{}{
		"event":        "order_created",
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      userID(c),
		"destinations": len(dests),
	}); err != nil {
		log.Printf("Failed to log order event: %v", err)
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// ListOrders handles GET /api/v1/orders.
// @Summary List the user's orders, newest first
// @Tags Orders
// @Produce json
// @Success 200 {array} models.Order
// @Router /orders [get]
func (s *Server) ListOrders(c *fiber.Ctx) error {
	orders, err := s.store.ListOrders(c.Context(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// GetOrder handles GET /api/v1/orders/:id, destinations included.
func (s *Server) GetOrder(c *fiber.Ctx) error {
	order, err := s.store.GetOrder(c.Context(), userID(c), c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}
	return c.JSON(order)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status. Only the
// five known states are accepted and the lifecycle chain is enforced;
// anything else is rejected, never stored.
func (s *Server) UpdateOrderStatus(c *fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	next := models.OrderStatus(req.Status)
	if !models.ValidOrderStatus(next) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown order status: "+req.Status)
	}

	order, err := s.store.GetOrder(c.Context(), userID(c), c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}

	if !models.ValidStatusTransition(order.Status, next) {
		return fiber.NewError(fiber.StatusBadRequest,
			"cannot change status from "+string(order.Status)+" to "+string(next))
	}

	updated, err := s.store.UpdateOrderStatus(c.Context(), userID(c), order.ID, next)
	if err != nil {
		return err
	}

	if err := s.logEvent(map[string]interface{}{
		"event":    "order_status_changed",
		"order_id": updated.ID,
		"user_id":  userID(c),
		"from":     string(order.Status),
		"to":       string(next),
	}); err != nil {
		log.Printf("Failed to log status event: %v", err)
	}

	return c.JSON(updated)
}

// DeleteOrder handles DELETE /api/v1/orders/:id.
func (s *Server) DeleteOrder(c *fiber.Ctx) error {
	err := s.store.DeleteOrder(c.Context(), userID(c), c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

// MarkDestinationDelivered handles
// PUT /api/v1/orders/:id/destinations/:seq/delivered.
func (s *Server) MarkDestinationDelivered(c *fiber.Ctx) error {
	seq, err := strconv.Atoi(c.Params("seq"))
	if err != nil || seq < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid sequence number")
	}

	err = s.store.MarkDestinationDelivered(c.Context(), userID(c), c.Params("id"), seq, time.Now())
	if errors.Is(err, store.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "delivered"})
}

// DashboardStats handles GET /api/v1/dashboard/stats.
// @Summary Aggregate order and customer counts for the dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} store.DashboardStats
// @Router /dashboard/stats [get]
func (s *Server) DashboardStats(c *fiber.Ctx) error {
	stats, err := s.store.GetDashboardStats(c.Context(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
