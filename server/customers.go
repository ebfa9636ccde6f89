package server

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"kurir-pintar/api/models"
	"kurir-pintar/api/store"
)

// ListCustomers handles GET /api/v1/customers.
// @Summary List the user's customers, newest first
// @Tags Customers
// @Produce json
// @Success 200 {array} models.Customer
// @Router /customers [get]
func (s *Server) ListCustomers(c *fiber.Ctx) error {
	customers, err := s.store.ListCustomers(c.Context(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(customers)
}

func validateCustomerInput(in models.CustomerInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "phone is required")
	}
	if strings.TrimSpace(in.Address) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "address is required")
	}
	return nil
}

// CreateCustomer handles POST /api/v1/customers.
// @Summary Add a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Success 201 {object} models.Customer
// @Router /customers [post]
func (s *Server) CreateCustomer(c *fiber.Ctx) error {
	var in models.CustomerInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validateCustomerInput(in); err != nil {
		return err
	}

	customer, err := s.store.CreateCustomer(c.Context(), userID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// UpdateCustomer handles PUT /api/v1/customers/:id.
func (s *Server) UpdateCustomer(c *fiber.Ctx) error {
	var in models.CustomerInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validateCustomerInput(in); err != nil {
		return err
	}

	customer, err := s.store.UpdateCustomer(c.Context(), userID(c), c.Params("id"), in)
	if errors.Is(err, store.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}
	return c.JSON(customer)
}

// DeleteCustomer handles DELETE /api/v1/customers/:id.
func (s *Server) DeleteCustomer(c *fiber.Ctx) error {
	err := s.store.DeleteCustomer(c.Context(), userID(c), c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
