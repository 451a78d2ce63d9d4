package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stitchpos/internal/domain"
	"stitchpos/internal/pos"
	"stitchpos/internal/validate"
)

type CustomerHandler struct {
	Term *pos.Terminal
}

func (h *CustomerHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.Term.Customers())
}

type customerRequest struct {
	Name  string `json:"name" form:"name"`
	Phone string `json:"phone" form:"phone"`
	Email string `json:"email" form:"email"`
}

func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var req customerRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed request")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid name")
	}
	phone, ok := validate.Phone(req.Phone)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid phone")
	}
	email := ""
	if req.Email != "" {
		if email, ok = validate.Email(req.Email); !ok {
			return fail(c, fiber.StatusBadRequest, "invalid email")
		}
	}
	cust := h.Term.AddCustomer(domain.Customer{Name: name, Phone: phone, Email: email})
	return c.Status(fiber.StatusCreated).JSON(cust)
}

type selectRequest struct {
	ID int `json:"id" form:"id"`
}

// Select marks the customer for the next checkout; id 0 clears the
// selection back to walk-in.
func (h *CustomerHandler) Select(c *fiber.Ctx) error {
	var req selectRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed request")
	}
	if req.ID == 0 {
		h.Term.ClearSelectedCustomer()
		return c.JSON(fiber.Map{"selected": nil})
	}
	if err := h.Term.SelectCustomer(req.ID); err != nil {
		return posError(c, err)
	}
	return c.JSON(fiber.Map{"selected": h.Term.SelectedCustomer()})
}
