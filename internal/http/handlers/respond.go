package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"stitchpos/internal/pos"
)

// TaxRate is shown on receipts; order totals themselves are pre-tax.
const TaxRate = 0.08

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// posError maps terminal errors to user-facing responses. Anything
// unrecognized is a store failure surfaced as a bad gateway; the process
// itself never dies on a request error.
func posError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, pos.ErrEmptyCart):
		return fail(c, fiber.StatusBadRequest, "Cart is empty!")
	case errors.Is(err, pos.ErrInsufficientStock):
		return fail(c, fiber.StatusBadRequest, "Cannot add more. Not enough stock available.")
	case errors.Is(err, pos.ErrBadStatus):
		return fail(c, fiber.StatusBadRequest, "unknown order status")
	case errors.Is(err, pos.ErrProductNotFound),
		errors.Is(err, pos.ErrOrderNotFound),
		errors.Is(err, pos.ErrCustomerNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	default:
		return fail(c, fiber.StatusBadGateway, "Error updating stock: "+err.Error())
	}
}
