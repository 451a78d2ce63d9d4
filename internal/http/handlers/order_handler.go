package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "stitchpos/internal/log"
	"stitchpos/internal/pos"
)

type OrderHandler struct {
	Term *pos.Terminal
}

// List returns the in-memory order log, newest first. ?status=pending or
// completed filters; anything else means all.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.Term.Orders(c.Query("status", "all")))
}

type statusRequest struct {
	Status string `json:"status" form:"status"`
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "bad order id")
	}
	var req statusRequest
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return fail(c, fiber.StatusBadRequest, "missing status")
	}
	if err := h.Term.SetOrderStatus(id, req.Status); err != nil {
		return posError(c, err)
	}
	applog.Audit(c, "orders.status", map[string]any{"order_id": id, "status": req.Status})
	return c.JSON(fiber.Map{"ok": true})
}
