package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stitchpos/internal/barcode"
	applog "stitchpos/internal/log"
	"stitchpos/internal/pos"
)

type POSHandler struct {
	Term *pos.Terminal
}

// Products lists the inventory cache, optionally filtered by ?q= against
// name or category.
func (h *POSHandler) Products(c *fiber.Ctx) error {
	return c.JSON(h.Term.SearchInventory(c.Query("q")))
}

type scanRequest struct {
	Code string `json:"code" form:"code"`
}

// Scan resolves a scanned barcode and drops the product straight into the
// cart, the register's one-keystroke path.
func (h *POSHandler) Scan(c *fiber.Ctx) error {
	var req scanRequest
	if err := c.BodyParser(&req); err != nil || len(req.Code) < barcode.MinLength {
		return fail(c, fiber.StatusBadRequest, "missing or short code")
	}
	p := barcode.Resolve(req.Code, h.Term.Products())
	if p == nil {
		return fail(c, fiber.StatusNotFound, "Product not found: "+req.Code)
	}
	if err := h.Term.AddToCart(c.Context(), p.ID); err != nil {
		return posError(c, err)
	}
	applog.Info(c, "pos.scan", map[string]any{"code": req.Code, "product": p.ID})
	return c.JSON(fiber.Map{"product": p, "message": "Scanned: " + p.Name + " added to cart!"})
}

func (h *POSHandler) cartView() fiber.Map {
	lines := h.Term.Cart()
	subtotal := h.Term.CartTotal()
	return fiber.Map{
		"lines":    lines,
		"subtotal": subtotal,
		"tax":      subtotal * TaxRate,
		"total":    subtotal * (1 + TaxRate),
	}
}

func (h *POSHandler) CartView(c *fiber.Ctx) error {
	return c.JSON(h.cartView())
}

type cartAddRequest struct {
	ProductID string `json:"productId" form:"productId"`
}

func (h *POSHandler) CartAdd(c *fiber.Ctx) error {
	var req cartAddRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID == "" {
		return fail(c, fiber.StatusBadRequest, "missing productId")
	}
	if err := h.Term.AddToCart(c.Context(), req.ProductID); err != nil {
		return posError(c, err)
	}
	return c.JSON(h.cartView())
}

type cartQtyRequest struct {
	ProductID string `json:"productId" form:"productId"`
	Quantity  int    `json:"quantity" form:"quantity"`
}

func (h *POSHandler) CartQuantity(c *fiber.Ctx) error {
	var req cartQtyRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID == "" {
		return fail(c, fiber.StatusBadRequest, "missing productId")
	}
	if err := h.Term.UpdateQuantity(req.ProductID, req.Quantity); err != nil {
		return posError(c, err)
	}
	return c.JSON(h.cartView())
}

func (h *POSHandler) CartRemove(c *fiber.Ctx) error {
	var req cartAddRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID == "" {
		return fail(c, fiber.StatusBadRequest, "missing productId")
	}
	h.Term.RemoveFromCart(req.ProductID)
	return c.JSON(h.cartView())
}

func (h *POSHandler) CartClear(c *fiber.Ctx) error {
	h.Term.ClearCart()
	return c.JSON(h.cartView())
}

// Checkout runs the full sale. The workflow settles even when stock writes
// partially fail; the receipt then carries the advisory.
func (h *POSHandler) Checkout(c *fiber.Ctx) error {
	rcpt, err := h.Term.Checkout(c.Context())
	if err != nil {
		return posError(c, err)
	}
	applog.Audit(c, "pos.checkout", map[string]any{
		"order_id":      rcpt.Order.ID,
		"total":         rcpt.Order.Total,
		"retired":       rcpt.Retired,
		"failed_writes": rcpt.FailedWrites,
	})
	resp := fiber.Map{
		"order":    rcpt.Order,
		"retired":  rcpt.Retired,
		"tax":      rcpt.Order.Total * TaxRate,
		"message":  "Order created successfully!",
		"advisory": rcpt.Advisory,
	}
	return c.JSON(resp)
}
