package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stitchpos/internal/barcode"
	"stitchpos/internal/domain"
	applog "stitchpos/internal/log"
	"stitchpos/internal/pos"
	"stitchpos/internal/validate"
)

type AdminHandler struct {
	Term *pos.Terminal
}

// GET /admin/inventory
func (h *AdminHandler) Inventory(c *fiber.Ctx) error {
	return c.JSON(h.Term.Products())
}

type productRequest struct {
	EditingID string `json:"editingId" form:"editingId"`
	Name      string `json:"name" form:"name"`
	Category  string `json:"category" form:"category"`
	Price     string `json:"price" form:"price"`
	Stock     string `json:"stock" form:"stock"`
	Unit      string `json:"unit" form:"unit"`
	Barcode   string `json:"barcode" form:"barcode"`
}

// Save creates or edits a product. The barcode is fixed at creation time
// (auto-generated) and only editable on an existing record.
func (h *AdminHandler) Save(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "malformed request")
	}

	name, ok := validate.Name(req.Name)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid name")
	}
	category, ok := validate.Category(req.Category)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid category")
	}
	price, ok := validate.Price(req.Price)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid price")
	}
	stock, ok := validate.Stock(req.Stock)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid stock")
	}
	unit, ok := validate.Unit(req.Unit)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid unit")
	}

	code := req.Barcode
	if req.EditingID == "" {
		code = barcode.Generate()
	} else if code != "" {
		if _, ok := validate.Barcode(code); !ok || !barcode.Valid(code) {
			return fail(c, fiber.StatusBadRequest, "invalid barcode")
		}
	}

	p := domain.Product{Name: name, Category: category, Price: price, Stock: stock, Unit: unit, Barcode: code}
	saved, err := h.Term.SaveProduct(c.Context(), p, req.EditingID)
	if err != nil {
		applog.Error(c, "admin.product.save.fail", err, map[string]any{"editing": req.EditingID})
		return posError(c, err)
	}
	applog.Audit(c, "admin.product.save", map[string]any{"product": saved.ID, "editing": req.EditingID != ""})
	return c.JSON(saved)
}

// POST /admin/inventory/:id/delete
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return fail(c, fiber.StatusBadRequest, "missing id")
	}
	if err := h.Term.DeleteProduct(c.Context(), id); err != nil {
		applog.Error(c, "admin.product.delete.fail", err, map[string]any{"product": id})
		return posError(c, err)
	}
	applog.Audit(c, "admin.product.delete", map[string]any{"product": id})
	return c.JSON(fiber.Map{"ok": true})
}

// Journal exposes the reconciliation log for inspecting partial failures.
func (h *AdminHandler) Journal(c *fiber.Ctx) error {
	return c.JSON(h.Term.Journal())
}
