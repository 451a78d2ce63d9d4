package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"stitchpos/internal/pos"
	"stitchpos/internal/report"
)

type ReportHandler struct {
	Term *pos.Terminal
}

// Stats returns the summary numbers plus the sales-by-day series for
// ?month=YYYY-MM (current month by default).
func (h *ReportHandler) Stats(c *fiber.Ctx) error {
	orders := h.Term.Orders("all")
	rep := report.Build(orders, len(h.Term.Products()))

	month := c.Query("month", time.Now().Format("2006-01"))
	byDay, err := report.SalesByDay(orders, month)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid month")
	}
	return c.JSON(fiber.Map{"summary": rep.Summary, "salesByDay": byDay, "month": month})
}

// Download serves the report as an Excel-compatible HTML table, the same
// format the shop has always archived.
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	rep := report.Build(h.Term.Orders("all"), len(h.Term.Products()))

	filename := "sales_report_" + time.Now().Format("2006-01-02") + ".xls"
	if err := c.Render("report", rep); err != nil {
		return err
	}
	// Render overwrites Content-Type with text/html, so set headers after it.
	c.Set(fiber.HeaderContentType, "application/vnd.ms-excel")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return nil
}
