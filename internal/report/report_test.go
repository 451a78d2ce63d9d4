package report

import (
	"testing"

	"stitchpos/internal/domain"
)

func TestBuildSummaryAndRows(t *testing.T) {
	orders := []domain.Order{
		{
			ID: 1002, Customer: "Dana Reyes", Total: 25.50,
			Status: domain.StatusCompleted, Date: "2026-02-10", DueDate: "2026-02-17",
			Items: []domain.OrderItem{
				{Name: "Monogram", Qty: 1, Price: 15.50},
				{Name: "Rayon Thread", Qty: 2, Price: 5.00},
			},
		},
		{
			ID: 1001, Customer: "Walk-in Customer", Total: 10.00,
			Status: domain.StatusPending, Date: "2026-02-09", DueDate: "2026-02-16",
			Items: []domain.OrderItem{{Name: "Canvas Tote", Qty: 1, Price: 10.00}},
		},
	}

	r := Build(orders, 7)
	if r.Summary.TotalRevenue != 35.50 {
		t.Fatalf("revenue: %v", r.Summary.TotalRevenue)
	}
	if r.Summary.TotalOrders != 2 || r.Summary.PendingOrders != 1 || r.Summary.CompletedOrders != 1 {
		t.Fatalf("counts: %+v", r.Summary)
	}
	if r.Summary.InventoryItems != 7 {
		t.Fatalf("inventory items: %d", r.Summary.InventoryItems)
	}
	if len(r.Rows) != 2 {
		t.Fatalf("rows: %d", len(r.Rows))
	}
	if r.Rows[0].Total != "25.50" {
		t.Fatalf("total formatting: %q", r.Rows[0].Total)
	}
	if r.Rows[0].Items != "Monogram (Qty: 1), Rayon Thread (Qty: 2)" {
		t.Fatalf("items column: %q", r.Rows[0].Items)
	}
}

func TestBuildEmpty(t *testing.T) {
	r := Build(nil, 0)
	if r.Summary.TotalOrders != 0 || r.Summary.TotalRevenue != 0 || len(r.Rows) != 0 {
		t.Fatalf("empty build: %+v", r)
	}
}

func TestSalesByDayFillsMonth(t *testing.T) {
	orders := []domain.Order{
		{ID: 1, Total: 10.00, Date: "2026-02-03"},
		{ID: 2, Total: 5.00, Date: "2026-02-03"},
		{ID: 3, Total: 7.25, Date: "2026-02-28"},
		{ID: 4, Total: 99.00, Date: "2026-03-01"}, // outside month
	}
	days, err := SalesByDay(orders, "2026-02")
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 28 {
		t.Fatalf("Feb 2026 has 28 days, got %d", len(days))
	}
	if days[2].Date != "2026-02-03" || days[2].Amount != 15.00 {
		t.Fatalf("day 3: %+v", days[2])
	}
	if days[27].Amount != 7.25 {
		t.Fatalf("day 28: %+v", days[27])
	}
	for i, d := range days {
		if i != 2 && i != 27 && d.Amount != 0 {
			t.Fatalf("day %s should be zero, got %v", d.Date, d.Amount)
		}
	}
}

func TestSalesByDayLeapYear(t *testing.T) {
	days, err := SalesByDay(nil, "2028-02")
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 29 {
		t.Fatalf("Feb 2028 has 29 days, got %d", len(days))
	}
}

func TestSalesByDayBadMonth(t *testing.T) {
	if _, err := SalesByDay(nil, "February"); err == nil {
		t.Fatal("want parse error")
	}
}
