// Package report builds the sales report: summary statistics, per-order rows,
// and the sales-by-day series behind the monthly chart.
package report

import (
	"fmt"
	"strings"
	"time"

	"stitchpos/internal/domain"
)

type Summary struct {
	TotalRevenue    float64 `json:"totalRevenue"`
	TotalOrders     int     `json:"totalOrders"`
	PendingOrders   int     `json:"pendingOrders"`
	CompletedOrders int     `json:"completedOrders"`
	InventoryItems  int     `json:"inventoryItems"`
}

// Row is one order line in the exported table.
type Row struct {
	ID       int
	Customer string
	Date     string
	DueDate  string
	Status   string
	Total    string
	Items    string
}

type Report struct {
	Generated string
	Summary   Summary
	Rows      []Row
}

func Build(orders []domain.Order, inventoryItems int) Report {
	r := Report{Generated: time.Now().Format("2006-01-02 15:04:05")}
	r.Summary.InventoryItems = inventoryItems
	r.Summary.TotalOrders = len(orders)
	for _, o := range orders {
		r.Summary.TotalRevenue += o.Total
		switch o.Status {
		case domain.StatusPending:
			r.Summary.PendingOrders++
		case domain.StatusCompleted:
			r.Summary.CompletedOrders++
		}

		items := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, fmt.Sprintf("%s (Qty: %d)", it.Name, it.Qty))
		}
		r.Rows = append(r.Rows, Row{
			ID:       o.ID,
			Customer: o.Customer,
			Date:     o.Date,
			DueDate:  o.DueDate,
			Status:   o.Status,
			Total:    fmt.Sprintf("%.2f", o.Total),
			Items:    strings.Join(items, ", "),
		})
	}
	return r
}

// DayTotal is one bar of the monthly chart.
type DayTotal struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Amount float64 `json:"amount"`
}

// SalesByDay groups order totals by date and fills every day of the given
// month ("YYYY-MM"), zero for days with no sales.
func SalesByDay(orders []domain.Order, month string) ([]DayTotal, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, err
	}
	byDay := map[string]float64{}
	for _, o := range orders {
		byDay[o.Date] += o.Total
	}
	days := first.AddDate(0, 1, -1).Day()
	out := make([]DayTotal, 0, days)
	for d := 1; d <= days; d++ {
		date := fmt.Sprintf("%s-%02d", month, d)
		out = append(out, DayTotal{Date: date, Amount: byDay[date]})
	}
	return out, nil
}
