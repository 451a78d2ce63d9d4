package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	OrdersPlaced       prometheus.Counter
	OrderValue         prometheus.Counter
	StockWriteFailures prometheus.Counter
	ProductsRetired    prometheus.Counter
	Logins             prometheus.Counter
	LoginFailures      prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{Name: "pos_orders_placed_total"})
	orderValue := prometheus.NewCounter(prometheus.CounterOpts{Name: "pos_order_value_total"})
	stockWriteFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "pos_stock_write_failures_total"})
	productsRetired := prometheus.NewCounter(prometheus.CounterOpts{Name: "pos_products_retired_total"})
	logins := prometheus.NewCounter(prometheus.CounterOpts{Name: "pos_logins_total"})
	loginFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "pos_login_failures_total"})

	r.MustRegister(ordersPlaced, orderValue, stockWriteFailures, productsRetired, logins, loginFailures)
	return &Registry{
		reg:                r,
		OrdersPlaced:       ordersPlaced,
		OrderValue:         orderValue,
		StockWriteFailures: stockWriteFailures,
		ProductsRetired:    productsRetired,
		Logins:             logins,
		LoginFailures:      loginFailures,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
