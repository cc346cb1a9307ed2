// Package metrics exposes the Prometheus instruments used across the
// service. All collectors are registered on the default registry and served
// from the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_orders_created_total",
		Help: "Total number of orders successfully placed.",
	})

	StatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_order_transitions_total",
		Help: "Total number of successful order status transitions.",
	},
		[]string{"status"},
	)

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_operation_errors_total",
		Help: "Total number of failed order operations.",
	},
		[]string{"operation"},
	)

	OverdueOrders = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "marketplace_overdue_orders",
		Help: "Number of active orders currently past their due date.",
	})
)
