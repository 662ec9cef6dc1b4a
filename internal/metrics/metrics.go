package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters and gauges exported on the optional /metrics endpoint.
var (
	ProductsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "marketbot",
		Name:      "products_added_total",
		Help:      "Products recorded through the add dialog.",
	})

	SweepRuns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "marketbot",
		Subsystem: "sweeper",
		Name:      "runs_total",
		Help:      "Completed expiry sweep passes.",
	})

	SweepNotifications = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "marketbot",
		Subsystem: "sweeper",
		Name:      "notifications_total",
		Help:      "Expiry notifications delivered.",
	})

	SweepDeletes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "marketbot",
		Subsystem: "sweeper",
		Name:      "deletes_total",
		Help:      "Expired products removed from storage.",
	})

	SweeperAlive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "marketbot",
		Subsystem: "sweeper",
		Name:      "alive",
		Help:      "1 while the sweep loop is running, 0 after it stops.",
	})

	AccessDenied = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "marketbot",
		Name:      "access_denied_total",
		Help:      "Updates rejected by the allow list.",
	})
)
