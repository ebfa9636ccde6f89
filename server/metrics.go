package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kurir_orders_created_total",
		Help: "The total number of created orders",
	})

	routesOptimized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kurir_routes_optimized_total",
		Help: "The total number of successfully parsed route optimizations",
	})

	routesDegraded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kurir_routes_degraded_total",
		Help: "The number of optimizations that fell back to input order",
	})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kurir_request_duration_seconds",
		Help:    "Time spent handling API requests",
		Buckets: prometheus.DefBuckets,
	})
)

func (s *Server) MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		requestDuration.Observe(time.Since(start).Seconds())
		return err
	}
}
