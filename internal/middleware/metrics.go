package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "daygrid_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// AvailabilitySubmissions counts availability submissions by outcome.
	AvailabilitySubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "daygrid_availability_submissions_total",
		Help: "Total availability submissions by outcome",
	}, []string{"outcome"})

	// ShareUpserts counts calendar share creations and overwrites.
	ShareUpserts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "daygrid_calendar_share_upserts_total",
		Help: "Total calendar share upserts by kind (created|updated)",
	}, []string{"kind"})
)

var (
	promOnce sync.Once
	promInst *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The instance is a singleton: the underlying collectors register with the
// default registry and must not be created twice.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInst = fiberprometheus.New(serviceName)
	})
	return promInst
}

// MetricsMiddleware returns the request-instrumentation handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
