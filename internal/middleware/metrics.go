package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// InitMetrics creates the HTTP metrics collector for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler that records per-request
// latency and status metrics.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}

// RedisErrors counts failed Redis commands by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "echos_redis_errors_total",
	Help: "Number of Redis command errors.",
}, []string{"command"})

// PolicyDenials counts authorization denials at the service boundary.
var PolicyDenials = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "echos_policy_denials_total",
	Help: "Number of operations denied by ownership or role policy.",
}, []string{"operation"})

// LikeToggles counts like toggle transitions by outcome.
var LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "echos_like_toggles_total",
	Help: "Number of like toggles by resulting state.",
}, []string{"state"})
