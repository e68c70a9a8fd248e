package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opentre_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	TemplatesRegisteredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opentre_templates_registered_total",
			Help: "Total resource template registrations",
		},
		[]string{"resource_type"},
	)

	WorkspacesCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "opentre_workspaces_created_total",
			Help: "Total workspace creations accepted for provisioning",
		},
	)

	DispatchFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "opentre_dispatch_failures_total",
			Help: "Total provisioning message publish failures",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		TemplatesRegisteredTotal,
		WorkspacesCreatedTotal,
		DispatchFailuresTotal,
	)
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// EchoMiddleware returns Echo middleware that instruments HTTP requests.
func EchoMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			HTTPRequestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				strconv.Itoa(status),
			).Inc()

			_ = duration
			return err
		}
	}
}
