package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"savvy/internal/infra/metrics"
)

// MetricsMiddleware records request counts and latency per route pattern.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		path := c.Path()
		if path == "" {
			path = "unmatched"
		}
		m.metrics.ObserveHTTPRequest(c.Request().Method, path, c.Response().Status, time.Since(start))

		return nil
	}
}
