package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"noto/pkg/metrics"
)

const transportHTTP = "http"

// NewMetricsMiddleware учитывает запросы в метриках. Метод помечается шаблоном маршрута.
func NewMetricsMiddleware(m *metrics.Metrics) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		m.RequestsInFlight.WithLabelValues(transportHTTP).Inc()
		defer m.RequestsInFlight.WithLabelValues(transportHTTP).Dec()

		start := time.Now()
		err := ctx.Next()

		route := ctx.Path()
		if r := ctx.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		m.ObserveRequest(transportHTTP, ctx.Method()+" "+route,
			strconv.Itoa(ctx.Response().StatusCode()), time.Since(start))
		return err
	}
}
