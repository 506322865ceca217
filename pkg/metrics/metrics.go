// Package metrics содержит метрики Prometheus для HTTP, gRPC и хранилища настроек.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

const namespace = "noto"

// Metrics хранит метрики сервиса.
type Metrics struct {
	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight *prometheus.GaugeVec
	SettingsWrites   *prometheus.CounterVec
	DBConnPoolStats  *prometheus.GaugeVec
	Registry         *prometheus.Registry
}

// New регистрирует метрики в отдельном реестре.
func New(subsystem string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Total number of requests",
			},
			[]string{"transport", "method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"transport", "method"},
		),
		RequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_in_flight",
				Help:      "Number of requests currently being processed",
			},
			[]string{"transport"},
		),
		SettingsWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "settings_writes_total",
				Help:      "Settings store edits by outcome",
			},
			[]string{"backend", "outcome"},
		),
		DBConnPoolStats: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "db_connection_pool",
				Help:      "Database connection pool statistics",
			},
			[]string{"stat"},
		),
	}
}

// ObserveRequest учитывает завершенный запрос.
func (m *Metrics) ObserveRequest(transport, method, code string, elapsed time.Duration) {
	m.RequestCounter.WithLabelValues(transport, method, code).Inc()
	m.RequestDuration.WithLabelValues(transport, method).Observe(elapsed.Seconds())
}

// ObserveSettingsWrite учитывает запись в хранилище настроек.
func (m *Metrics) ObserveSettingsWrite(backend string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.SettingsWrites.WithLabelValues(backend, outcome).Inc()
}

// RecordDBPoolStats записывает состояние пула соединений.
func (m *Metrics) RecordDBPoolStats(total, acquired, idle int32) {
	m.DBConnPoolStats.WithLabelValues("total").Set(float64(total))
	m.DBConnPoolStats.WithLabelValues("acquired").Set(float64(acquired))
	m.DBConnPoolStats.WithLabelValues("idle").Set(float64(idle))
}

// UnaryServerInterceptor собирает метрики по unary-вызовам gRPC.
func UnaryServerInterceptor(m *Metrics) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		m.RequestsInFlight.WithLabelValues("grpc").Inc()
		defer m.RequestsInFlight.WithLabelValues("grpc").Dec()

		start := time.Now()
		resp, err := handler(ctx, req)
		m.ObserveRequest("grpc", info.FullMethod, status.Code(err).String(), time.Since(start))
		return resp, err
	}
}
