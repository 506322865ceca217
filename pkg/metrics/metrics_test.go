package metrics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"noto/pkg/metrics"
)

func TestObserveSettingsWrite(t *testing.T) {
	m := metrics.New("test")

	m.ObserveSettingsWrite("memory", nil)
	m.ObserveSettingsWrite("memory", nil)
	m.ObserveSettingsWrite("memory", errors.New("disk full"))

	assert.InDelta(t, 2, testutil.ToFloat64(m.SettingsWrites.WithLabelValues("memory", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SettingsWrites.WithLabelValues("memory", "error")), 0)
}

func TestUnaryServerInterceptor(t *testing.T) {
	m := metrics.New("test")
	interceptor := metrics.UnaryServerInterceptor(m)
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	_, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)

	_, err = interceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.NotFound, "nope")
	})
	require.Error(t, err)

	assert.InDelta(t, 1, testutil.ToFloat64(m.RequestCounter.WithLabelValues("grpc", info.FullMethod, "OK")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RequestCounter.WithLabelValues("grpc", info.FullMethod, "NotFound")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.RequestsInFlight.WithLabelValues("grpc")), 0)
}

func TestRecordDBPoolStats(t *testing.T) {
	m := metrics.New("test")
	m.RecordDBPoolStats(5, 2, 3)
	m.ObserveRequest("http", "/x", "200", time.Millisecond)

	assert.InDelta(t, 5, testutil.ToFloat64(m.DBConnPoolStats.WithLabelValues("total")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.DBConnPoolStats.WithLabelValues("idle")), 0)
}
