package grpc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	grpcAdapter "noto/internal/noto/adapters/grpc"
	"noto/internal/noto/config"
	"noto/pkg/logger"
	"noto/pkg/metrics"
)

func startServer(t *testing.T, m *metrics.Metrics) (*grpcAdapter.Server, healthpb.HealthClient) {
	t.Helper()
	logger.SetGlobalLogger(logger.NewNop())
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	ctx := context.Background()
	server := grpcAdapter.New(&config.GRPCConfig{Host: "127.0.0.1", Port: 0}, m)
	require.NoError(t, server.Start(ctx))
	t.Cleanup(func() { server.Stop(ctx) })

	conn, err := grpc.NewClient(server.Addr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return server, healthpb.NewHealthClient(conn)
}

func status(t *testing.T, client healthpb.HealthClient) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: grpcAdapter.ServiceName})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHealth(t *testing.T) {
	m := metrics.New("grpc_test")
	server, client := startServer(t, m)
	ctx := context.Background()

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, client))

	ok := func(context.Context) error { return nil }
	failing := func(context.Context) error { return errors.New("database is down") }

	assert.True(t, server.Probe(ctx, ok, ok))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client))

	assert.False(t, server.Probe(ctx, ok, failing))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, client))

	families, err := m.Registry.Gather()
	require.NoError(t, err)
	found := false
	for _, f := range families {
		if f.GetName() == "noto_grpc_test_requests_total" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestProbeWithoutChecks(t *testing.T) {
	server, client := startServer(t, nil)

	assert.True(t, server.Probe(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client))
}
