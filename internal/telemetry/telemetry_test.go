package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/whiteboard/internal/config"
)

func TestNewDisabled(t *testing.T) {
	tel, err := New(context.Background(), config.TelemetryConfig{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, tel)

	// No providers installed; shutdown is a no-op.
	assert.Nil(t, tel.tracerProvider)
	assert.Nil(t, tel.meterProvider)
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestNewEnabledGRPC(t *testing.T) {
	// Exporter construction is lazy for gRPC; no collector needed.
	tel, err := New(context.Background(), config.TelemetryConfig{
		Enabled:        true,
		Endpoint:       "localhost:4317",
		Protocol:       "grpc",
		Insecure:       true,
		ServiceName:    "whiteboard-test",
		ServiceVersion: "0.0.0",
		SampleRate:     0.5,
	})
	require.NoError(t, err)
	require.NotNil(t, tel.tracerProvider)
	require.NotNil(t, tel.meterProvider)

	// No collector is listening; shutdown may surface a flush error but
	// must not hang past its timeout.
	_ = tel.Shutdown(context.Background())
}
