package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "gpt-5.1", cfg.Service.Model)
	assert.Equal(t, "high", cfg.Service.Effort)
	assert.Equal(t, "whiteboard", cfg.Whiteboard.Root)
	assert.Equal(t, 120*time.Second, cfg.Service.Timeout.Duration())
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
service:
  model: test-model
  timeout: 30s
whiteboard:
  root: /tmp/wb
logging:
  level: debug
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test-model", cfg.Service.Model)
	assert.Equal(t, 30*time.Second, cfg.Service.Timeout.Duration())
	assert.Equal(t, "/tmp/wb", cfg.Whiteboard.Root)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched fields keep defaults.
	assert.Equal(t, "high", cfg.Service.Verbosity)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service:\n  model: from-file\n"), 0o600))

	t.Setenv("SERVICE_MODEL", "from-env")
	t.Setenv("SERVICE_API_KEY", "sk-test")
	t.Setenv("TELEMETRY_SAMPLE_RATE", "0.5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Service.Model)
	assert.Equal(t, "sk-test", cfg.Service.APIKey.Value())
	assert.Equal(t, 0.5, cfg.Telemetry.SampleRate)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestTransformEnv(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SERVICE_API_KEY", "service.api_key"},
		{"SERVICE_BASE_URL", "service.base_url"},
		{"WHITEBOARD_ROOT", "whiteboard.root"},
		{"TELEMETRY_SERVICE_NAME", "telemetry.service_name"},
		{"PATH", ""},
		{"HOME", ""},
		{"SERVICE_", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, transformEnv(tt.in), tt.in)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.Error(t, cfg.Validate(), "missing api key")

	cfg.Service.APIKey = "sk-test"
	require.NoError(t, cfg.Validate())

	cfg.Telemetry.SampleRate = 2
	require.Error(t, cfg.Validate())
}

func TestSecretRedaction(t *testing.T) {
	s := Secret("sk-very-secret")

	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "sk-very-secret", s.Value())
	assert.True(t, s.IsSet())

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "very-secret")
}

func TestDurationUnmarshalText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("90s")))
	assert.Equal(t, 90*time.Second, d.Duration())

	require.Error(t, d.UnmarshalText([]byte("-5s")))
	require.Error(t, d.UnmarshalText([]byte("not-a-duration")))
}
