// Package config provides configuration loading for the whiteboard tools.
package config

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration wraps time.Duration for text unmarshaling (YAML, env vars).
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if parsed < 0 {
		return fmt.Errorf("duration cannot be negative: %s", text)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration().String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Secret wraps strings that should be redacted in logs and serialization.
// Use Value() to access the actual secret value.
type Secret string

// String implements fmt.Stringer. Always returns a redacted value.
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

// Value returns the actual secret value. Use sparingly.
func (s Secret) Value() string {
	return string(s)
}

// IsSet returns true if the secret has a non-empty value.
func (s Secret) IsSet() bool {
	return s != ""
}

// MarshalJSON implements json.Marshaler. Always returns a redacted value.
func (s Secret) MarshalJSON() ([]byte, error) {
	if s == "" {
		return json.Marshal("")
	}
	return json.Marshal("[REDACTED]")
}

// Config is the root configuration for wbrun and wbctl.
type Config struct {
	Service    ServiceConfig    `koanf:"service"`
	Whiteboard WhiteboardConfig `koanf:"whiteboard"`
	Logging    LoggingConfig    `koanf:"logging"`
	Telemetry  TelemetryConfig  `koanf:"telemetry"`
}

// ServiceConfig configures the reasoning service client.
type ServiceConfig struct {
	// BaseURL of the reasoning service API.
	BaseURL string `koanf:"base_url"`

	// APIKey authenticates requests. Usually set via SERVICE_API_KEY.
	APIKey Secret `koanf:"api_key"`

	// Model names the served model.
	Model string `koanf:"model"`

	// Effort and Verbosity are the default levels for produce calls.
	Effort    string `koanf:"effort"`
	Verbosity string `koanf:"verbosity"`

	// Timeout bounds each request.
	Timeout Duration `koanf:"timeout"`
}

// WhiteboardConfig configures snapshot persistence.
type WhiteboardConfig struct {
	// Root is the durable store directory.
	Root string `koanf:"root"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is "json" or "console".
	Format string `koanf:"format"`
}

// TelemetryConfig configures OpenTelemetry export.
type TelemetryConfig struct {
	Enabled        bool    `koanf:"enabled"`
	Endpoint       string  `koanf:"endpoint"`
	Protocol       string  `koanf:"protocol"` // "grpc" or "http/protobuf"
	Insecure       bool    `koanf:"insecure"`
	ServiceName    string  `koanf:"service_name"`
	ServiceVersion string  `koanf:"service_version"`
	SampleRate     float64 `koanf:"sample_rate"`
}

// Default returns the baseline configuration before file and env overrides.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			Model:     "gpt-5.1",
			Effort:    "high",
			Verbosity: "high",
			Timeout:   Duration(120 * time.Second),
		},
		Whiteboard: WhiteboardConfig{
			Root: "whiteboard",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Telemetry: TelemetryConfig{
			Enabled:        false,
			Endpoint:       "localhost:4317",
			Protocol:       "grpc",
			Insecure:       true,
			ServiceName:    "whiteboard",
			ServiceVersion: "0.1.0",
			SampleRate:     1.0,
		},
	}
}

// Validate checks cross-field constraints that koanf cannot express.
func (c *Config) Validate() error {
	if !c.Service.APIKey.IsSet() {
		return fmt.Errorf("service.api_key is required (set SERVICE_API_KEY)")
	}
	if c.Service.Model == "" {
		return fmt.Errorf("service.model is required")
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry.endpoint is required when telemetry is enabled")
	}
	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		return fmt.Errorf("telemetry.sample_rate must be between 0 and 1")
	}
	return nil
}
