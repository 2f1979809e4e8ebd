package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// envSections are the config sections settable from the environment.
var envSections = []string{"SERVICE_", "WHITEBOARD_", "LOGGING_", "TELEMETRY_"}

// Load builds configuration with the precedence (highest last applied):
//
//	defaults <- YAML config file <- environment variables
//
// Environment variables use underscore separators and map section-first:
// SERVICE_API_KEY -> service.api_key, TELEMETRY_SAMPLE_RATE ->
// telemetry.sample_rate. Unknown variables are ignored.
//
// An empty configPath falls back to ~/.config/whiteboard/config.yaml when
// that file exists; a missing default file is not an error.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	explicit := configPath != ""
	if !explicit {
		if home, err := os.UserHomeDir(); err == nil {
			configPath = filepath.Join(home, ".config", "whiteboard", "config.yaml")
		}
	}

	if configPath != "" {
		content, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
			}
		case explicit || !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", transformEnv), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.TextUnmarshallerHookFunc(),
			Result:           cfg,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// transformEnv maps SECTION_FIELD_NAME to section.field_name. Variables
// outside the known sections are dropped.
func transformEnv(s string) string {
	for _, section := range envSections {
		if strings.HasPrefix(s, section) && len(s) > len(section) {
			return strings.ToLower(strings.TrimSuffix(section, "_")) + "." + strings.ToLower(s[len(section):])
		}
	}
	return ""
}
