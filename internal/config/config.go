package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/averycrespi/calculatte-mcp/internal/logging"
	"github.com/averycrespi/calculatte-mcp/pkg/calculus"
	"github.com/averycrespi/calculatte-mcp/pkg/types"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. CALCULATTE_ACCURACY_SAMPLE_COUNT
const EnvPrefix = "CALCULATTE"

// Default returns default configuration
func Default() *types.Config {
	return &types.Config{
		Server: types.ServerConfig{
			Transport:   types.TransportStdio,
			Address:     "localhost:8080",
			CallTimeout: 30 * time.Second,
		},
		Logging: logging.DefaultConfig(),
		Metrics: types.MetricsConfig{},
		RateLimit: types.RateLimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
			Enabled:           false,
		},
		Accuracy: types.NewAccuracyConfig(calculus.DefaultConfig()),
	}
}

// Load builds the configuration from defaults, then the YAML file at path (if any),
// then environment variables
func Load(path string) (*types.Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section of cfg
func Validate(cfg *types.Config) error {
	var errs []error

	switch cfg.Server.Transport {
	case types.TransportStdio:
	case types.TransportSSE:
		if cfg.Server.Address == "" {
			errs = append(errs, errors.New("sse transport requires a listen address"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown transport %q: must be %s or %s",
			cfg.Server.Transport, types.TransportStdio, types.TransportSSE))
	}

	if cfg.Server.CallTimeout < 0 {
		errs = append(errs, fmt.Errorf("call timeout must not be negative: got %s", cfg.Server.CallTimeout))
	}

	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		errs = append(errs, err)
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.RequestsPerSecond <= 0 {
			errs = append(errs, fmt.Errorf("rate limit must be positive: got %v", cfg.RateLimit.RequestsPerSecond))
		}
		if cfg.RateLimit.Burst < 1 {
			errs = append(errs, fmt.Errorf("rate limit burst must be at least 1: got %d", cfg.RateLimit.Burst))
		}
	}

	if err := cfg.Accuracy.Engine().Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
