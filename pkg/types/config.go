package types

import (
	"time"

	"github.com/averycrespi/calculatte-mcp/pkg/calculus"
)

// Transport names accepted by ServerConfig.Transport
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// Config represents the configuration for the calculatte-mcp server
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server" envconfig:"SERVER"`
	Logging   LogConfig       `json:"logging" yaml:"logging" envconfig:"LOGGING"`
	Metrics   MetricsConfig   `json:"metrics" yaml:"metrics" envconfig:"METRICS"`
	RateLimit RateLimitConfig `json:"rate_limit" yaml:"rate_limit" envconfig:"RATE_LIMIT"`
	Accuracy  AccuracyConfig  `json:"accuracy" yaml:"accuracy" envconfig:"ACCURACY"`
}

// ServerConfig selects how MCP clients reach the server
type ServerConfig struct {
	Transport string `json:"transport" yaml:"transport" envconfig:"TRANSPORT"`
	Address   string `json:"address,omitempty" yaml:"address" envconfig:"ADDRESS"`
	BaseURL   string `json:"base_url,omitempty" yaml:"base_url" envconfig:"BASE_URL"`

	// CallTimeout bounds the evaluation time of a single tool call. Zero disables it.
	CallTimeout time.Duration `json:"call_timeout" yaml:"call_timeout" envconfig:"CALL_TIMEOUT"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level       string `json:"level" yaml:"level" envconfig:"LEVEL"`
	Development bool   `json:"development" yaml:"development" envconfig:"DEVELOPMENT"`
}

// MetricsConfig holds the Prometheus endpoint configuration. An empty address disables it.
type MetricsConfig struct {
	Address string `json:"address,omitempty" yaml:"address" envconfig:"ADDRESS"`
}

// RateLimitConfig bounds how many tool calls are evaluated per second
type RateLimitConfig struct {
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" envconfig:"RPS"`
	Burst             int     `json:"burst" yaml:"burst" envconfig:"BURST"`
	Enabled           bool    `json:"enabled" yaml:"enabled" envconfig:"ENABLED"`
}

// AccuracyConfig mirrors calculus.Config so it can be loaded from files and the environment
type AccuracyConfig struct {
	SampleCount         int                `json:"sample_count" yaml:"sample_count" envconfig:"SAMPLE_COUNT"`
	DerivativeStep      float64            `json:"derivative_step" yaml:"derivative_step" envconfig:"DERIVATIVE_STEP"`
	DerivativeOffset    float64            `json:"derivative_offset" yaml:"derivative_offset" envconfig:"DERIVATIVE_OFFSET"`
	DerivativeTolerance float64            `json:"derivative_tolerance" yaml:"derivative_tolerance" envconfig:"DERIVATIVE_TOLERANCE"`
	LimitOffset         float64            `json:"limit_offset" yaml:"limit_offset" envconfig:"LIMIT_OFFSET"`
	LimitTolerance      float64            `json:"limit_tolerance" yaml:"limit_tolerance" envconfig:"LIMIT_TOLERANCE"`
	LimitInfinityProbe  float64            `json:"limit_infinity_probe" yaml:"limit_infinity_probe" envconfig:"LIMIT_INFINITY_PROBE"`
	PositiveInfinity    float64            `json:"positive_infinity" yaml:"positive_infinity" envconfig:"POSITIVE_INFINITY"`
	NegativeInfinity    float64            `json:"negative_infinity" yaml:"negative_infinity" envconfig:"NEGATIVE_INFINITY"`
	Precision           calculus.Precision `json:"precision" yaml:"precision" envconfig:"PRECISION"`
}

// NewAccuracyConfig copies an engine configuration
func NewAccuracyConfig(c calculus.Config) AccuracyConfig {
	return AccuracyConfig{
		SampleCount:         c.SampleCount,
		DerivativeStep:      c.DerivativeStep,
		DerivativeOffset:    c.DerivativeOffset,
		DerivativeTolerance: c.DerivativeTolerance,
		LimitOffset:         c.LimitOffset,
		LimitTolerance:      c.LimitTolerance,
		LimitInfinityProbe:  c.LimitInfinityProbe,
		PositiveInfinity:    c.PositiveInfinity,
		NegativeInfinity:    c.NegativeInfinity,
		Precision:           c.Precision,
	}
}

// Engine converts the accuracy settings into an engine configuration
func (a AccuracyConfig) Engine() calculus.Config {
	return calculus.Config{
		SampleCount:         a.SampleCount,
		DerivativeStep:      a.DerivativeStep,
		DerivativeOffset:    a.DerivativeOffset,
		DerivativeTolerance: a.DerivativeTolerance,
		LimitOffset:         a.LimitOffset,
		LimitTolerance:      a.LimitTolerance,
		LimitInfinityProbe:  a.LimitInfinityProbe,
		PositiveInfinity:    a.PositiveInfinity,
		NegativeInfinity:    a.NegativeInfinity,
		Precision:           a.Precision,
	}
}
