// Package config loads textseg configuration from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/realtime-ai/textseg/pkg/logging"
	"github.com/realtime-ai/textseg/pkg/server"
	"github.com/realtime-ai/textseg/pkg/tokenizer"
	"github.com/realtime-ai/textseg/pkg/trace"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Environment variables that override file values.
const (
	EnvAddr           = "TEXTSEG_ADDR"
	EnvAuthToken      = "TEXTSEG_AUTH_TOKEN"
	EnvLogLevel       = "TEXTSEG_LOG_LEVEL"
	EnvNormalizeASCII = "TEXTSEG_NORMALIZE_ASCII"
	EnvKeepWhitespace = "TEXTSEG_KEEP_WHITESPACE"
	EnvTraceExporter  = "TRACE_EXPORTER"
	EnvOTLPEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvEnvironment    = "ENVIRONMENT"
)

// Config is the whole textseg configuration.
type Config struct {
	Tokenizer tokenizer.RuleConfig `yaml:"tokenizer"`
	Server    server.ServerConfig  `yaml:"server"`
	Trace     trace.Config         `yaml:"trace"`
	Log       logging.Config       `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Tokenizer: *tokenizer.DefaultRuleConfig(),
		Server:    *server.DefaultServerConfig(),
		Trace:     *trace.DefaultConfig(),
		Log:       logging.DefaultConfig(),
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path, or a path that does not exist,
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
			// defaults
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvAuthToken); v != "" {
		c.Server.AuthToken = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvTraceExporter); v != "" {
		c.Trace.ExporterType = v
	}
	if v := os.Getenv(EnvOTLPEndpoint); v != "" {
		c.Trace.OTLPEndpoint = v
	}
	if v := os.Getenv(EnvEnvironment); v != "" {
		c.Trace.Environment = v
	}

	for name, dst := range map[string]*bool{
		EnvNormalizeASCII: &c.Tokenizer.NormalizeASCII,
		EnvKeepWhitespace: &c.Tokenizer.KeepWhitespace,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, name, v)
		}
		*dst = b
	}
	return nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}

	switch c.Trace.ExporterType {
	case trace.ExporterNone, trace.ExporterStdout, trace.ExporterOTLP:
	default:
		return fmt.Errorf("%w: unknown trace exporter %q", ErrInvalidConfig, c.Trace.ExporterType)
	}
	if c.Trace.SamplingRate < 0 || c.Trace.SamplingRate > 1 {
		return fmt.Errorf("%w: sampling_rate must be within [0, 1], got %v", ErrInvalidConfig, c.Trace.SamplingRate)
	}
	return nil
}
