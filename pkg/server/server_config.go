package server

import (
	"fmt"
	"time"
)

// ServerConfig holds the configuration for the segmentation server.
type ServerConfig struct {
	// Addr is the address to listen on (e.g., ":8080").
	Addr string `yaml:"addr"`

	// AuthToken is the bearer token required on /v1 routes.
	// If empty, authentication is disabled.
	AuthToken string `yaml:"auth_token"`

	// MaxTextBytes caps the size of a request body or WebSocket frame.
	MaxTextBytes int64 `yaml:"max_text_bytes"`

	// MaxBatchSize caps the number of texts in one batch request.
	MaxBatchSize int `yaml:"max_batch_size"`

	// BatchWorkers bounds concurrent texts per batch request.
	// 0 means GOMAXPROCS.
	BatchWorkers int `yaml:"batch_workers"`

	// ReadTimeout and WriteTimeout apply to plain HTTP requests.
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// ReadBufferSize is the WebSocket read buffer size.
	ReadBufferSize int `yaml:"read_buffer_size"`

	// WriteBufferSize is the WebSocket write buffer size.
	WriteBufferSize int `yaml:"write_buffer_size"`
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:            ":8080",
		MaxTextBytes:    1 << 20,
		MaxBatchSize:    256,
		BatchWorkers:    0,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
	}
}

// Validate checks the limits are usable.
func (c *ServerConfig) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("server addr is empty")
	case c.MaxTextBytes <= 0:
		return fmt.Errorf("max_text_bytes must be positive, got %d", c.MaxTextBytes)
	case c.MaxBatchSize <= 0:
		return fmt.Errorf("max_batch_size must be positive, got %d", c.MaxBatchSize)
	case c.BatchWorkers < 0:
		return fmt.Errorf("batch_workers must not be negative, got %d", c.BatchWorkers)
	}
	return nil
}
