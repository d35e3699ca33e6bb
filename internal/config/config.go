package config

import (
	"fmt"
	"time"

	"github.com/GintasS/social-media-post-generator/internal/history"
	"github.com/GintasS/social-media-post-generator/internal/httpx"
	"github.com/GintasS/social-media-post-generator/internal/workflow"
)

// Config is the full service configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Backend    BackendConfig    `yaml:"backend"`
	Generation GenerationConfig `yaml:"generation"`
	Log        LogConfig        `yaml:"log"`
	Debug      bool             `yaml:"debug" env:"DEBUG"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// BackendConfig points at the generation backend.
type BackendConfig struct {
	BaseURL string        `yaml:"base_url" env:"BACKEND_BASE_URL"`
	Timeout time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT"`
}

// GenerationConfig tunes per-session workflow behavior.
type GenerationConfig struct {
	// HistoryCap bounds each session's batch ledger; 0 means unbounded.
	HistoryCap int `yaml:"history_cap" env:"HISTORY_CAP"`
	// CopiedTTL is how long the copied indicator stays visible.
	CopiedTTL time.Duration `yaml:"copied_ttl" env:"COPIED_TTL"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level       string `yaml:"level" env:"LOG_LEVEL"`
	Development bool   `yaml:"development" env:"LOG_DEVELOPMENT"`
}

// SetDefaults fills in zero-valued fields.
func (c *Config) SetDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8090
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 120 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}
	if c.Backend.Timeout == 0 {
		// Generation calls routinely run tens of seconds.
		c.Backend.Timeout = httpx.DefaultTimeout
	}
	if c.Generation.HistoryCap == 0 {
		c.Generation.HistoryCap = history.DefaultMaxBatches
	}
	if c.Generation.CopiedTTL == 0 {
		c.Generation.CopiedTTL = workflow.DefaultCopiedTTL
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks the fields no default can supply.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	return nil
}

// Address returns the listen address for the HTTP server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
