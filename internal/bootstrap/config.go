package bootstrap

import (
	"flag"
	"fmt"

	"github.com/GintasS/social-media-post-generator/internal/config"
	"github.com/GintasS/social-media-post-generator/internal/logger"
)

// LoadConfig loads configuration. Uses the -config flag with CONFIG_PATH
// as the fallback.
func LoadConfig() (*config.Config, error) {
	configPath := flag.String("config", config.GetConfigPath("config.yml"), "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load[config.Config](*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.SetDefaults()
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// CreateLogger creates a logger instance from configuration.
func CreateLogger(cfg *config.Config, version string) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development || cfg.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(
		logger.String("service", "post-generator"),
		logger.String("version", version),
	), nil
}
