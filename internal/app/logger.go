// Package app provides logger initialization.
package app

import (
	"github.com/guttosm/pack-pricing-service/config"
	"github.com/guttosm/pack-pricing-service/internal/logger"
)

// InitializeLogger configures the global zerolog logger from LOG_LEVEL and LOG_PRETTY.
func InitializeLogger(cfg config.LogConfig) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Pretty)
}
