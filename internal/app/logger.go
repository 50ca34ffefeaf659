// Package app provides logger initialization.
package app

import (
	"github.com/guttosm/count-service/config"
	"github.com/guttosm/count-service/internal/logger"
)

// InitializeLogger initializes the global zerolog logger.
func InitializeLogger(cfg config.LoggingConfig) {
	logger.Init(cfg.Level, cfg.Pretty)
}
