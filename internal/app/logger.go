// Package app provides logger initialization.
package app

import (
	"os"

	"github.com/guttosm/fulfillment-service/internal/logger"
)

// InitializeLogger configures the global zerolog logger from LOG_LEVEL and
// LOG_PRETTY. The level defaults to info.
func InitializeLogger() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	logger.Init(level, os.Getenv("LOG_PRETTY") == "true")
}
