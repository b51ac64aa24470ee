package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"payproc/internal/config"
)

// New builds the process-wide zap logger from log settings. Format "json"
// emits one structured line per entry; anything else uses the human-readable
// console encoder.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}
