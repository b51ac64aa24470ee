package main

import (
	"fmt"
	"log"

	"payproc/internal/config"
	"payproc/internal/extract"
	"payproc/internal/fields"
	"payproc/internal/handler"
	"payproc/internal/inference/openai"
	"payproc/internal/logging"
	"payproc/internal/notify"
	"payproc/internal/pipeline"
	"payproc/internal/port"
	"payproc/internal/router"

	"go.uber.org/zap"
)

// @title payproc API
// @version 1.0
// @description Document processing API: text extraction, invoice field extraction, and validation.
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// Inference availability is resolved once at startup; a nil model
	// means every dependent component runs in degraded mode.
	var model port.TextModel
	if cfg.Inference.Configured() {
		model = openai.NewClient(&cfg.Inference)
	} else {
		logger.Warn("inference credentials not configured, extraction runs degraded")
	}

	processor := pipeline.NewProcessor(
		extract.NewExtractor(model, cfg.Extract.MaxFallbackBase64Chars, logger),
		fields.NewExtractor(model, logger),
		fields.NewDueDateNormalizer(model, logger),
		logger,
	)
	notifier := notify.NewNotifier(&cfg.Callback, logger)

	processH := handler.NewProcessHandler(processor, notifier)
	healthH := handler.NewHealthHandler(&cfg.Inference)

	r := router.Setup(cfg, logger, processH, healthH)

	logger.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
