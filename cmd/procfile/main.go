// Command procfile runs the document pipeline against a local PDF and
// prints the processing result as JSON. Useful for smoke-testing
// extraction and validation without standing up the HTTP server.
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"payproc/internal/config"
	"payproc/internal/domain"
	"payproc/internal/extract"
	"payproc/internal/fields"
	"payproc/internal/inference/openai"
	"payproc/internal/logging"
	"payproc/internal/pipeline"
	"payproc/internal/port"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		input  = flag.String("input", "", "path to the PDF file to process")
		userID = flag.String("user", "", "user id to attach to the result")
		pretty = flag.Bool("pretty", true, "indent the JSON output")
	)
	flag.Parse()

	if *input == "" {
		flag.Usage()
		return fmt.Errorf("-input is required")
	}

	raw, err := os.ReadFile(*input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", *input, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	var model port.TextModel
	if cfg.Inference.Configured() {
		model = openai.NewClient(&cfg.Inference)
	}

	processor := pipeline.NewProcessor(
		extract.NewExtractor(model, cfg.Extract.MaxFallbackBase64Chars, logger),
		fields.NewExtractor(model, logger),
		fields.NewDueDateNormalizer(model, logger),
		logger,
	)

	result, err := processor.Process(context.Background(), domain.ProcessRequest{
		DocumentBase64: base64.StdEncoding.EncodeToString(raw),
		UserID:         *userID,
		FileName:       filepath.Base(*input),
	})
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
