package pipeline

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"go.uber.org/zap"

	"payproc/internal/biller"
	"payproc/internal/domain"
	"payproc/internal/extract"
	"payproc/internal/fields"
	"payproc/internal/validator"
)

// Processor runs the document pipeline: decode, extract text, classify the
// biller, extract fields, validate, assemble. Only the decode stage can
// fail; every later stage degrades per its own contract, so a request with
// valid base64 always produces a result.
type Processor struct {
	extractor  *extract.Extractor
	fields     *fields.Extractor
	normalizer *fields.DueDateNormalizer
	log        *zap.Logger
	now        func() time.Time
}

// NewProcessor creates a pipeline processor.
func NewProcessor(ex *extract.Extractor, fe *fields.Extractor, dn *fields.DueDateNormalizer, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{
		extractor:  ex,
		fields:     fe,
		normalizer: dn,
		log:        log,
		now:        time.Now,
	}
}

// Process runs one document through the pipeline. The returned error is one
// of the domain decode sentinels; anything past decode cannot fail.
func (p *Processor) Process(ctx context.Context, req domain.ProcessRequest) (*domain.ProcessingResult, error) {
	start := p.now()

	if req.DocumentBase64 == "" {
		return nil, domain.ErrMissingDocument
	}
	raw, err := base64.StdEncoding.DecodeString(req.DocumentBase64)
	if err != nil {
		return nil, domain.ErrInvalidBase64
	}

	text := p.extractor.Extract(ctx, raw)
	detected := biller.Classify(text)
	extracted := p.fields.Extract(ctx, text)

	var fieldErrs []domain.FieldError

	// Routing check runs before the date check; error order is load-bearing
	// for consumers that display problems in validation order.
	if extracted.RoutingNumber != nil && *extracted.RoutingNumber != "" {
		if !validator.ValidRoutingNumber(*extracted.RoutingNumber) {
			fieldErrs = append(fieldErrs, domain.FieldError{
				Field:      "routingNumber",
				Reason:     "Invalid ABA checksum",
				Confidence: 0.6,
			})
		}
	}

	if extracted.DueDateRaw != nil && *extracted.DueDateRaw != "" {
		res := p.normalizer.Normalize(ctx, *extracted.DueDateRaw)
		if res.Normalized != nil {
			extracted.DueDate = res.Normalized
		} else {
			fieldErrs = append(fieldErrs, domain.FieldError{
				Field:        "dueDate",
				Reason:       "Ambiguous date format",
				SuggestedFix: res.Note,
				Confidence:   0.5,
			})
		}
	}

	if fieldErrs == nil {
		fieldErrs = []domain.FieldError{}
	}

	result := &domain.ProcessingResult{
		CorrelationID:    correlationID(req.CorrelationID, start),
		UserID:           defaultString(req.UserID, "demo"),
		FileName:         defaultString(req.FileName, "uploaded.pdf"),
		DocumentType:     req.DocumentType,
		Status:           domain.StatusFor(fieldErrs),
		Extracted:        extracted,
		Errors:           fieldErrs,
		AISuggestions:    map[string]string{},
		BillerDetected:   detected,
		CreatedAt:        p.now().UTC().Format("2006-01-02T15:04:05Z"),
		ProcessingTimeMs: p.now().Sub(start).Milliseconds(),
	}

	// One structured line per processed document; this is the only record
	// of the run, results are not persisted.
	p.log.Info("document processed",
		zap.String("correlationId", result.CorrelationID),
		zap.Any("result", result),
	)

	return result, nil
}

func correlationID(requested string, start time.Time) string {
	if requested != "" {
		return requested
	}
	return fmt.Sprintf("cid-%d", start.UnixMilli())
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
