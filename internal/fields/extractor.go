package fields

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"payproc/internal/domain"
	"payproc/internal/inference"
	"payproc/internal/port"
)

// maxPromptChars bounds the document text submitted for field extraction.
// Longer text is silently truncated; losing tail content is an accepted
// precision/cost trade-off.
const maxPromptChars = 5000

const extractSystemPrompt = "You extract invoice fields as JSON."

const extractPromptHead = "You are a JSON extractor for invoice/payment PDFs.\n" +
	"Extract fields: invoiceNumber, amount, dueDateRaw, routingNumber, accountNumber, payeeName.\n" +
	"Return only JSON with these keys, use null for missing values.\n\n" +
	"Document text:\n\"\"\""

// Extractor asks the inference service for a structured field set. It never
// fails: when the service is unavailable, errors, or returns something
// unparsable, the all-null FieldSet is returned and processing continues.
type Extractor struct {
	model port.TextModel // nil when inference is not configured
	log   *zap.Logger
}

// NewExtractor creates a field extractor. model may be nil.
func NewExtractor(model port.TextModel, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{model: model, log: log}
}

// Extract returns the six-key field set for the given document text. All
// keys are present in the result regardless of what the service returned.
func (e *Extractor) Extract(ctx context.Context, text string) domain.FieldSet {
	if e.model == nil || text == "" {
		return domain.FieldSet{}
	}

	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}

	raw, err := e.model.Complete(ctx, port.Completion{
		System: extractSystemPrompt,
		User:   extractPromptHead + text + `"""`,
	})
	if err != nil {
		e.log.Warn("field extraction call failed", zap.Error(err))
		return domain.FieldSet{}
	}

	var fs domain.FieldSet
	if err := json.Unmarshal([]byte(inference.StripCodeFences(raw)), &fs); err != nil {
		e.log.Warn("field extraction returned unparsable JSON", zap.Error(err))
		return domain.FieldSet{}
	}
	// DueDate is derived later by normalization, never taken from the model here.
	fs.DueDate = nil
	return fs
}
