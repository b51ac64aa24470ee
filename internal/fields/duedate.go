package fields

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"payproc/internal/domain"
	"payproc/internal/inference"
	"payproc/internal/port"
)

// Diagnostic notes returned when normalization cannot run or fails. Callers
// treat the absence of a normalized value as the signal to flag the field.
const (
	NoteNotConfigured = "ai-not-configured"
	NoteFailed        = "ai-failed"
)

// DueDateNormalizer resolves free-text due dates to ISO-8601 calendar dates
// via the inference service. Like the field extractor it never fails; every
// failure mode collapses to a nil Normalized with a diagnostic note.
type DueDateNormalizer struct {
	model port.TextModel // nil when inference is not configured
	log   *zap.Logger
}

// NewDueDateNormalizer creates a due-date normalizer. model may be nil.
func NewDueDateNormalizer(model port.TextModel, log *zap.Logger) *DueDateNormalizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &DueDateNormalizer{model: model, log: log}
}

// Normalize resolves raw to {normalized, note}. Exactly one of the two is
// meaningful: a resolved YYYY-MM-DD date, or a note explaining why not.
func (n *DueDateNormalizer) Normalize(ctx context.Context, raw string) domain.DueDateResolution {
	if n.model == nil || raw == "" {
		return noteResolution(NoteNotConfigured)
	}

	prompt := "Normalize this invoice due date text into a single ISO date (YYYY-MM-DD). " +
		"If ambiguous, return JSON with normalized=null and note explaining ambiguity.\n" +
		fmt.Sprintf("Text: '%s'\n", raw) +
		`Return JSON: {"normalized":...,"note":...}`

	resp, err := n.model.Complete(ctx, port.Completion{User: prompt})
	if err != nil {
		n.log.Warn("due date normalization call failed", zap.Error(err))
		return noteResolution(NoteFailed)
	}

	var res domain.DueDateResolution
	if err := json.Unmarshal([]byte(inference.StripCodeFences(resp)), &res); err != nil {
		n.log.Warn("due date normalization returned unparsable JSON", zap.Error(err))
		return noteResolution(NoteFailed)
	}
	if res.Normalized != nil && *res.Normalized == "" {
		res.Normalized = nil
	}
	return res
}

func noteResolution(note string) domain.DueDateResolution {
	return domain.DueDateResolution{Note: &note}
}
