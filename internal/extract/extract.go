package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"payproc/internal/port"
)

// DefaultMaxFallbackBase64Chars bounds the base64 payload handed to the
// inference OCR fallback. Larger documents are truncated and lose fidelity;
// that trade-off keeps the request inside token limits.
const DefaultMaxFallbackBase64Chars = 200000

const ocrPrompt = "You are a PDF OCR assistant. A PDF file has been encoded in base64.\n" +
	"Attempt to extract any human-readable text from the PDF. If you cannot decode the PDF, try to infer textual content from the encoded bytes.\n" +
	"Return ONLY the extracted text, with no additional commentary.\n\n" +
	"Base64 PDF (may be truncated):\n"

// Extractor produces best-effort plain text from raw document bytes. The
// primary path parses the bytes as a PDF; when that yields nothing and an
// inference model is available, an OCR fallback is attempted. Extraction
// never fails: every error degrades to empty text.
type Extractor struct {
	model       port.TextModel // nil when inference is not configured
	maxB64Chars int
	log         *zap.Logger
}

// NewExtractor creates a text extractor. model may be nil, which disables
// the OCR fallback.
func NewExtractor(model port.TextModel, maxB64Chars int, log *zap.Logger) *Extractor {
	if maxB64Chars <= 0 {
		maxB64Chars = DefaultMaxFallbackBase64Chars
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{model: model, maxB64Chars: maxB64Chars, log: log}
}

// Extract returns the best-effort textual content of raw. The result may be
// empty; it is never an error.
func (e *Extractor) Extract(ctx context.Context, raw []byte) string {
	text, err := extractPDFText(raw)
	if err != nil {
		e.log.Debug("primary pdf extraction failed", zap.Error(err))
		text = ""
	}
	if text != "" {
		return text
	}

	if e.model == nil {
		return ""
	}

	e.log.Info("falling back to inference OCR for text extraction")
	text, err = e.ocrFallback(ctx, raw)
	if err != nil {
		e.log.Warn("inference OCR fallback failed", zap.Error(err))
		return ""
	}
	return text
}

// extractPDFText parses raw as a paginated PDF and joins per-page text with
// newlines. The pdf library panics on some malformed inputs, so the whole
// parse runs under a recover.
func extractPDFText(raw []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf parse panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			content = ""
		}
		pages = append(pages, content)
	}

	joined := strings.Join(pages, "\n")
	if strings.TrimSpace(joined) == "" {
		return "", nil
	}
	return joined, nil
}

func (e *Extractor) ocrFallback(ctx context.Context, raw []byte) (string, error) {
	b64 := base64.StdEncoding.EncodeToString(raw)
	note := ""
	if len(b64) > e.maxB64Chars {
		b64 = b64[:e.maxB64Chars]
		note = fmt.Sprintf("(truncated base64, showing first %d chars)\n", e.maxB64Chars)
	}

	return e.model.Complete(ctx, port.Completion{
		User: ocrPrompt + note + b64,
	})
}
