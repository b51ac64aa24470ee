package pipeline_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"payproc/internal/domain"
	"payproc/internal/extract"
	"payproc/internal/fields"
	"payproc/internal/pipeline"
	"payproc/internal/port"
	"payproc/mocks"
)

// newProcessor wires a processor the way cmd/server does, with a single
// shared text model (or nil for the unconfigured case).
func newProcessor(model port.TextModel) *pipeline.Processor {
	return pipeline.NewProcessor(
		extract.NewExtractor(model, 0, nil),
		fields.NewExtractor(model, nil),
		fields.NewDueDateNormalizer(model, nil),
		nil,
	)
}

func promptContains(s string) interface{} {
	return mock.MatchedBy(func(req port.Completion) bool {
		return strings.Contains(req.User, s)
	})
}

func TestProcess_MissingDocument(t *testing.T) {
	p := newProcessor(nil)
	_, err := p.Process(context.Background(), domain.ProcessRequest{})
	assert.ErrorIs(t, err, domain.ErrMissingDocument)
}

func TestProcess_InvalidBase64(t *testing.T) {
	p := newProcessor(nil)
	_, err := p.Process(context.Background(), domain.ProcessRequest{DocumentBase64: "!!!not-base64!!!"})
	assert.ErrorIs(t, err, domain.ErrInvalidBase64)
}

func TestProcess_UnconfiguredInference_Approved(t *testing.T) {
	// Non-text bytes, no inference: everything degrades, nothing to
	// validate, document is approved.
	p := newProcessor(nil)
	req := domain.ProcessRequest{
		DocumentBase64: base64.StdEncoding.EncodeToString([]byte{0x00, 0x01, 0x02}),
	}

	res, err := p.Process(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusApproved, res.Status)
	assert.Equal(t, "Unknown", res.BillerDetected)
	assert.Empty(t, res.Errors)
	assert.Nil(t, res.Extracted.InvoiceNumber)
	assert.Nil(t, res.Extracted.RoutingNumber)
	assert.Nil(t, res.Extracted.DueDate)
}

func TestProcess_Defaults(t *testing.T) {
	p := newProcessor(nil)
	req := domain.ProcessRequest{
		DocumentBase64: base64.StdEncoding.EncodeToString([]byte("x")),
	}

	res, err := p.Process(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.CorrelationID, "cid-"))
	assert.Equal(t, "demo", res.UserID)
	assert.Equal(t, "uploaded.pdf", res.FileName)
	assert.NotEmpty(t, res.CreatedAt)
	assert.GreaterOrEqual(t, res.ProcessingTimeMs, int64(0))
	assert.NotNil(t, res.AISuggestions)
}

func TestProcess_ExplicitIdentityPreserved(t *testing.T) {
	p := newProcessor(nil)
	req := domain.ProcessRequest{
		CorrelationID:  "cid-custom",
		UserID:         "user-7",
		FileName:       "att-march.pdf",
		DocumentBase64: base64.StdEncoding.EncodeToString([]byte("x")),
	}

	res, err := p.Process(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "cid-custom", res.CorrelationID)
	assert.Equal(t, "user-7", res.UserID)
	assert.Equal(t, "att-march.pdf", res.FileName)
}

func TestProcess_BadRoutingNumber_NeedsReview(t *testing.T) {
	model := new(mocks.MockTextModel)
	model.On("Complete", mock.Anything, promptContains("PDF OCR assistant")).
		Return("Xfinity statement, pay from routing 123456789", nil)
	model.On("Complete", mock.Anything, promptContains("JSON extractor")).
		Return(`{"invoiceNumber":"INV-9","amount":"55.00","dueDateRaw":null,"routingNumber":"123456789","accountNumber":"12345","payeeName":"Xfinity"}`, nil)

	p := newProcessor(model)
	req := domain.ProcessRequest{
		DocumentBase64: base64.StdEncoding.EncodeToString([]byte("scanned image bytes")),
	}

	res, err := p.Process(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusNeedsReview, res.Status)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "routingNumber", res.Errors[0].Field)
	assert.Equal(t, "Invalid ABA checksum", res.Errors[0].Reason)
	assert.Nil(t, res.Errors[0].SuggestedFix)
	assert.InDelta(t, 0.6, res.Errors[0].Confidence, 1e-9)
	assert.Equal(t, "Xfinity", res.BillerDetected)
	model.AssertExpectations(t)
}

func TestProcess_DueDateResolved(t *testing.T) {
	model := new(mocks.MockTextModel)
	model.On("Complete", mock.Anything, promptContains("PDF OCR assistant")).
		Return("AT&T invoice due March 15 2024", nil)
	model.On("Complete", mock.Anything, promptContains("JSON extractor")).
		Return(`{"invoiceNumber":"A1","amount":"10.00","dueDateRaw":"March 15, 2024","routingNumber":"021000021","accountNumber":null,"payeeName":"AT&T"}`, nil)
	model.On("Complete", mock.Anything, promptContains("Normalize this invoice due date")).
		Return(`{"normalized":"2024-03-15","note":null}`, nil)

	p := newProcessor(model)
	req := domain.ProcessRequest{
		DocumentBase64: base64.StdEncoding.EncodeToString([]byte("scanned image bytes")),
	}

	res, err := p.Process(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusApproved, res.Status)
	assert.Empty(t, res.Errors)
	require.NotNil(t, res.Extracted.DueDate)
	assert.Equal(t, "2024-03-15", *res.Extracted.DueDate)
	assert.Equal(t, "AT&T", res.BillerDetected)
}

func TestProcess_AmbiguousDueDate_NeedsReview(t *testing.T) {
	model := new(mocks.MockTextModel)
	model.On("Complete", mock.Anything, promptContains("PDF OCR assistant")).
		Return("utility billing due 03/04/05", nil)
	model.On("Complete", mock.Anything, promptContains("JSON extractor")).
		Return(`{"invoiceNumber":null,"amount":null,"dueDateRaw":"03/04/05","routingNumber":null,"accountNumber":null,"payeeName":null}`, nil)
	model.On("Complete", mock.Anything, promptContains("Normalize this invoice due date")).
		Return(`{"normalized":null,"note":"day and month are interchangeable"}`, nil)

	p := newProcessor(model)
	req := domain.ProcessRequest{
		DocumentBase64: base64.StdEncoding.EncodeToString([]byte("scan")),
	}

	res, err := p.Process(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusNeedsReview, res.Status)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "dueDate", res.Errors[0].Field)
	assert.Equal(t, "Ambiguous date format", res.Errors[0].Reason)
	require.NotNil(t, res.Errors[0].SuggestedFix)
	assert.Equal(t, "day and month are interchangeable", *res.Errors[0].SuggestedFix)
	assert.InDelta(t, 0.5, res.Errors[0].Confidence, 1e-9)
	assert.Nil(t, res.Extracted.DueDate)
}

func TestProcess_ValidationOrder_RoutingBeforeDate(t *testing.T) {
	model := new(mocks.MockTextModel)
	model.On("Complete", mock.Anything, promptContains("PDF OCR assistant")).
		Return("some text", nil)
	model.On("Complete", mock.Anything, promptContains("JSON extractor")).
		Return(`{"invoiceNumber":null,"amount":null,"dueDateRaw":"someday","routingNumber":"123456789","accountNumber":null,"payeeName":null}`, nil)
	model.On("Complete", mock.Anything, promptContains("Normalize this invoice due date")).
		Return(`{"normalized":null,"note":"no year given"}`, nil)

	p := newProcessor(model)
	res, err := p.Process(context.Background(), domain.ProcessRequest{
		DocumentBase64: base64.StdEncoding.EncodeToString([]byte("scan")),
	})
	require.NoError(t, err)

	require.Len(t, res.Errors, 2)
	assert.Equal(t, "routingNumber", res.Errors[0].Field)
	assert.Equal(t, "dueDate", res.Errors[1].Field)
	assert.Equal(t, domain.StatusNeedsReview, res.Status)
}

func TestProcess_Idempotent(t *testing.T) {
	// Deterministic (zero-temperature) model responses must produce
	// identical results across runs, timing fields aside.
	model := new(mocks.MockTextModel)
	model.On("Complete", mock.Anything, promptContains("PDF OCR assistant")).
		Return("Comcast invoice", nil)
	model.On("Complete", mock.Anything, promptContains("JSON extractor")).
		Return(`{"invoiceNumber":"X","amount":"1.00","dueDateRaw":null,"routingNumber":"021000021","accountNumber":null,"payeeName":null}`, nil)

	p := newProcessor(model)
	req := domain.ProcessRequest{
		CorrelationID:  "cid-same",
		DocumentBase64: base64.StdEncoding.EncodeToString([]byte("scan")),
	}

	first, err := p.Process(context.Background(), req)
	require.NoError(t, err)
	second, err := p.Process(context.Background(), req)
	require.NoError(t, err)

	second.CreatedAt = first.CreatedAt
	second.ProcessingTimeMs = first.ProcessingTimeMs
	assert.Equal(t, first, second)
}

func TestProcess_ResultSerializesOriginalShape(t *testing.T) {
	p := newProcessor(nil)
	res, err := p.Process(context.Background(), domain.ProcessRequest{
		CorrelationID:  "cid-1",
		DocumentBase64: base64.StdEncoding.EncodeToString([]byte("x")),
	})
	require.NoError(t, err)

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	for _, key := range []string{"correlationId", "userId", "fileName", "status", "extracted", "errors", "aiSuggestions", "billerDetected", "createdAt", "processingTimeMs"} {
		_, present := m[key]
		assert.True(t, present, key)
	}
}
