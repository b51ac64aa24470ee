package domain

// ProcessRequest carries one document submission through the pipeline.
// DocumentBase64 is the only required field; the rest default during assembly.
type ProcessRequest struct {
	CorrelationID  string `json:"correlationId"`
	UserID         string `json:"userId"`
	FileName       string `json:"fileName"`
	DocumentBase64 string `json:"documentBase64"`
	DocumentType   string `json:"documentType"`
}

// FieldSet is the fixed-shape structured representation of invoice fields.
// All six keys are always present in the serialized form; nil means the value
// was absent or extraction was unavailable. DueDate is set only when the
// raw due date resolved to an ISO date.
type FieldSet struct {
	InvoiceNumber *string `json:"invoiceNumber"`
	Amount        *string `json:"amount"`
	DueDateRaw    *string `json:"dueDateRaw"`
	RoutingNumber *string `json:"routingNumber"`
	AccountNumber *string `json:"accountNumber"`
	PayeeName     *string `json:"payeeName"`
	DueDate       *string `json:"dueDate,omitempty"`
}

// FieldError records a single problem detected for a field. SuggestedFix is
// nil when no correction is proposed.
type FieldError struct {
	Field        string  `json:"field"`
	Reason       string  `json:"reason"`
	SuggestedFix *string `json:"suggestedFix"`
	Confidence   float64 `json:"confidence"`
}

// DueDateResolution is the outcome of due-date normalization: either a
// resolved ISO date or a diagnostic note, never both.
type DueDateResolution struct {
	Normalized *string `json:"normalized"`
	Note       *string `json:"note"`
}

// ProcessingResult is the full record assembled for one processed document.
type ProcessingResult struct {
	CorrelationID    string            `json:"correlationId"`
	UserID           string            `json:"userId"`
	FileName         string            `json:"fileName"`
	DocumentType     string            `json:"documentType,omitempty"`
	Status           ProcessingStatus  `json:"status"`
	Extracted        FieldSet          `json:"extracted"`
	Errors           []FieldError      `json:"errors"`
	AISuggestions    map[string]string `json:"aiSuggestions"`
	BillerDetected   string            `json:"billerDetected"`
	CreatedAt        string            `json:"createdAt"`
	ProcessingTimeMs int64             `json:"processingTimeMs"`
}
