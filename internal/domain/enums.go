package domain

// ProcessingStatus is the overall decision for a processed document.
type ProcessingStatus string

const (
	// StatusApproved means no field-level problems were found.
	StatusApproved ProcessingStatus = "approved"
	// StatusNeedsReview means at least one field failed validation or
	// normalization and a human should look at the document.
	StatusNeedsReview ProcessingStatus = "needs_review"
)

// StatusFor derives the processing status from the collected field errors.
func StatusFor(errs []FieldError) ProcessingStatus {
	if len(errs) > 0 {
		return StatusNeedsReview
	}
	return StatusApproved
}

// BillerUnknown is reported when no configured keyword matches the text.
const BillerUnknown = "Unknown"
