package biller

import (
	"strings"

	"payproc/internal/domain"
)

// keywordGroup ties a biller label to the substrings that identify it.
type keywordGroup struct {
	Name     string
	Keywords []string
}

// patterns is checked in declaration order; the first group with any
// matching keyword wins, so a document matching several groups reports
// only the earliest one.
var patterns = []keywordGroup{
	{Name: "AT&T", Keywords: []string{"AT&T", "ATT", "att.com"}},
	{Name: "Xfinity", Keywords: []string{"Xfinity", "Comcast", "xfinity.com"}},
	{Name: "City Utilities", Keywords: []string{"Utility Billing", "City of", "Water Bill", "Electric Bill"}},
}

// Classify maps extracted document text to a biller label via
// case-insensitive substring matching. Empty text yields Unknown.
func Classify(text string) string {
	if text == "" {
		return domain.BillerUnknown
	}
	lower := strings.ToLower(text)
	for _, group := range patterns {
		for _, kw := range group.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return group.Name
			}
		}
	}
	return domain.BillerUnknown
}
