package port

import "context"

// Completion carries one text-generation request. System may be empty.
// Generation is always requested at temperature zero so identical prompts
// produce identical output.
type Completion struct {
	System string
	User   string
}

// TextModel abstracts the remote inference service. A nil TextModel means
// the service is not configured; callers degrade per their own contracts.
type TextModel interface {
	Complete(ctx context.Context, req Completion) (string, error)
}
