package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"payproc/internal/config"
)

// Notifier posts a best-effort completion notification to a configured
// downstream endpoint. Delivery is not guaranteed and never retried; a
// failed or slow callback must not affect the response to the caller.
type Notifier struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

// NewNotifier creates a notifier from the callback config. When no URL is
// configured, Notify is a no-op.
func NewNotifier(cfg *config.CallbackConfig, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{
		url:    cfg.URL,
		client: &http.Client{Timeout: cfg.Timeout()},
		log:    log,
	}
}

// Notify sends {"correlationId": ...} to the callback URL. Errors are
// logged and dropped.
func (n *Notifier) Notify(ctx context.Context, correlationID string) {
	if n.url == "" {
		return
	}

	body, err := json.Marshal(map[string]string{"correlationId": correlationID})
	if err != nil {
		n.log.Warn("callback payload marshal failed", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		n.log.Warn("callback request build failed", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.log.Warn("callback POST failed", zap.String("correlationId", correlationID), zap.Error(err))
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		n.log.Warn("callback POST rejected",
			zap.String("correlationId", correlationID),
			zap.Error(fmt.Errorf("status %d", resp.StatusCode)),
		)
	}
}
