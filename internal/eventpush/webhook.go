package eventpush

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"restaurant-seating/internal/seating"
)

const signatureHeader = "X-Seating-Signature"

// WebhookSink POSTs each event as JSON. When a secret is set the body is
// signed with HMAC-SHA256 in the X-Seating-Signature header.
type WebhookSink struct {
	endpoint string
	secret   string
	inner    *http.Client
}

func NewWebhookSink(endpoint, secret string, timeout time.Duration) *WebhookSink {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookSink{endpoint: endpoint, secret: secret, inner: &http.Client{Timeout: timeout}}
}

func (s *WebhookSink) Name() string { return "webhook" }

func (s *WebhookSink) Send(ctx context.Context, ev seating.Event) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.secret != "" {
		req.Header.Set(signatureHeader, Sign(s.secret, raw))
	}

	resp, err := s.inner.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return fmt.Errorf("webhook failed with status %d", resp.StatusCode)
}

func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}
