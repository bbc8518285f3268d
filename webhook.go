package x402

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/solpay/x402/signature"
)

// WebhookEventType enumerates the payment lifecycle notifications delivered
// to merchant servers.
type WebhookEventType string

const (
	WebhookEventTypeIntentConfirmed WebhookEventType = "payment_intent.confirmed"
	WebhookEventTypeIntentSettled   WebhookEventType = "payment_intent.settled"
	WebhookEventTypeIntentFailed    WebhookEventType = "payment_intent.failed"
	WebhookEventTypeIntentExpired   WebhookEventType = "payment_intent.expired"
)

// Webhook delivery headers.
const (
	WebhookSignatureHeader = "Solpay-Signature"
	WebhookTimestampHeader = "Solpay-Timestamp"
)

// WebhookEvent is a payment lifecycle notification.
type WebhookEvent struct {
	Type WebhookEventType `json:"type"`
	Data PaymentIntent    `json:"data"`
}

// ParseWebhook authenticates a webhook delivery against the shared secret
// and decodes the event. The signature covers
// `RFC3339Nano(timestamp) + "." + canonicalJSON(body)`, so deliveries with a
// reordered or re-serialized body still verify, while any change to the
// payload content does not.
func ParseWebhook(secret, body []byte, signatureHeader, timestampHeader string) (*WebhookEvent, error) {
	if len(secret) == 0 {
		return nil, errors.New("x402: webhook secret is required")
	}
	if strings.TrimSpace(signatureHeader) == "" {
		return nil, errors.New("x402: webhook signature header is required")
	}
	ts, err := signature.ParseTimestamp(strings.TrimSpace(timestampHeader))
	if err != nil {
		return nil, fmt.Errorf("x402: webhook timestamp: %w", err)
	}
	canonicalBody, err := signature.CanonicalizeBody(body)
	if err != nil {
		return nil, fmt.Errorf("x402: webhook body must be valid JSON: %w", err)
	}
	signer := signature.Signer{Key: secret}
	if err := signer.Verify(ts, canonicalBody, strings.TrimSpace(signatureHeader)); err != nil {
		return nil, fmt.Errorf("x402: webhook %w", err)
	}
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("x402: decode webhook event: %w", err)
	}
	if event.Type == "" {
		return nil, errors.New("x402: webhook event type is required")
	}
	return &event, nil
}
