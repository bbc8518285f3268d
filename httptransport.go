package x402

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/solpay/x402/signature"
)

// newRequest builds an API request with the standard header set: content
// negotiation, bearer authentication, tracing and idempotency identifiers,
// and (when a signing key is configured) the Signature/Timestamp pair over
// the canonical JSON body.
func (c *Client) newRequest(ctx context.Context, method, path string, body any, idempotencyKey string) (*http.Request, error) {
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("x402: marshal request body: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.apiBase+path, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("x402: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.userAgent)
	req.Header.Set("Request-Id", uuid.NewString())
	if c.cfg.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.apiKey)
	}
	if method != http.MethodGet {
		if idempotencyKey == "" {
			idempotencyKey = uuid.NewString()
		}
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}
	if c.signer != nil {
		if err := c.signRequest(req, raw); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func (c *Client) signRequest(req *http.Request, raw []byte) error {
	canonicalBody, err := signature.CanonicalizeBody(raw)
	if err != nil {
		return fmt.Errorf("x402: canonicalize request body: %w", err)
	}
	ts := c.cfg.clock().UTC()
	sig, err := c.signer.Sign(ts, canonicalBody)
	if err != nil {
		return fmt.Errorf("x402: sign request: %w", err)
	}
	req.Header.Set("Signature", sig)
	req.Header.Set("Timestamp", ts.Format(time.RFC3339Nano))
	return nil
}

// do executes the request and decodes a successful JSON response into out.
// Non-2xx responses become *APIError.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.cfg.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("x402: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("x402: decode response: %w", err)
	}
	return nil
}
