package x402

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/solpay/x402/canonical"
)

// receiptHashFields carry the reported hash and are excluded from the hash
// computation itself.
var receiptHashFields = [...]string{"sha256_hash", "hash"}

// ReceiptVerification reports the outcome of checking a receipt document
// against its embedded content hash. A failed fetch, parse, or comparison is
// reported through OK and Error rather than an error return, so receipt
// checking never interrupts a calling workflow.
type ReceiptVerification struct {
	OK           bool           `json:"ok"`
	ComputedHash string         `json:"computed_hash"`
	ReportedHash string         `json:"reported_hash"`
	Receipt      map[string]any `json:"receipt,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// ComputeReceiptHash returns the lowercase hex SHA-256 digest of the
// receipt's canonical JSON form, with the hash-bearing fields removed.
func ComputeReceiptHash(receipt map[string]any) (string, error) {
	target := make(map[string]any, len(receipt))
	for k, v := range receipt {
		target[k] = v
	}
	for _, field := range receiptHashFields {
		delete(target, field)
	}
	raw, err := canonical.Marshal(target)
	if err != nil {
		return "", fmt.Errorf("x402: canonicalize receipt: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// VerifyReceiptMap recomputes the content hash of an already-decoded receipt
// and compares it against the reported value.
func VerifyReceiptMap(receipt map[string]any) ReceiptVerification {
	reported := reportedReceiptHash(receipt)
	if reported == "" {
		return ReceiptVerification{
			Receipt: receipt,
			Error:   "receipt does not contain a sha256_hash field",
		}
	}
	computed, err := ComputeReceiptHash(receipt)
	if err != nil {
		return ReceiptVerification{
			ReportedHash: reported,
			Receipt:      receipt,
			Error:        err.Error(),
		}
	}
	return ReceiptVerification{
		OK:           computed == reported,
		ComputedHash: computed,
		ReportedHash: reported,
		Receipt:      receipt,
	}
}

// VerifyReceipt fetches a receipt document and independently recomputes its
// content hash to confirm authenticity.
func (c *Client) VerifyReceipt(ctx context.Context, receiptURL string) ReceiptVerification {
	c.logDebug("verifying receipt", "receipt_url", receiptURL)
	receipt, err := c.fetchReceipt(ctx, receiptURL)
	if err != nil {
		c.logDebug("receipt verification error", "error", err)
		return ReceiptVerification{Error: err.Error()}
	}
	result := VerifyReceiptMap(receipt)
	c.logDebug("receipt verification result",
		"ok", result.OK,
		"computed_hash", result.ComputedHash,
		"reported_hash", result.ReportedHash,
	)
	return result
}

// fetchReceipt decodes the receipt with UseNumber so numeric literals reach
// the canonicalizer exactly as the producer wrote them.
func (c *Client) fetchReceipt(ctx context.Context, receiptURL string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, receiptURL, nil)
	if err != nil {
		return nil, fmt.Errorf("x402: build receipt request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.userAgent)
	resp, err := c.cfg.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("x402: fetch receipt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("x402: fetch receipt: %s", resp.Status)
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var receipt map[string]any
	if err := dec.Decode(&receipt); err != nil {
		return nil, fmt.Errorf("x402: decode receipt: %w", err)
	}
	return receipt, nil
}

func reportedReceiptHash(receipt map[string]any) string {
	for _, field := range receiptHashFields {
		if v, ok := receipt[field].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
