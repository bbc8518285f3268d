// Package signature produces and checks the HMAC request signatures the
// SolPay API accepts on authenticated calls. Signatures are computed over
// `RFC3339Nano(timestamp) + "." + canonicalJSON(body)` and transmitted as
// base64url in the Signature header alongside a Timestamp header.
package signature

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	canonicaljson "github.com/gibson042/canonicaljson-go"
)

// Signer computes request signatures with a shared HMAC-SHA256 key.
type Signer struct {
	Key []byte
}

// Sign returns the base64url-encoded HMAC-SHA256 signature for a request
// body already reduced to canonical form.
func (s Signer) Sign(ts time.Time, canonicalBody []byte) (string, error) {
	mac, err := s.compute(ts, canonicalBody)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(mac), nil
}

// Verify recomputes the signature and compares it in constant time. It is
// used on the receiving side of webhook deliveries.
func (s Signer) Verify(ts time.Time, canonicalBody []byte, provided string) error {
	expected, err := s.compute(ts, canonicalBody)
	if err != nil {
		return err
	}
	decoded, err := base64.RawURLEncoding.DecodeString(provided)
	if err != nil {
		return fmt.Errorf("signature: decode signature: %w", err)
	}
	if !hmac.Equal(decoded, expected) {
		return errors.New("signature: invalid signature")
	}
	return nil
}

func (s Signer) compute(ts time.Time, canonicalBody []byte) ([]byte, error) {
	if len(s.Key) == 0 {
		return nil, errors.New("signature: Signer requires a non-empty key")
	}
	mac := hmac.New(sha256.New, s.Key)
	if _, err := mac.Write(BuildSigningPayload(ts, canonicalBody)); err != nil {
		return nil, fmt.Errorf("signature: compute signature: %w", err)
	}
	return mac.Sum(nil), nil
}

// CanonicalizeBody normalizes an arbitrary JSON body into canonical form for
// signing. An empty body signs as the literal null document.
func CanonicalizeBody(raw []byte) ([]byte, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []byte("null"), nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("signature: multiple JSON documents in body")
	}
	return canonicaljson.Marshal(payload)
}

// ParseTimestamp accepts Timestamp header values in RFC3339 or RFC3339Nano format.
func ParseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("signature: empty timestamp")
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, value)
}

// BuildSigningPayload constructs the byte string that is HMAC-signed.
func BuildSigningPayload(ts time.Time, canonicalBody []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(ts.UTC().Format(time.RFC3339Nano))
	buf.WriteByte('.')
	buf.Write(canonicalBody)
	return buf.Bytes()
}
