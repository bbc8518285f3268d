package signature

import (
	"bytes"
	"testing"
	"time"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	signer := Signer{Key: []byte("secret")}
	ts := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	body := []byte(`{"amount":10,"asset":"USDC"}`)

	sig, err := signer.Sign(ts, body)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if err := signer.Verify(ts, body, sig); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestVerifyRejectsTamperedBody(t *testing.T) {
	t.Parallel()

	signer := Signer{Key: []byte("secret")}
	ts := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	sig, err := signer.Sign(ts, []byte(`{"amount":10}`))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if err := signer.Verify(ts, []byte(`{"amount":99}`), sig); err == nil {
		t.Fatalf("expected verification failure")
	}
	if err := signer.Verify(ts.Add(time.Second), []byte(`{"amount":10}`), sig); err == nil {
		t.Fatalf("expected verification failure for shifted timestamp")
	}
	if err := signer.Verify(ts, []byte(`{"amount":10}`), "!!not-base64!!"); err == nil {
		t.Fatalf("expected decode failure")
	}
}

func TestSignRequiresKey(t *testing.T) {
	t.Parallel()

	if _, err := (Signer{}).Sign(time.Now(), []byte("null")); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestCanonicalizeBodyStableAcrossKeyOrder(t *testing.T) {
	t.Parallel()

	first, err := CanonicalizeBody([]byte(`{"b": 2, "a": {"y": [1, 2], "x": "v"}}`))
	if err != nil {
		t.Fatalf("canonicalize: %v", err)
	}
	second, err := CanonicalizeBody([]byte(` {"a":{"x":"v","y":[1,2]},"b":2} `))
	if err != nil {
		t.Fatalf("canonicalize: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected identical canonical bodies, got %s vs %s", first, second)
	}
}

func TestCanonicalizeBodyEmptyIsNull(t *testing.T) {
	t.Parallel()

	got, err := CanonicalizeBody(nil)
	if err != nil {
		t.Fatalf("canonicalize: %v", err)
	}
	if string(got) != "null" {
		t.Fatalf("expected null got %s", got)
	}
}

func TestCanonicalizeBodyRejectsMultipleDocuments(t *testing.T) {
	t.Parallel()

	if _, err := CanonicalizeBody([]byte(`{} {}`)); err == nil {
		t.Fatalf("expected error for multiple documents")
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"2025-01-02T03:04:05Z", "2025-01-02T03:04:05.123456789Z"} {
		if _, err := ParseTimestamp(value); err != nil {
			t.Fatalf("parse %q: %v", value, err)
		}
	}
	for _, value := range []string{"", "yesterday"} {
		if _, err := ParseTimestamp(value); err == nil {
			t.Fatalf("expected error for %q", value)
		}
	}
}

func TestBuildSigningPayload(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	got := BuildSigningPayload(ts, []byte(`{"a":1}`))
	if want := `2025-01-02T03:04:05Z.{"a":1}`; string(got) != want {
		t.Fatalf("expected %q got %q", want, got)
	}
}
