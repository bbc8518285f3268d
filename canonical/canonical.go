// Package canonical serializes JSON-compatible values into a deterministic
// byte form suitable for hashing: no whitespace, object keys sorted
// lexicographically ascending, array order preserved.
//
// The output is a hash input, never a wire format. Numbers decoded from a
// JSON document via [encoding/json] with UseNumber pass through verbatim as
// [json.Number], so a fetched document canonicalizes to the same bytes the
// producer hashed regardless of float formatting conventions.
package canonical

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Marshal returns the canonical serialization of v.
//
// Semantically equal values serialize identically regardless of map insertion
// order. Supported inputs are nil, booleans, numbers (including
// [json.Number]), strings, slices, and string-keyed maps, nested arbitrarily;
// any other value is round-tripped through encoding/json first, so struct
// values with JSON tags canonicalize according to their wire shape.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := appendValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendValue(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(val))
	case string:
		return appendJSONScalar(buf, val)
	case json.Number:
		if val == "" {
			return fmt.Errorf("canonical: empty number literal")
		}
		buf.WriteString(string(val))
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("canonical: number %v is not JSON-representable", val)
		}
		return appendJSONScalar(buf, val)
	case float32:
		return appendValue(buf, float64(val))
	case int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
	case uint64:
		buf.WriteString(strconv.FormatUint(val, 10))
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendValue(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		return appendObject(buf, val)
	default:
		decoded, err := roundTrip(v)
		if err != nil {
			return err
		}
		return appendValue(buf, decoded)
	}
	return nil
}

func appendObject(buf *bytes.Buffer, obj map[string]any) error {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := appendJSONScalar(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := appendValue(buf, obj[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// appendJSONScalar emits the minimal JSON literal for a scalar, reusing
// encoding/json for string escaping and shortest-form float output. HTML
// escaping is disabled: `<` stays `<`, matching what producers hash.
func appendJSONScalar(buf *bytes.Buffer, v any) error {
	var scratch bytes.Buffer
	enc := json.NewEncoder(&scratch)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("canonical: %w", err)
	}
	buf.Write(bytes.TrimRight(scratch.Bytes(), "\n"))
	return nil
}

// roundTrip reduces an arbitrary Go value to the null/bool/number/string/
// array/object variants the canonical walk understands.
func roundTrip(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonical: value of type %T is not JSON-compatible: %w", v, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("canonical: %w", err)
	}
	return decoded, nil
}
