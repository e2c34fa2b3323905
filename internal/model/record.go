package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// composite marks a top-level field whose value is a nested object or array.
// Such fields pass through in the payload untouched but are never role
// candidates.
type composite struct{}

type field struct {
	raw json.RawMessage
	val any
}

// RawRecord is one parsed input line: a flat JSON object whose fields are
// kept in declaration order. Role extractors scan fields in this order, so
// the order must survive decoding — encoding/json map decoding would lose it.
type RawRecord struct {
	keys   []string
	fields map[string]field
}

// ParseRecord decodes a single JSON object, preserving field order and the
// exact bytes of every value. Numbers decode as json.Number so their source
// text survives stringification. Non-object input is an error.
func ParseRecord(data []byte) (*RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("parse record: input is not a JSON object")
	}

	rec := &RawRecord{fields: make(map[string]field)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse record: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.New("parse record: non-string key")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse record: field %q: %w", key, err)
		}
		val, err := decodeScalar(raw)
		if err != nil {
			return nil, fmt.Errorf("parse record: field %q: %w", key, err)
		}

		if _, dup := rec.fields[key]; !dup {
			rec.keys = append(rec.keys, key)
		}
		rec.fields[key] = field{raw: raw, val: val}
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return nil, fmt.Errorf("parse record: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("parse record: trailing data after object")
	}
	return rec, nil
}

// decodeScalar maps a raw JSON value to string, json.Number, bool, nil, or
// the composite marker for objects and arrays.
func decodeScalar(raw json.RawMessage) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("empty value")
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, err
		}
		return s, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return nil, err
		}
		return b, nil
	case 'n':
		return nil, json.Unmarshal(trimmed, &struct{}{}) // validates "null"
	case '{', '[':
		return composite{}, nil
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return nil, err
		}
		return n, nil
	}
}

// Keys returns the field names in declaration order. The slice is shared;
// callers must not mutate it.
func (r *RawRecord) Keys() []string { return r.keys }

// Has reports whether the record contains a field with exactly this name.
func (r *RawRecord) Has(name string) bool {
	_, ok := r.fields[name]
	return ok
}

// Value returns the decoded scalar value of a field, or nil when the field
// is missing or holds a nested object/array.
func (r *RawRecord) Value(name string) any {
	f, ok := r.fields[name]
	if !ok {
		return nil
	}
	if _, nested := f.val.(composite); nested {
		return nil
	}
	return f.val
}

// MarshalJSON re-emits the record with its original field order and the
// original value bytes, so the embedded payload stays verbatim.
func (r *RawRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(r.fields[k].raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Truthy reports whether a decoded value counts as usable for a role:
// non-empty strings, non-zero numbers, and true. Nulls, missing fields, and
// nested values are not usable.
func Truthy(v any) bool {
	switch t := v.(type) {
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case bool:
		return t
	default:
		return false
	}
}

// Stringify renders a scalar value as the text that lands in the unified
// event. Numbers keep their source text.
func Stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
