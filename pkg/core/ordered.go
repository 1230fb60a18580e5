package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// OrderedObject is a JSON object decoded with its key order preserved.
// encoding/json.Unmarshal into map[string]any loses key order, which
// would make the extractor's taxonomy/concept/unit walk run in
// randomized map-iteration order instead of the input's own order.
// decodeOrderedValue below is the only place that produces one.
type OrderedObject struct {
	keys []string
	vals map[string]any
}

func newOrderedObject() *OrderedObject {
	return &OrderedObject{vals: make(map[string]any)}
}

// set appends key to the order on first sight; a repeated key (which
// valid JSON shouldn't contain, but which json.Decoder doesn't reject)
// keeps its original position and takes the latest value, matching
// encoding/json's own last-write-wins behavior for duplicate keys.
func (o *OrderedObject) set(key string, val any) {
	if _, exists := o.vals[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = val
}

// Get returns the value stored under key, if any.
func (o *OrderedObject) Get(key string) (any, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Keys returns the object's keys in the order they first appeared.
func (o *OrderedObject) Keys() []string {
	return o.keys
}

// decodeOrderedDocument parses raw as a single JSON object, preserving
// key order at every nesting level. It fails the way
// json.Unmarshal(raw, &map[string]any{}) would: a non-object top level
// or trailing data after the value is an error.
func decodeOrderedDocument(raw []byte) (*OrderedObject, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	val, err := decodeOrderedValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected trailing data after JSON value")
	}

	obj, ok := val.(*OrderedObject)
	if !ok {
		return nil, fmt.Errorf("top-level JSON value is not an object")
	}
	return obj, nil
}

// decodeOrderedValue decodes the next JSON value from dec. Objects
// decode to *OrderedObject, arrays to []any, numbers to float64
// (matching encoding/json's default unmarshal-into-any behavior), and
// strings/bools/null pass through as their natural Go type.
func decodeOrderedValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, isDelim := tok.(json.Delim)
	if !isDelim {
		return tokenScalar(tok)
	}

	switch delim {
	case '{':
		obj := newOrderedObject()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("expected object key, got %v", keyTok)
			}
			val, err := decodeOrderedValue(dec)
			if err != nil {
				return nil, err
			}
			obj.set(key, val)
		}
		if _, err := dec.Token(); err != nil { // consume '}'
			return nil, err
		}
		return obj, nil

	case '[':
		arr := []any{}
		for dec.More() {
			val, err := decodeOrderedValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil { // consume ']'
			return nil, err
		}
		return arr, nil

	default:
		return nil, fmt.Errorf("unexpected JSON delimiter %q", delim)
	}
}

func tokenScalar(tok json.Token) (any, error) {
	if num, ok := tok.(json.Number); ok {
		f, err := num.Float64()
		if err != nil {
			return nil, fmt.Errorf("decoding number %q: %w", num, err)
		}
		return f, nil
	}
	return tok, nil // string, bool, or nil
}
