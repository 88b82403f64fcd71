package lodestone

import (
	"bytes"
	"errors"
	"io"

	"github.com/goccy/go-json"
)

// object is a JSON object decoded with its keys in document order.
// Values are *object, string, or any other scalar/array the decoder produced.
type object struct {
	keys   []string
	values []any
}

// lookup returns the last value stored under key, matching how duplicate
// keys behave in a plain JSON decode.
func (o *object) lookup(key string) (any, bool) {
	for i := len(o.keys) - 1; i >= 0; i-- {
		if o.keys[i] == key {
			return o.values[i], true
		}
	}
	return nil, false
}

func (o *object) has(key string) bool {
	_, ok := o.lookup(key)
	return ok
}

// decodeObject reads a single top-level JSON object from r.
// The token stream does not check separators, so the whole source is
// validated before it is walked.
func decodeObject(r io.Reader) (*object, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, errors.New("malformed JSON")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("expected a JSON object at the top level")
	}
	obj, err := readObject(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after top-level object")
	}
	return obj, nil
}

// readObject reads object members after the opening brace has been consumed.
func readObject(dec *json.Decoder) (*object, error) {
	obj := &object{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.New("expected object key")
		}
		val, err := readValue(dec)
		if err != nil {
			return nil, err
		}
		obj.keys = append(obj.keys, key)
		obj.values = append(obj.values, val)
	}
	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func readValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch d {
	case '{':
		return readObject(dec)
	case '[':
		var arr []any
		for dec.More() {
			v, err := readValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, errors.New("unexpected delimiter")
	}
}
