package lodestone

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// Record is the serialized form of a container: an ordered mapping from
// names to either a string (an element's value) or a nested *Record.
// Keys keep the order in which they were first set.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord returns an empty Record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Set stores a string or *Record under key. Setting an existing key replaces
// its value but keeps its original position.
func (r *Record) Set(key string, value any) {
	switch value.(type) {
	case string, *Record:
	default:
		panic(fmt.Sprintf("lodestone: unsupported record value %T", value))
	}
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// String returns the string stored under key.
// Returns false if the key is missing or holds a nested record.
func (r *Record) String(key string) (string, bool) {
	s, ok := r.values[key].(string)
	return s, ok
}

// Record returns the nested record stored under key.
func (r *Record) Record(key string) (*Record, bool) {
	rec, ok := r.values[key].(*Record)
	return rec, ok
}

// Keys returns the keys in order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of keys.
func (r *Record) Len() int {
	return len(r.keys)
}

// Map converts the record to plain nested maps, losing key order.
func (r *Record) Map() map[string]any {
	m := make(map[string]any, len(r.keys))
	for _, k := range r.keys {
		switch v := r.values[k].(type) {
		case *Record:
			m[k] = v.Map()
		default:
			m[k] = v
		}
	}
	return m
}

// MarshalJSON encodes the record as a JSON object in key order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var val []byte
		switch v := r.values[k].(type) {
		case *Record:
			val, err = v.MarshalJSON()
		default:
			val, err = json.Marshal(v)
		}
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of strings and nested objects,
// keeping key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(bytes.NewReader(data))
	if err != nil {
		return err
	}
	rec, err := recordFromObject(obj)
	if err != nil {
		return err
	}
	*r = *rec
	return nil
}

func recordFromObject(obj *object) (*Record, error) {
	rec := NewRecord()
	for i, k := range obj.keys {
		switch v := obj.values[i].(type) {
		case string:
			rec.Set(k, v)
		case *object:
			nested, err := recordFromObject(v)
			if err != nil {
				return nil, err
			}
			rec.Set(k, nested)
		default:
			return nil, fmt.Errorf("record key %q: unsupported value %v", k, v)
		}
	}
	return rec, nil
}
