package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrEmptyDataset is returned when columns are requested from a dataset
// without records.
var ErrEmptyDataset = errors.New("dataset is empty: no columns can be derived")

// Field is a single column/value pair used to build records.
type Field struct {
	Key   string
	Value any
}

// F is shorthand for constructing a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Record is one row of tabular data. Keys keep their first insertion order.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord creates a record from fields in order.
func NewRecord(fields ...Field) *Record {
	r := &Record{
		keys:   make([]string, 0, len(fields)),
		values: make(map[string]any, len(fields)),
	}
	for _, f := range fields {
		r.Set(f.Key, f.Value)
	}
	return r
}

// Set assigns a value to key. Setting an existing key keeps its position.
func (r *Record) Set(key string, value any) *Record {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	return r
}

// Get returns the value stored under key and whether the key is present.
func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Text returns the text form of the value stored under key.
// Absent keys yield the empty string.
func (r *Record) Text(key string) string {
	v, _ := r.Get(key)
	return Text(v)
}

// Keys returns the record's keys in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of keys in the record.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Clone returns a copy of the record.
func (r *Record) Clone() *Record {
	c := &Record{
		keys:   r.Keys(),
		values: make(map[string]any, len(r.values)),
	}
	for k, v := range r.values {
		c.values[k] = v
	}
	return c
}

// MarshalJSON encodes the record as a JSON object with keys in insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving key order.
// Numbers are decoded as json.Number.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("record must be a JSON object")
	}

	r.keys = nil
	r.values = make(map[string]any)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return errors.New("record key must be a string")
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		r.Set(key, value)
	}
	_, err = dec.Token()
	return err
}

// Dataset is an ordered sequence of records sharing a column set.
type Dataset []*Record

// Columns returns the keys of the first record in insertion order.
func (d Dataset) Columns() ([]string, error) {
	if len(d) == 0 {
		return nil, ErrEmptyDataset
	}
	return d[0].Keys(), nil
}

// Len returns the number of records.
func (d Dataset) Len() int {
	return len(d)
}
