package database

import (
	"bytes"
	"encoding/json"
)

// KeyVal is one column of an OrderedMap.
type KeyVal struct {
	Key string
	Val interface{}
}

// OrderedMap represents a row that preserves column order when encoded.
type OrderedMap []KeyVal

// MarshalJSON implements the json.Marshaler interface.
func (om OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range om {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valBytes, err := json.Marshal(kv.Val)
		if err != nil {
			return nil, err
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the value for a key (O(N) lookup, rows are narrow)
func (om OrderedMap) Get(key string) (interface{}, bool) {
	for _, kv := range om {
		if kv.Key == key {
			return kv.Val, true
		}
	}
	return nil, false
}

// String implements fmt.Stringer
func (om OrderedMap) String() string {
	b, _ := om.MarshalJSON()
	return string(b)
}
