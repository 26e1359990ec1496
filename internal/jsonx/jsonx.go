// Package jsonx is the JSON codec shared by the module. It uses sonic with the
// encoding/json compatible configuration, so map keys are sorted and struct
// tags, Marshaler and Unmarshaler implementations behave as with the standard library.
package jsonx

import "github.com/bytedance/sonic"

var api = sonic.ConfigStd

// Marshal returns the JSON encoding of v.
func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

// MarshalIndent is like Marshal but applies prefix and indent to the output.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return api.MarshalIndent(v, prefix, indent)
}

// Unmarshal parses JSON data into v.
func Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}

// Valid reports whether data is a valid JSON encoding.
func Valid(data []byte) bool {
	return api.Valid(data)
}
