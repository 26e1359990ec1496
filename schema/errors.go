package schema

import "errors"

// ErrInvalidSchema is returned when a field list cannot be decoded or validated.
var ErrInvalidSchema = errors.New("schema: invalid schema")
