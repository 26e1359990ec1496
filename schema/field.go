package schema

import (
	"fmt"
	"slices"
	"strings"
)

// FieldType is the declared type of a field.
type FieldType string

// Field types. An empty type means TypeString.
const (
	TypeString    FieldType = "string"
	TypeInteger   FieldType = "integer"
	TypeNumber    FieldType = "number"
	TypeBoolean   FieldType = "boolean"
	TypeDate      FieldType = "date"
	TypeDateTime  FieldType = "date_time"
	TypeTimestamp FieldType = "timestamp"
	TypeObject    FieldType = "object"
	TypeArray     FieldType = "array"
)

func (t FieldType) known() bool {
	switch t {
	case "", TypeString, TypeInteger, TypeNumber, TypeBoolean, TypeDate, TypeDateTime, TypeTimestamp, TypeObject, TypeArray:
		return true
	}
	return false
}

// Field is one node of a schema tree. Object fields, and array fields whose
// elements are objects, carry nested Properties.
type Field struct {
	Name        string    `json:"name" yaml:"name"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Type        FieldType `json:"type,omitempty" yaml:"type,omitempty"`
	Of          FieldType `json:"of,omitempty" yaml:"of,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Optional    bool      `json:"optional,omitempty" yaml:"optional,omitempty"`
	Properties  []Field   `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Kind returns the field type with the empty default resolved.
func (f Field) Kind() FieldType {
	if f.Type == "" {
		return TypeString
	}
	return f.Type
}

// nests reports whether the field may carry Properties.
func (f Field) nests() bool {
	return f.Kind() == TypeObject || (f.Kind() == TypeArray && f.Of == TypeObject)
}

func (f Field) clone() Field {
	out := f
	out.Properties = cloneFields(f.Properties)
	return out
}

func cloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = f.clone()
	}
	return out
}

// normalizeFields trims every name in place, nested properties included.
func normalizeFields(fields []Field) {
	for i := range fields {
		fields[i].Name = strings.TrimSpace(fields[i].Name)
		normalizeFields(fields[i].Properties)
	}
}

// validateFields checks names are present and unique per level, types are
// known, and nesting is only used where the type allows it.
func validateFields(fields []Field, path string) error {
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		name := strings.TrimSpace(f.Name)
		at := fmt.Sprintf("%s[%d]", path, i)
		if name == "" {
			return fmt.Errorf("%w: %s has no name", ErrInvalidSchema, at)
		}
		at = path + "." + name
		if seen[name] {
			return fmt.Errorf("%w: duplicate field %s", ErrInvalidSchema, at)
		}
		seen[name] = true
		if !f.Type.known() {
			return fmt.Errorf("%w: %s has unknown type %q", ErrInvalidSchema, at, f.Type)
		}
		if f.Of != "" && (f.Kind() != TypeArray || !f.Of.known()) {
			return fmt.Errorf("%w: %s has invalid element type %q", ErrInvalidSchema, at, f.Of)
		}
		if len(f.Properties) > 0 {
			if !f.nests() {
				return fmt.Errorf("%w: %s of type %s cannot declare properties", ErrInvalidSchema, at, f.Kind())
			}
			if err := validateFields(f.Properties, at); err != nil {
				return err
			}
		}
	}
	return nil
}

// names returns the top-level names in order.
func names(fields []Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Name)
	}
	return slices.Clip(out)
}
