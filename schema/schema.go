package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/skosovsky/geminikit/internal/jsonx"
)

// ReservedName is the output key holding safety ratings; schemas cannot declare it.
const ReservedName = "safety_ratings"

// SampleText is the placeholder value of every field in sample outputs.
const SampleText = "<Sample text>"

// Schema is a validated, immutable field list. The zero value is an empty schema.
type Schema struct {
	fields []Field
	prompt string
}

// New validates fields and returns a Schema holding a deep copy of them with
// surrounding whitespace trimmed from every name.
func New(fields []Field) (Schema, error) {
	if len(fields) == 0 {
		return Schema{}, fmt.Errorf("%w: at least one field is required", ErrInvalidSchema)
	}
	if err := validateFields(fields, "schema"); err != nil {
		return Schema{}, err
	}
	for _, f := range fields {
		if strings.TrimSpace(f.Name) == ReservedName {
			return Schema{}, fmt.Errorf("%w: %q is reserved", ErrInvalidSchema, ReservedName)
		}
	}
	s := Schema{fields: cloneFields(fields)}
	normalizeFields(s.fields)
	prompt, err := jsonx.Marshal(s.fields)
	if err != nil {
		return Schema{}, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	s.prompt = string(prompt)
	return s, nil
}

// Parse decodes a JSON field list, as produced by schema designers.
func Parse(data []byte) (Schema, error) {
	var fields []Field
	if err := jsonx.Unmarshal(data, &fields); err != nil {
		return Schema{}, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	return New(fields)
}

// ParseYAML decodes a YAML field list.
func ParseYAML(data []byte) (Schema, error) {
	var fields []Field
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return Schema{}, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	return New(fields)
}

// IsZero reports whether the schema was never resolved.
func (s Schema) IsZero() bool { return len(s.fields) == 0 }

// Fields returns a deep copy of the field list.
func (s Schema) Fields() []Field { return cloneFields(s.fields) }

// Names returns the top-level field names in declaration order.
func (s Schema) Names() []string { return names(s.fields) }

// PromptText is the compact JSON rendering of the field list placed in prompts.
func (s Schema) PromptText() string { return s.prompt }

// OutputContract is the field list followed by the safety-ratings descriptor.
func (s Schema) OutputContract() []Field {
	return append(s.Fields(), SafetyRatingsField())
}

// SampleOutput maps every sanitized top-level name to SampleText and adds the
// safety-ratings sample.
func (s Schema) SampleOutput() map[string]any {
	out := make(map[string]any, len(s.fields)+1)
	for _, name := range s.Names() {
		out[SanitizeName(name)] = SampleText
	}
	out[ReservedName] = SafetyRatingsSample()
	return out
}

// MarshalJSON encodes the field list.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s.fields == nil {
		return []byte("[]"), nil
	}
	return jsonx.Marshal(s.fields)
}
