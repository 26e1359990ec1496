package action

import (
	"context"
	"fmt"
	"strings"

	"github.com/skosovsky/geminikit"
	"github.com/skosovsky/geminikit/extract"
	"github.com/skosovsky/geminikit/prompts"
	"github.com/skosovsky/geminikit/schema"
)

// ParseText is a configured parse action: the model, default settings and the
// resolved field schema. It is immutable and safe for concurrent use.
type ParseText struct {
	model    string
	settings geminikit.Settings
	schema   schema.Schema
}

// NewParseText resolves a parse action configuration.
func NewParseText(model string, s schema.Schema, settings geminikit.Settings) (*ParseText, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("%w: parse_text requires a model", ErrInvalidDefinition)
	}
	if s.IsZero() {
		return nil, fmt.Errorf("%w: parse_text requires a schema", ErrInvalidDefinition)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	return &ParseText{model: model, settings: settings, schema: s}, nil
}

// Model returns the configured model.
func (p *ParseText) Model() string { return p.model }

// Schema returns the resolved schema.
func (p *ParseText) Schema() schema.Schema { return p.schema }

// OutputFields is the schema followed by the safety-ratings descriptor.
func (p *ParseText) OutputFields() []schema.Field { return p.schema.OutputContract() }

// SampleOutput is a sample result with sanitized field names.
func (p *ParseText) SampleOutput() map[string]any { return p.schema.SampleOutput() }

// ParseText extracts the fields of p's schema from the input text.
func (c *Client) ParseText(ctx context.Context, p *ParseText, in ParseInput) (_ *extract.ParsedOutput, err error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil parse_text configuration", ErrInvalidDefinition)
	}
	ctx, o := c.begin(ctx, KindParseText, p.model)
	defer func() { o.end(err) }()

	if err := required(KindParseText, "text", in.Text); err != nil {
		return nil, err
	}
	settings := p.settings
	if in.Settings != nil {
		settings = *in.Settings
	}
	conv, err := prompts.Parse(p.schema, in.Text)
	if err != nil {
		return nil, err
	}
	resp, err := c.generate(ctx, o, p.model, conv, settings)
	if err != nil {
		return nil, err
	}
	return extract.Parsed(resp, p.schema.Names())
}
