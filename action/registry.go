package action

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/skosovsky/geminikit"
	"github.com/skosovsky/geminikit/extract"
	"github.com/skosovsky/geminikit/internal/jsonx"
	"github.com/skosovsky/geminikit/schema"
)

// Definition is a named, configured action. Fields other than Name and Kind are
// defaults that the invocation input may override.
type Definition struct {
	Name        string
	Kind        Kind
	Model       string
	Settings    geminikit.Settings
	Schema      schema.Schema
	MessageType MessageType
	MaxWords    int
	From        string
	To          string
	Categories  schema.Categories
}

// OutputFields describes the output of the action.
func (d Definition) OutputFields() []schema.Field {
	switch d.Kind {
	case KindParseText:
		return d.Schema.OutputContract()
	case KindDraftEmail:
		return schema.EmailContract()
	case KindGenerateEmbedding:
		return schema.EmbeddingContract()
	case KindTranslateText:
		return schema.AnswerContract("Translation")
	case KindSummarizeText:
		return schema.AnswerContract("Summary")
	case KindCategorizeText:
		return schema.AnswerContract("Best matching category")
	default:
		return schema.AnswerContract("Answer")
	}
}

// SampleOutput is a sample result of the action.
func (d Definition) SampleOutput() map[string]any {
	ratings := schema.SafetyRatingsSample()
	answer := func(s string) map[string]any {
		return map[string]any{"answer": s, "safety_ratings": ratings}
	}
	switch d.Kind {
	case KindParseText:
		return d.Schema.SampleOutput()
	case KindDraftEmail:
		return map[string]any{
			"subject":        "Sample email subject",
			"body":           "This is a sample email body.",
			"safety_ratings": ratings,
		}
	case KindGenerateEmbedding:
		return map[string]any{"embedding": []map[string]any{{"value": 0}}}
	case KindTranslateText:
		return answer("<Gemini Translation>")
	case KindCategorizeText:
		if first := d.Categories.First(); first != "" {
			return answer(first)
		}
		return answer(extract.NotAvailable)
	case KindAnalyzeImage:
		return answer("This image shows birds")
	case KindAnalyzeText:
		return answer("This text describes rainy weather")
	case KindSummarizeText:
		return answer("<Gemini Answer>")
	default:
		return answer("<Gemini Response>")
	}
}

type entry struct {
	def   Definition
	parse *ParseText
}

// Registry dispatches JSON inputs to named actions. It is immutable after
// NewRegistry and safe for concurrent use.
type Registry struct {
	client  *Client
	entries map[string]entry
}

// NewRegistry validates defs and binds them to c.
func NewRegistry(c *Client, defs ...Definition) (*Registry, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil client", ErrInvalidDefinition)
	}
	r := &Registry{client: c, entries: make(map[string]entry, len(defs))}
	for _, d := range defs {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: empty action name", ErrInvalidDefinition)
		}
		if _, dup := r.entries[name]; dup {
			return nil, fmt.Errorf("%w: duplicate action %q", ErrInvalidDefinition, name)
		}
		if !d.Kind.Valid() {
			return nil, fmt.Errorf("%w: action %q has unknown kind %q", ErrInvalidDefinition, name, d.Kind)
		}
		if err := d.Settings.Validate(); err != nil {
			return nil, fmt.Errorf("%w: action %q: %w", ErrInvalidDefinition, name, err)
		}
		if len(d.Categories) > 0 {
			if err := d.Categories.Validate(); err != nil {
				return nil, fmt.Errorf("%w: action %q: %w", ErrInvalidDefinition, name, err)
			}
		}
		d.Name = name
		e := entry{def: d}
		if d.Kind == KindParseText {
			p, err := NewParseText(d.Model, d.Schema, d.Settings)
			if err != nil {
				return nil, fmt.Errorf("action %q: %w", name, err)
			}
			e.parse = p
		}
		r.entries[name] = e
	}
	return r, nil
}

// Names returns the configured action names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Definition returns the named definition.
func (r *Registry) Definition(name string) (Definition, bool) {
	e, ok := r.entries[name]
	return e.def, ok
}

// OutputFields describes the output of the named action.
func (r *Registry) OutputFields(name string) ([]schema.Field, error) {
	e, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return e.def.OutputFields(), nil
}

// SampleOutput returns a sample result of the named action.
func (r *Registry) SampleOutput(name string) (map[string]any, error) {
	e, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return e.def.SampleOutput(), nil
}

func (r *Registry) lookup(name string) (entry, error) {
	e, ok := r.entries[name]
	if !ok {
		return entry{}, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return e, nil
}

// Invoke decodes input as the JSON input of the named action, fills blanks from
// its definition and runs it. "safetySettings" and "generationConfig" keys in
// input replace the configured settings wholesale for every kind, even when
// they are empty.
func (r *Registry) Invoke(ctx context.Context, name string, input []byte) (any, error) {
	e, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	d := e.def
	if len(strings.TrimSpace(string(input))) == 0 {
		input = []byte("{}")
	}
	var raw map[string]any
	if err := jsonx.Unmarshal(input, &raw); err != nil {
		return nil, &InputError{Field: "input", Action: d.Kind, Err: fmt.Errorf("%w: %w", ErrInvalidInput, err)}
	}
	settings := d.Settings
	_, hasSafety := raw["safetySettings"]
	_, hasGeneration := raw["generationConfig"]
	override := hasSafety || hasGeneration
	if override {
		settings, err = geminikit.ParseSettings(raw)
		if err != nil {
			return nil, &InputError{Field: "settings", Action: d.Kind, Err: err}
		}
	}

	decode := func(dst any) error {
		if err := jsonx.Unmarshal(input, dst); err != nil {
			return &InputError{Field: "input", Action: d.Kind, Err: fmt.Errorf("%w: %w", ErrInvalidInput, err)}
		}
		return nil
	}
	model := func(m string) string {
		if strings.TrimSpace(m) == "" {
			return d.Model
		}
		return m
	}

	switch d.Kind {
	case KindSendMessages:
		var in SendMessagesInput
		if err := decode(&in); err != nil {
			return nil, err
		}
		in.Model, in.Settings = model(in.Model), settings
		if in.MessageType == "" {
			in.MessageType = d.MessageType
		}
		return r.client.SendMessages(ctx, in)
	case KindTranslateText:
		var in TranslateInput
		if err := decode(&in); err != nil {
			return nil, err
		}
		in.Model, in.Settings = model(in.Model), settings
		if in.From == "" {
			in.From = d.From
		}
		if in.To == "" {
			in.To = d.To
		}
		return r.client.TranslateText(ctx, in)
	case KindSummarizeText:
		var in SummarizeInput
		if err := decode(&in); err != nil {
			return nil, err
		}
		in.Model, in.Settings = model(in.Model), settings
		if in.MaxWords <= 0 {
			in.MaxWords = d.MaxWords
		}
		return r.client.SummarizeText(ctx, in)
	case KindAnalyzeText:
		var in AnalyzeTextInput
		if err := decode(&in); err != nil {
			return nil, err
		}
		in.Model, in.Settings = model(in.Model), settings
		return r.client.AnalyzeText(ctx, in)
	case KindAnalyzeImage:
		var in AnalyzeImageInput
		if err := decode(&in); err != nil {
			return nil, err
		}
		in.Model, in.Settings = model(in.Model), settings
		return r.client.AnalyzeImage(ctx, in)
	case KindCategorizeText:
		var in CategorizeInput
		if err := decode(&in); err != nil {
			return nil, err
		}
		in.Model, in.Settings = model(in.Model), settings
		if len(in.Categories) == 0 {
			in.Categories = d.Categories
		}
		return r.client.CategorizeText(ctx, in)
	case KindDraftEmail:
		var in DraftEmailInput
		if err := decode(&in); err != nil {
			return nil, err
		}
		in.Model, in.Settings = model(in.Model), settings
		return r.client.DraftEmail(ctx, in)
	case KindParseText:
		var in ParseInput
		if err := decode(&in); err != nil {
			return nil, err
		}
		if override {
			in.Settings = &settings
		}
		return r.client.ParseText(ctx, e.parse, in)
	case KindGenerateEmbedding:
		var in EmbeddingInput
		if err := decode(&in); err != nil {
			return nil, err
		}
		in.Model = model(in.Model)
		return r.client.GenerateEmbedding(ctx, in)
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrUnknownAction, d.Kind)
	}
}
