package prompts

import (
	"bytes"
	"fmt"
	"slices"
	"text/template"

	"github.com/skosovsky/geminikit"
)

// TurnTemplate is the text/template source of one conversation turn.
type TurnTemplate struct {
	Role    geminikit.Role
	Content string
}

// Template renders a fixed sequence of turns from a data value.
// Use New to construct; fields must not be mutated afterwards, which makes
// Render safe for concurrent use.
type Template struct {
	Name   string
	Turns  []TurnTemplate
	parsed []parsedTurn
}

type parsedTurn struct {
	tpl  *template.Template
	role geminikit.Role
}

// New parses every turn once. Returns ErrTemplateParse if any turn fails to parse.
func New(name string, turns []TurnTemplate) (*Template, error) {
	t := &Template{Name: name, Turns: slices.Clone(turns)}
	t.parsed = make([]parsedTurn, 0, len(t.Turns))
	for i, turn := range t.Turns {
		parsed, err := template.New(fmt.Sprintf("%s/%d", name, i)).
			Option("missingkey=error").
			Funcs(funcs).
			Parse(turn.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: %s turn %d: %w", ErrTemplateParse, name, i, err)
		}
		t.parsed = append(t.parsed, parsedTurn{tpl: parsed, role: turn.Role})
	}
	return t, nil
}

// MustNew is like New but panics on error. Used for the package's built-in templates.
func MustNew(name string, turns []TurnTemplate) *Template {
	t, err := New(name, turns)
	if err != nil {
		panic(err)
	}
	return t
}

// Render executes every turn against data and returns one text turn per template.
func (t *Template) Render(data any) (geminikit.Conversation, error) {
	out := make(geminikit.Conversation, 0, len(t.parsed))
	for i, pt := range t.parsed {
		var buf bytes.Buffer
		if err := pt.tpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("%w: %s turn %d: %w", ErrTemplateRender, t.Name, i, err)
		}
		out = append(out, geminikit.NewTextTurn(pt.role, buf.String()))
	}
	return out, nil
}
