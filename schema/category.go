package schema

import (
	"fmt"
	"strings"
)

// CategorySeparator joins rendered categories. It is the two characters
// backslash and n, not a newline.
const CategorySeparator = `\n`

// Category is one classification target; Rule optionally says when it applies.
type Category struct {
	Key  string `json:"key" yaml:"key"`
	Rule string `json:"rule,omitempty" yaml:"rule,omitempty"`
}

// Categories is the caller-supplied category list of a categorize invocation.
type Categories []Category

// Validate requires at least one category and a key on each.
func (c Categories) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: at least one category is required", ErrInvalidSchema)
	}
	for i, cat := range c {
		if strings.TrimSpace(cat.Key) == "" {
			return fmt.Errorf("%w: category %d has no key", ErrInvalidSchema, i)
		}
	}
	return nil
}

// AllRuled reports whether every category declares a rule.
func (c Categories) AllRuled() bool {
	if len(c) == 0 {
		return false
	}
	for _, cat := range c {
		if strings.TrimSpace(cat.Rule) == "" {
			return false
		}
	}
	return true
}

// PromptText renders "Key - Rule" for ruled items and "Key" otherwise, joined
// by CategorySeparator.
func (c Categories) PromptText() string {
	lines := make([]string, 0, len(c))
	for _, cat := range c {
		if strings.TrimSpace(cat.Rule) != "" {
			lines = append(lines, cat.Key+" - "+cat.Rule)
			continue
		}
		lines = append(lines, cat.Key)
	}
	return strings.Join(lines, CategorySeparator)
}

// First returns the first key, or "" for an empty list.
func (c Categories) First() string {
	if len(c) == 0 {
		return ""
	}
	return c[0].Key
}
