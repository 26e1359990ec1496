package prompts

import (
	"strings"
	"text/template"
)

// FencePlaceholder replaces every triple backtick in fenced caller text.
const FencePlaceholder = "####"

// EscapeFence replaces each "```" in text with FencePlaceholder, scanning left
// to right, so the result never contains three consecutive backticks.
func EscapeFence(text string) string {
	return strings.ReplaceAll(text, "```", FencePlaceholder)
}

var funcs = template.FuncMap{
	"fence": EscapeFence,
	"trim":  strings.TrimSpace,
}
