// Package schema resolves caller-declared output shapes.
//
// A Schema is the ordered field list a parse action extracts. It is decoded and
// validated once, when the action is configured, and is immutable afterwards:
// the same list is rendered into the prompt and, with the safety-rating
// descriptor appended, forms the action's output contract.
package schema
