package prompts

import "unicode/utf8"

// TokenCounter reports the size of a text in model tokens.
type TokenCounter interface {
	Count(text string) (int, error)
}

// CharFallbackCounter approximates a tokenizer by assuming a fixed number of
// characters per token. A non-positive CharsPerToken means 4.
type CharFallbackCounter struct {
	CharsPerToken int
}

// Count never fails; partial tokens count as whole ones.
func (c *CharFallbackCounter) Count(text string) (int, error) {
	per := max(c.CharsPerToken, 0)
	if per == 0 {
		per = 4
	}
	return (utf8.RuneCountInString(text) + per - 1) / per, nil
}
