package prompts

import "errors"

// Sentinel errors for template operations.
var (
	ErrTemplateParse  = errors.New("prompts: template parsing failed")
	ErrTemplateRender = errors.New("prompts: template rendering failed")
)
