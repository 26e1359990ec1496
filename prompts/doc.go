// Package prompts builds the conversation sent to the model for every task.
//
// Instruction tasks render a three-turn shape from text/template turn
// templates: a user instruction, a canned model acknowledgement and a user
// payload. Caller text placed between triple-backtick delimiters passes through
// EscapeFence first so it cannot close the delimiter early.
package prompts
