package extract

import (
	"errors"
	"strings"
)

// ErrFinishReason is matched by every *FinishError.
var ErrFinishReason = errors.New("extract: generation ended in a failure state")

// Severity tags a failed finish reason.
type Severity string

// Severity tags, from the most to the least specific.
const (
	SeveritySystemError Severity = "SYSTEM ERROR"
	SeverityError       Severity = "ERROR"
	SeverityBadInput    Severity = "BAD INPUT"
	SeveritySafety      Severity = "SAFETY"
	SeverityOther       Severity = "OTHER"
)

// FinishError reports a candidate that finished in a failure state.
// Use errors.Is(err, ErrFinishReason) and errors.As(err, &finishErr) to inspect.
type FinishError struct {
	Reason   string
	Severity Severity
	Message  string
}

// Error renders "{severity} - {message}".
func (e *FinishError) Error() string {
	return string(e.Severity) + " - " + e.Message
}

// Unwrap returns ErrFinishReason.
func (e *FinishError) Unwrap() error { return ErrFinishReason }

// Compile-time check that FinishError implements error.
var _ error = (*FinishError)(nil)

type failure struct {
	severity Severity
	message  string
}

var failures = map[string]failure{
	"agent_disconnect": {SeveritySystemError, "Agent suddenly disconnected, please try later"},
	"error":            {SeverityError, "An error occurred, try again later"},
	"invalid_argument": {SeverityBadInput, "The agent received an invalid argument, it could be because it is busy or the input was invalid"},
	"safety":           {SeveritySafety, "The agent was not able to answer because of a safety reason"},
	"other":            {SeverityOther, "The agent was not able to answer because of an unknown reason"},
	"no_answer":        {SeverityError, "The agent was not able to answer the requested query"},
	"no_agent":         {SeverityError, "The call was not answered because there were no available agents"},
	"queue_timeout":    {SeverityError, "The call was not answered because it timed out in the queue"},
	"transfer":         {SeverityError, "The call was transferred to another agent or queue"},
	"unknown":          {SeverityError, "The reason for the call ending is unknown"},
}

// CheckFinishReason returns a *FinishError when reason, compared case-insensitively,
// is a failure label. Any other label, including "STOP" and "", is success.
func CheckFinishReason(reason string) error {
	label := strings.ToLower(strings.TrimSpace(reason))
	f, ok := failures[label]
	if !ok {
		return nil
	}
	return &FinishError{Reason: reason, Severity: f.severity, Message: f.message}
}
