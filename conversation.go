package geminikit

import (
	"encoding/base64"
	"fmt"

	"github.com/skosovsky/geminikit/internal/jsonx"
)

// Role is the author of a conversation turn.
type Role string

// Conversation roles understood by the API.
const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Valid reports whether r is one of the roles the API accepts.
func (r Role) Valid() bool { return r == RoleUser || r == RoleModel }

// Part is a sealed interface for turn content. Only TextPart and BlobPart implement it.
type Part interface {
	isPart()
}

// TextPart holds plain text content.
type TextPart struct {
	Text string
}

func (TextPart) isPart() {}

// BlobPart holds inline binary content. Data is the base64 text sent on the wire.
type BlobPart struct {
	MIMEType string
	Data     string
}

func (BlobPart) isPart() {}

// NewBlobPart base64-encodes raw into a BlobPart.
func NewBlobPart(mimeType string, raw []byte) BlobPart {
	return BlobPart{MIMEType: mimeType, Data: base64.StdEncoding.EncodeToString(raw)}
}

// Bytes decodes the base64 payload.
func (b BlobPart) Bytes() ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(b.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: inline data is not base64: %w", ErrInvalidPart, err)
	}
	return raw, nil
}

// Turn is one message of a conversation. Role may be empty for single-turn
// requests that carry no role.
type Turn struct {
	Role  Role
	Parts []Part
}

// NewTextTurn returns a turn with a single text part.
func NewTextTurn(role Role, text string) Turn {
	return Turn{Role: role, Parts: []Part{TextPart{Text: text}}}
}

// FirstText returns the text of the first part. ok is false when the turn has
// no parts or the first part is not text.
func (t Turn) FirstText() (text string, ok bool) {
	if len(t.Parts) == 0 {
		return "", false
	}
	p, ok := t.Parts[0].(TextPart)
	if !ok {
		return "", false
	}
	return p.Text, true
}

// Conversation is an ordered list of turns, sent as the request "contents".
type Conversation []Turn

type wireBlob struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type wirePart struct {
	Text       *string   `json:"text,omitempty"`
	InlineData *wireBlob `json:"inlineData,omitempty"`
}

type wireTurn struct {
	Role  Role       `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

// MarshalJSON encodes the turn as {"role": ..., "parts": [...]}; role is omitted when empty.
func (t Turn) MarshalJSON() ([]byte, error) {
	w := wireTurn{Role: t.Role, Parts: make([]wirePart, 0, len(t.Parts))}
	for i, p := range t.Parts {
		switch v := p.(type) {
		case TextPart:
			text := v.Text
			w.Parts = append(w.Parts, wirePart{Text: &text})
		case BlobPart:
			w.Parts = append(w.Parts, wirePart{InlineData: &wireBlob{MIMEType: v.MIMEType, Data: v.Data}})
		default:
			return nil, fmt.Errorf("%w: part %d has type %T", ErrInvalidPart, i, p)
		}
	}
	return jsonx.Marshal(w)
}

// UnmarshalJSON decodes a turn. Parts that carry neither text nor inline data
// (function calls, executable code) are skipped.
func (t *Turn) UnmarshalJSON(data []byte) error {
	var w wireTurn
	if err := jsonx.Unmarshal(data, &w); err != nil {
		return err
	}
	t.Role = w.Role
	t.Parts = make([]Part, 0, len(w.Parts))
	for _, p := range w.Parts {
		switch {
		case p.Text != nil:
			t.Parts = append(t.Parts, TextPart{Text: *p.Text})
		case p.InlineData != nil:
			t.Parts = append(t.Parts, BlobPart{MIMEType: p.InlineData.MIMEType, Data: p.InlineData.Data})
		}
	}
	return nil
}
