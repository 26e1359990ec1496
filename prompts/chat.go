package prompts

import (
	"strings"

	"github.com/skosovsky/geminikit"
)

// DefaultImageMIMEType tags inline images whose type is unknown.
const DefaultImageMIMEType = "image/jpeg"

// Message is one caller-supplied chat turn.
type Message struct {
	Role geminikit.Role `json:"role"`
	Text string         `json:"text"`
}

// SingleMessage is a conversation of one user turn holding text.
func SingleMessage(text string) geminikit.Conversation {
	return geminikit.Conversation{geminikit.NewTextTurn(geminikit.RoleUser, text)}
}

// ChatTranscript maps messages one to one into turns, unchanged.
func ChatTranscript(messages []Message) geminikit.Conversation {
	out := make(geminikit.Conversation, 0, len(messages))
	for _, m := range messages {
		out = append(out, geminikit.NewTextTurn(m.Role, m.Text))
	}
	return out
}

// Image is a single role-less turn with the question followed by the image as
// inline data. An empty mimeType means DefaultImageMIMEType.
func Image(question, mimeType string, image []byte) geminikit.Conversation {
	if strings.TrimSpace(mimeType) == "" {
		mimeType = DefaultImageMIMEType
	}
	return geminikit.Conversation{{
		Parts: []geminikit.Part{
			geminikit.TextPart{Text: question},
			geminikit.NewBlobPart(mimeType, image),
		},
	}}
}

// Embedding is the embedContent request for text.
func Embedding(model, text string) geminikit.EmbedRequest {
	return geminikit.EmbedRequest{
		Model:   geminikit.ModelResource(model),
		Content: geminikit.Turn{Parts: []geminikit.Part{geminikit.TextPart{Text: text}}},
	}
}
