package action

import (
	"strings"

	"github.com/skosovsky/geminikit"
	"github.com/skosovsky/geminikit/prompts"
	"github.com/skosovsky/geminikit/schema"
)

// Messages carries the SendMessages payload of either message type.
type Messages struct {
	Message        string            `json:"message,omitempty"`
	ChatTranscript []prompts.Message `json:"chat_transcript,omitempty"`
}

// SendMessagesInput is the input of SendMessages. An empty MessageType is
// inferred from the payload.
type SendMessagesInput struct {
	Model       string             `json:"model"`
	MessageType MessageType        `json:"message_type"`
	Messages    Messages           `json:"messages"`
	Settings    geminikit.Settings `json:"-"`
}

// TranslateInput is the input of TranslateText. An empty From asks the model to
// detect the source language.
type TranslateInput struct {
	Model    string             `json:"model"`
	Text     string             `json:"text"`
	From     string             `json:"from"`
	To       string             `json:"to"`
	Settings geminikit.Settings `json:"-"`
}

// SummarizeInput is the input of SummarizeText. MaxWords <= 0 means prompts.DefaultMaxWords.
type SummarizeInput struct {
	Model    string             `json:"model"`
	Text     string             `json:"text"`
	MaxWords int                `json:"max_words"`
	Settings geminikit.Settings `json:"-"`
}

// AnalyzeTextInput is the input of AnalyzeText.
type AnalyzeTextInput struct {
	Model    string             `json:"model"`
	Text     string             `json:"text"`
	Question string             `json:"question"`
	Settings geminikit.Settings `json:"-"`
}

// AnalyzeImageInput is the input of AnalyzeImage. Image holds raw bytes (base64
// in JSON); when it is empty, ImageURL is downloaded instead.
type AnalyzeImageInput struct {
	Model    string             `json:"model"`
	Question string             `json:"question"`
	Image    []byte             `json:"image,omitempty"`
	ImageURL string             `json:"image_url,omitempty"`
	MIMEType string             `json:"mime_type,omitempty"`
	Settings geminikit.Settings `json:"-"`
}

// CategorizeInput is the input of CategorizeText.
type CategorizeInput struct {
	Model      string             `json:"model"`
	Text       string             `json:"text"`
	Categories schema.Categories  `json:"categories"`
	Settings   geminikit.Settings `json:"-"`
}

// DraftEmailInput is the input of DraftEmail.
type DraftEmailInput struct {
	Model            string             `json:"model"`
	EmailDescription string             `json:"email_description"`
	Settings         geminikit.Settings `json:"-"`
}

// ParseInput is the per-call input of ParseText. Nil Settings fall back to the
// ParseText configuration; a non-nil value replaces it, even when empty.
type ParseInput struct {
	Text     string              `json:"text"`
	Settings *geminikit.Settings `json:"-"`
}

// EmbeddingInput is the input of GenerateEmbedding. Embedding takes no settings.
type EmbeddingInput struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

// required returns an *InputError for the first blank value of name/value pairs.
func required(kind Kind, pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return &InputError{Field: pairs[i], Action: kind, Err: ErrMissingInput}
		}
	}
	return nil
}
