package action

// Kind names an action.
type Kind string

// Action kinds.
const (
	KindSendMessages      Kind = "send_messages"
	KindTranslateText     Kind = "translate_text"
	KindSummarizeText     Kind = "summarize_text"
	KindParseText         Kind = "parse_text"
	KindDraftEmail        Kind = "draft_email"
	KindCategorizeText    Kind = "categorize_text"
	KindGenerateEmbedding Kind = "generate_embedding"
	KindAnalyzeImage      Kind = "analyze_image"
	KindAnalyzeText       Kind = "analyze_text"
)

// Kinds lists every action kind.
var Kinds = []Kind{
	KindSendMessages,
	KindTranslateText,
	KindSummarizeText,
	KindParseText,
	KindDraftEmail,
	KindCategorizeText,
	KindGenerateEmbedding,
	KindAnalyzeImage,
	KindAnalyzeText,
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// MessageType selects how SendMessages reads its input.
type MessageType string

// Message types.
const (
	SingleMessage  MessageType = "single_message"
	ChatTranscript MessageType = "chat_transcript"
)
