package action

import (
	"context"
	"fmt"
	"strings"

	"github.com/skosovsky/geminikit"
	"github.com/skosovsky/geminikit/extract"
	"github.com/skosovsky/geminikit/prompts"
)

// SendMessages sends a single message or a caller-built transcript and returns
// the reply text as is.
func (c *Client) SendMessages(ctx context.Context, in SendMessagesInput) (_ *extract.AnswerOutput, err error) {
	ctx, o := c.begin(ctx, KindSendMessages, in.Model)
	defer func() { o.end(err) }()

	if err := required(KindSendMessages, "model", in.Model); err != nil {
		return nil, err
	}
	msgType := in.MessageType
	if msgType == "" {
		msgType = SingleMessage
		if len(in.Messages.ChatTranscript) > 0 {
			msgType = ChatTranscript
		}
	}
	var conv geminikit.Conversation
	switch msgType {
	case SingleMessage:
		if err := required(KindSendMessages, "messages.message", in.Messages.Message); err != nil {
			return nil, err
		}
		conv = prompts.SingleMessage(in.Messages.Message)
	case ChatTranscript:
		if len(in.Messages.ChatTranscript) == 0 {
			return nil, &InputError{Field: "messages.chat_transcript", Action: KindSendMessages, Err: ErrMissingInput}
		}
		conv = prompts.ChatTranscript(in.Messages.ChatTranscript)
	default:
		return nil, &InputError{Field: "message_type", Action: KindSendMessages,
			Err: fmt.Errorf("%w: unknown message type %q", ErrInvalidInput, msgType)}
	}
	resp, err := c.generate(ctx, o, in.Model, conv, in.Settings)
	if err != nil {
		return nil, err
	}
	return extract.Answer(resp, extract.RawText)
}

// TranslateText translates text into the target language.
func (c *Client) TranslateText(ctx context.Context, in TranslateInput) (_ *extract.AnswerOutput, err error) {
	ctx, o := c.begin(ctx, KindTranslateText, in.Model)
	defer func() { o.end(err) }()

	if err := required(KindTranslateText, "model", in.Model, "text", in.Text, "to", in.To); err != nil {
		return nil, err
	}
	conv, err := prompts.Translate(in.Text, strings.TrimSpace(in.From), strings.TrimSpace(in.To))
	if err != nil {
		return nil, err
	}
	resp, err := c.generate(ctx, o, in.Model, conv, in.Settings)
	if err != nil {
		return nil, err
	}
	return extract.Answer(resp, extract.JSONResponse)
}

// SummarizeText summarizes text within the word limit.
func (c *Client) SummarizeText(ctx context.Context, in SummarizeInput) (_ *extract.AnswerOutput, err error) {
	ctx, o := c.begin(ctx, KindSummarizeText, in.Model)
	defer func() { o.end(err) }()

	if err := required(KindSummarizeText, "model", in.Model, "text", in.Text); err != nil {
		return nil, err
	}
	conv, err := prompts.Summarize(in.Text, in.MaxWords)
	if err != nil {
		return nil, err
	}
	resp, err := c.generate(ctx, o, in.Model, conv, in.Settings)
	if err != nil {
		return nil, err
	}
	return extract.Answer(resp, extract.RawText)
}

// AnalyzeText answers a question using only the supplied text.
func (c *Client) AnalyzeText(ctx context.Context, in AnalyzeTextInput) (_ *extract.AnswerOutput, err error) {
	ctx, o := c.begin(ctx, KindAnalyzeText, in.Model)
	defer func() { o.end(err) }()

	if err := required(KindAnalyzeText, "model", in.Model, "text", in.Text, "question", in.Question); err != nil {
		return nil, err
	}
	conv, err := prompts.AnalyzeText(in.Text, in.Question)
	if err != nil {
		return nil, err
	}
	resp, err := c.generate(ctx, o, in.Model, conv, in.Settings)
	if err != nil {
		return nil, err
	}
	return extract.Answer(resp, extract.JSONResponse)
}

// AnalyzeImage answers a question about an image given as bytes or an https URL.
func (c *Client) AnalyzeImage(ctx context.Context, in AnalyzeImageInput) (_ *extract.AnswerOutput, err error) {
	ctx, o := c.begin(ctx, KindAnalyzeImage, in.Model)
	defer func() { o.end(err) }()

	if err := required(KindAnalyzeImage, "model", in.Model, "question", in.Question); err != nil {
		return nil, err
	}
	data, mimeType := in.Image, in.MIMEType
	if len(data) == 0 {
		if strings.TrimSpace(in.ImageURL) == "" {
			return nil, &InputError{Field: "image", Action: KindAnalyzeImage, Err: ErrMissingInput}
		}
		img, err := c.images.FetchImage(ctx, strings.TrimSpace(in.ImageURL))
		if err != nil {
			return nil, &InputError{Field: "image_url", Action: KindAnalyzeImage, Err: err}
		}
		data = img.Data
		if mimeType == "" {
			mimeType = img.MIMEType
		}
	}
	conv := prompts.Image(in.Question, mimeType, data)
	resp, err := c.generate(ctx, o, in.Model, conv, in.Settings)
	if err != nil {
		return nil, err
	}
	return extract.Answer(resp, extract.RawText)
}

// CategorizeText picks the best matching category for text.
func (c *Client) CategorizeText(ctx context.Context, in CategorizeInput) (_ *extract.AnswerOutput, err error) {
	ctx, o := c.begin(ctx, KindCategorizeText, in.Model)
	defer func() { o.end(err) }()

	if err := required(KindCategorizeText, "model", in.Model, "text", in.Text); err != nil {
		return nil, err
	}
	if len(in.Categories) == 0 {
		return nil, &InputError{Field: "categories", Action: KindCategorizeText, Err: ErrMissingInput}
	}
	if err := in.Categories.Validate(); err != nil {
		return nil, &InputError{Field: "categories", Action: KindCategorizeText, Err: fmt.Errorf("%w: %w", ErrInvalidInput, err)}
	}
	conv, err := prompts.Categorize(in.Text, in.Categories)
	if err != nil {
		return nil, err
	}
	resp, err := c.generate(ctx, o, in.Model, conv, in.Settings)
	if err != nil {
		return nil, err
	}
	return extract.Answer(resp, extract.JSONResponse)
}

// DraftEmail drafts an email subject and body from a description.
func (c *Client) DraftEmail(ctx context.Context, in DraftEmailInput) (_ *extract.EmailOutput, err error) {
	ctx, o := c.begin(ctx, KindDraftEmail, in.Model)
	defer func() { o.end(err) }()

	if err := required(KindDraftEmail, "model", in.Model, "email_description", in.EmailDescription); err != nil {
		return nil, err
	}
	conv, err := prompts.DraftEmail(in.EmailDescription)
	if err != nil {
		return nil, err
	}
	resp, err := c.generate(ctx, o, in.Model, conv, in.Settings)
	if err != nil {
		return nil, err
	}
	return extract.Email(resp)
}

// GenerateEmbedding returns the embedding vector of text. Settings are never
// applied to embedding requests.
func (c *Client) GenerateEmbedding(ctx context.Context, in EmbeddingInput) (_ *extract.EmbeddingOutput, err error) {
	ctx, o := c.begin(ctx, KindGenerateEmbedding, in.Model)
	defer func() { o.end(err) }()

	if err := required(KindGenerateEmbedding, "model", in.Model, "text", in.Text); err != nil {
		return nil, err
	}
	n, err := c.counter.Count(in.Text)
	if err != nil {
		return nil, fmt.Errorf("action: count tokens: %w", err)
	}
	if n > c.maxEmbeddingTokens {
		return nil, &InputError{Field: "text", Action: KindGenerateEmbedding,
			Err: fmt.Errorf("%w: about %d tokens, limit is %d", ErrInputTooLong, n, c.maxEmbeddingTokens)}
	}
	req := prompts.Embedding(in.Model, in.Text)
	var resp geminikit.EmbedResponse
	if err := c.transport.Post(ctx, geminikit.EmbedContentPath(in.Model), req, &resp); err != nil {
		return nil, err
	}
	return extract.Embedding(&resp), nil
}
