package action

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"

	"github.com/skosovsky/geminikit"
	"github.com/skosovsky/geminikit/extract"
	"github.com/skosovsky/geminikit/mediafetch"
	"github.com/skosovsky/geminikit/prompts"
	"github.com/skosovsky/geminikit/schema"
)

const ratingsJSON = `{"sexually_explicit":"NEGLIGIBLE","hate_speech":"NEGLIGIBLE","harassment":"NEGLIGIBLE","dangerous_content":"LOW"}`

func TestNew_nilTransportPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { New(nil) })
}

func TestTranslateText(t *testing.T) {
	t.Parallel()
	ft := &fakeTransport{reply: reply("```json\n{\"response\": \"Bonjour\"}\n```", "STOP")}
	c := New(ft)

	out, err := c.TranslateText(context.Background(), TranslateInput{Model: "gemini-pro", Text: "Hello", To: "French"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"answer":"Bonjour","safety_ratings":`+ratingsJSON+`}`, encode(t, out))

	assert.Equal(t, "models/gemini-pro:generateContent", ft.lastPath(t))
	req := ft.lastGenerate(t)
	require.Len(t, req.Contents, 3)
	instruct, _ := req.Contents[0].FirstText()
	assert.Contains(t, instruct, "Detect the language of the user's input yourself.")
	require.NotNil(t, req.GenerationConfig)
	require.NotNil(t, req.GenerationConfig.Temperature)
	assert.Zero(t, *req.GenerationConfig.Temperature)
	assert.Empty(t, req.SafetySettings)
}

func TestTranslateText_withSourceAndSettings(t *testing.T) {
	t.Parallel()
	ft := &fakeTransport{reply: reply(`{"response":"Hola"}`, "STOP")}
	c := New(ft)
	temp := 0.7
	settings := geminikit.Settings{
		SafetySettings: []geminikit.SafetySetting{
			{Category: geminikit.HarmCategoryHarassment, Threshold: geminikit.BlockOnlyHigh},
			{Category: geminikit.HarmCategoryHateSpeech},
		},
		GenerationConfig: &geminikit.GenerationConfig{Temperature: &temp, StopSequences: []string{"", "END"}},
	}

	out, err := c.TranslateText(context.Background(), TranslateInput{
		Model: "models/gemini-pro", Text: "Hello", From: "English", To: "Spanish", Settings: settings,
	})
	require.NoError(t, err)
	require.NotNil(t, out.Answer)
	assert.Equal(t, "Hola", *out.Answer)

	req := ft.lastGenerate(t)
	assert.Equal(t, "models/gemini-pro:generateContent", ft.lastPath(t))
	instruct, _ := req.Contents[0].FirstText()
	assert.Contains(t, instruct, "from English into Spanish")
	assert.Equal(t, []geminikit.SafetySetting{{Category: geminikit.HarmCategoryHarassment, Threshold: geminikit.BlockOnlyHigh}}, req.SafetySettings)
	assert.Equal(t, []string{"END"}, req.GenerationConfig.StopSequences)
	assert.InDelta(t, 0.7, *req.GenerationConfig.Temperature, 1e-9)
}

func TestActions_missingInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := New(&fakeTransport{reply: reply("x", "STOP")})

	tests := []struct {
		name  string
		field string
		call  func() error
	}{
		{"translate without target", "to", func() error {
			_, err := c.TranslateText(ctx, TranslateInput{Model: "m", Text: "hi"})
			return err
		}},
		{"summarize without text", "text", func() error {
			_, err := c.SummarizeText(ctx, SummarizeInput{Model: "m", Text: "  "})
			return err
		}},
		{"analyze without question", "question", func() error {
			_, err := c.AnalyzeText(ctx, AnalyzeTextInput{Model: "m", Text: "t"})
			return err
		}},
		{"email without description", "email_description", func() error {
			_, err := c.DraftEmail(ctx, DraftEmailInput{Model: "m"})
			return err
		}},
		{"categorize without categories", "categories", func() error {
			_, err := c.CategorizeText(ctx, CategorizeInput{Model: "m", Text: "t"})
			return err
		}},
		{"image without image", "image", func() error {
			_, err := c.AnalyzeImage(ctx, AnalyzeImageInput{Model: "m", Question: "q"})
			return err
		}},
		{"embedding without model", "model", func() error {
			_, err := c.GenerateEmbedding(ctx, EmbeddingInput{Text: "t"})
			return err
		}},
		{"send without message", "messages.message", func() error {
			_, err := c.SendMessages(ctx, SendMessagesInput{Model: "m"})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.call()
			require.ErrorIs(t, err, ErrMissingInput)
			var inputErr *InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}
}

func TestSendMessages(t *testing.T) {
	t.Parallel()

	t.Run("single message returns raw text", func(t *testing.T) {
		t.Parallel()
		ft := &fakeTransport{reply: reply("Hi there", "STOP")}
		out, err := New(ft).SendMessages(context.Background(), SendMessagesInput{
			Model:       "gemini-pro",
			MessageType: SingleMessage,
			Messages:    Messages{Message: "Hello"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Hi there", *out.Answer)
		req := ft.lastGenerate(t)
		require.Len(t, req.Contents, 1)
		assert.Equal(t, geminikit.RoleUser, req.Contents[0].Role)
	})

	t.Run("transcript inferred from payload", func(t *testing.T) {
		t.Parallel()
		ft := &fakeTransport{reply: reply("Fine", "STOP")}
		_, err := New(ft).SendMessages(context.Background(), SendMessagesInput{
			Model: "gemini-pro",
			Messages: Messages{ChatTranscript: []prompts.Message{
				{Role: geminikit.RoleUser, Text: "Hi"},
				{Role: geminikit.RoleModel, Text: "Hello"},
				{Role: geminikit.RoleUser, Text: "How are you?"},
			}},
		})
		require.NoError(t, err)
		req := ft.lastGenerate(t)
		require.Len(t, req.Contents, 3)
		assert.Equal(t, geminikit.RoleModel, req.Contents[1].Role)
	})

	t.Run("unknown message type", func(t *testing.T) {
		t.Parallel()
		_, err := New(&fakeTransport{}).SendMessages(context.Background(), SendMessagesInput{
			Model: "m", MessageType: "smoke_signals", Messages: Messages{Message: "x"},
		})
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestSummarizeText_noRatings(t *testing.T) {
	t.Parallel()
	resp := reply("A short summary.", "STOP")
	resp.Candidates[0].SafetyRatings = nil
	ft := &fakeTransport{reply: resp}

	out, err := New(ft).SummarizeText(context.Background(), SummarizeInput{Model: "m", Text: "long text"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"answer":"N/A","safety_ratings":{}}`, encode(t, out))

	instruct, _ := ft.lastGenerate(t).Contents[0].FirstText()
	assert.Contains(t, instruct, "200 words or less")
}

func TestAnalyzeText(t *testing.T) {
	t.Parallel()
	ft := &fakeTransport{reply: reply(`{"response": null}`, "STOP")}
	out, err := New(ft).AnalyzeText(context.Background(), AnalyzeTextInput{Model: "m", Text: "It rains.", Question: "Is it sunny?"})
	require.NoError(t, err)
	assert.Nil(t, out.Answer)
	assert.Len(t, out.SafetyRatings, 4)
}

func TestAnalyzeImage(t *testing.T) {
	t.Parallel()

	t.Run("inline bytes", func(t *testing.T) {
		t.Parallel()
		ft := &fakeTransport{reply: reply("Two birds", "STOP")}
		out, err := New(ft).AnalyzeImage(context.Background(), AnalyzeImageInput{
			Model: "gemini-pro-vision", Question: "What is this?", Image: []byte{0xff, 0xd8},
		})
		require.NoError(t, err)
		assert.Equal(t, "Two birds", *out.Answer)

		req := ft.lastGenerate(t)
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 2)
		blob, ok := req.Contents[0].Parts[1].(geminikit.BlobPart)
		require.True(t, ok)
		assert.Equal(t, prompts.DefaultImageMIMEType, blob.MIMEType)
	})

	t.Run("downloaded from url", func(t *testing.T) {
		t.Parallel()
		ft := &fakeTransport{reply: reply("A cat", "STOP")}
		ff := &fakeFetcher{img: mediafetch.Image{Data: []byte("png"), MIMEType: "image/png"}}
		_, err := New(ft, WithImageFetcher(ff)).AnalyzeImage(context.Background(), AnalyzeImageInput{
			Model: "m", Question: "q", ImageURL: " https://example.com/cat.png ",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/cat.png", ff.url)
		blob := ft.lastGenerate(t).Contents[0].Parts[1].(geminikit.BlobPart)
		assert.Equal(t, "image/png", blob.MIMEType)
		raw, err := blob.Bytes()
		require.NoError(t, err)
		assert.Equal(t, []byte("png"), raw)
	})

	t.Run("download failure", func(t *testing.T) {
		t.Parallel()
		ff := &fakeFetcher{err: mediafetch.ErrUnsafeScheme}
		_, err := New(&fakeTransport{}, WithImageFetcher(ff)).AnalyzeImage(context.Background(), AnalyzeImageInput{
			Model: "m", Question: "q", ImageURL: "http://example.com/a.png",
		})
		require.ErrorIs(t, err, mediafetch.ErrUnsafeScheme)
		var inputErr *InputError
		require.ErrorAs(t, err, &inputErr)
		assert.Equal(t, "image_url", inputErr.Field)
	})
}

func TestCategorizeText(t *testing.T) {
	t.Parallel()
	ft := &fakeTransport{reply: reply(`{"response":"Billing"}`, "STOP")}
	out, err := New(ft).CategorizeText(context.Background(), CategorizeInput{
		Model:      "m",
		Text:       "I was charged twice",
		Categories: schema.Categories{{Key: "Billing"}, {Key: "Technical"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Billing", *out.Answer)
	payload, _ := ft.lastGenerate(t).Contents[2].FirstText()
	assert.Contains(t, payload, `Billing\nTechnical`)

	_, err = New(ft).CategorizeText(context.Background(), CategorizeInput{
		Model: "m", Text: "t", Categories: schema.Categories{{Key: " "}},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, schema.ErrInvalidSchema)
}

func TestDraftEmail(t *testing.T) {
	t.Parallel()
	ft := &fakeTransport{reply: reply("```json\n{\"subject\":\"Hello\",\"body\":\"Dear team,\\nBye\"}\n```", "STOP")}
	out, err := New(ft).DraftEmail(context.Background(), DraftEmailInput{Model: "m", EmailDescription: "greet the team"})
	require.NoError(t, err)
	assert.Equal(t, "Hello", *out.Subject)
	assert.Equal(t, "Dear team,\nBye", *out.Body)
}

func TestGenerateEmbedding(t *testing.T) {
	t.Parallel()
	ft := &fakeTransport{embed: &geminikit.EmbedResponse{Embedding: geminikit.Embedding{Values: []float64{0.5, -1}}}}

	out, err := New(ft).GenerateEmbedding(context.Background(), EmbeddingInput{Model: "embedding-001", Text: "hello"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"embedding":[{"value":0.5},{"value":-1}]}`, encode(t, out))
	assert.Equal(t, "models/embedding-001:embedContent", ft.lastPath(t))

	req, ok := ft.bodies[0].(geminikit.EmbedRequest)
	require.True(t, ok)
	assert.Equal(t, "models/embedding-001", req.Model)
	text, _ := req.Content.FirstText()
	assert.Equal(t, "hello", text)
}

func TestGenerateEmbedding_tooLong(t *testing.T) {
	t.Parallel()
	ft := &fakeTransport{}
	c := New(ft, WithMaxEmbeddingTokens(2))

	_, err := c.GenerateEmbedding(context.Background(), EmbeddingInput{Model: "m", Text: strings.Repeat("a", 9)})
	require.ErrorIs(t, err, ErrInputTooLong)
	assert.Empty(t, ft.paths)
}

func TestActions_finishReasonFailure(t *testing.T) {
	t.Parallel()
	tp := newRecordingProvider()
	ft := &fakeTransport{reply: reply(`{"response":"x"}`, "SAFETY")}

	_, err := New(ft, WithTracerProvider(tp)).AnalyzeText(context.Background(), AnalyzeTextInput{Model: "m", Text: "t", Question: "q"})
	require.ErrorIs(t, err, extract.ErrFinishReason)
	assert.Equal(t, "SAFETY - The agent was not able to answer because of a safety reason", err.Error())

	spans := tp.spans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].status)
	assert.Len(t, spans[0].errs, 1)
	reason, ok := spans[0].attr(AttrFinishReason)
	require.True(t, ok)
	assert.Equal(t, "SAFETY", reason)
}

func TestActions_transportError(t *testing.T) {
	t.Parallel()
	httpErr := &geminikit.HTTPError{StatusCode: 400, Message: "400 Bad Request", Body: `{"error":"bad"}`}
	_, err := New(&fakeTransport{err: httpErr}).SummarizeText(context.Background(), SummarizeInput{Model: "m", Text: "t"})
	require.ErrorIs(t, err, geminikit.ErrRequestFailed)
	assert.Equal(t, `400 Bad Request: {"error":"bad"}`, err.Error())
}

func TestActions_invalidSettings(t *testing.T) {
	t.Parallel()
	ft := &fakeTransport{}
	neg := -1.0
	_, err := New(ft).SummarizeText(context.Background(), SummarizeInput{
		Model: "m", Text: "t",
		Settings: geminikit.Settings{GenerationConfig: &geminikit.GenerationConfig{Temperature: &neg}},
	})
	require.ErrorIs(t, err, geminikit.ErrInvalidSettings)
	assert.Empty(t, ft.paths)
}

func TestActions_traceAndLog(t *testing.T) {
	t.Parallel()
	tp := newRecordingProvider()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	ft := &fakeTransport{reply: reply("ok", "STOP")}
	c := New(ft, WithTracerProvider(tp), WithLogger(logger))

	_, err := c.SummarizeText(context.Background(), SummarizeInput{Model: "gemini-pro", Text: "t"})
	require.NoError(t, err)

	spans := tp.spans()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "geminikit.summarize_text", span.name)
	assert.True(t, span.ended)
	assert.Equal(t, codes.Unset, span.status)
	action, _ := span.attr(AttrAction)
	assert.Equal(t, "summarize_text", action)
	model, _ := span.attr(AttrModel)
	assert.Equal(t, "gemini-pro", model)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.DebugLevel, last.Level)
	assert.Equal(t, "action completed", last.Message)
	assert.Equal(t, "STOP", last.Data["finish_reason"])
}

func TestInputError(t *testing.T) {
	t.Parallel()
	err := error(&InputError{Field: "text", Action: KindSummarizeText, Err: ErrMissingInput})
	assert.Equal(t, `action: input "text" of summarize_text: action: required input not provided`, err.Error())
	assert.True(t, errors.Is(err, ErrMissingInput))
}

func TestKind_Valid(t *testing.T) {
	t.Parallel()
	for _, k := range Kinds {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, Kind("nope").Valid())
}
