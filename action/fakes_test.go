package action

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/goleak"

	"github.com/skosovsky/geminikit"
	"github.com/skosovsky/geminikit/internal/jsonx"
	"github.com/skosovsky/geminikit/mediafetch"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeTransport answers every Post with reply (or embed for embedContent paths)
// and records the requests it saw.
type fakeTransport struct {
	mu     sync.Mutex
	reply  *geminikit.GenerateResponse
	embed  *geminikit.EmbedResponse
	err    error
	paths  []string
	bodies []any
}

func (f *fakeTransport) Post(_ context.Context, path string, body, out any) error {
	f.mu.Lock()
	f.paths = append(f.paths, path)
	f.bodies = append(f.bodies, body)
	f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	switch dst := out.(type) {
	case *geminikit.GenerateResponse:
		if f.reply != nil {
			*dst = *f.reply
		}
	case *geminikit.EmbedResponse:
		if f.embed != nil {
			*dst = *f.embed
		}
	default:
		return errors.New("unexpected response type")
	}
	return nil
}

func (f *fakeTransport) Get(context.Context, string, any) error {
	return errors.New("unexpected get")
}

func (f *fakeTransport) lastGenerate(t *testing.T) *geminikit.GenerateRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.bodies)
	req, ok := f.bodies[len(f.bodies)-1].(*geminikit.GenerateRequest)
	require.True(t, ok, "body is %T", f.bodies[len(f.bodies)-1])
	return req
}

func (f *fakeTransport) lastPath(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.paths)
	return f.paths[len(f.paths)-1]
}

func fullRatings() []geminikit.SafetyRating {
	return []geminikit.SafetyRating{
		{Category: geminikit.HarmCategorySexuallyExplicit, Probability: "NEGLIGIBLE"},
		{Category: geminikit.HarmCategoryHateSpeech, Probability: "NEGLIGIBLE"},
		{Category: geminikit.HarmCategoryHarassment, Probability: "NEGLIGIBLE"},
		{Category: geminikit.HarmCategoryDangerousContent, Probability: "LOW"},
	}
}

func reply(text, finish string) *geminikit.GenerateResponse {
	return &geminikit.GenerateResponse{Candidates: []geminikit.Candidate{{
		Content:       geminikit.NewTextTurn(geminikit.RoleModel, text),
		FinishReason:  finish,
		SafetyRatings: fullRatings(),
	}}}
}

func encode(t *testing.T, v any) string {
	t.Helper()
	data, err := jsonx.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

type fakeFetcher struct {
	img mediafetch.Image
	err error
	url string
}

func (f *fakeFetcher) FetchImage(_ context.Context, rawURL string) (mediafetch.Image, error) {
	f.url = rawURL
	return f.img, f.err
}

// recordingProvider hands out a tracer that keeps every started span.
type recordingProvider struct {
	noop.TracerProvider
	tracer *recordingTracer
}

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{tracer: &recordingTracer{}}
}

func (p *recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer { return p.tracer }

func (p *recordingProvider) spans() []*recordingSpan {
	p.tracer.mu.Lock()
	defer p.tracer.mu.Unlock()
	return append([]*recordingSpan(nil), p.tracer.spans...)
}

type recordingTracer struct {
	noop.Tracer
	mu    sync.Mutex
	spans []*recordingSpan
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	span := &recordingSpan{name: name, attrs: cfg.Attributes()}
	r.mu.Lock()
	r.spans = append(r.spans, span)
	r.mu.Unlock()
	return trace.ContextWithSpan(ctx, span), span
}

type recordingSpan struct {
	noop.Span
	mu     sync.Mutex
	name   string
	attrs  []attribute.KeyValue
	status codes.Code
	errs   []error
	ended  bool
}

func (s *recordingSpan) SetAttributes(kv ...attribute.KeyValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = append(s.attrs, kv...)
}

func (s *recordingSpan) RecordError(err error, _ ...trace.EventOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}

func (s *recordingSpan) SetStatus(code codes.Code, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = code
}

func (s *recordingSpan) End(...trace.SpanEndOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = true
}

func (s *recordingSpan) attr(key attribute.Key) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, kv := range s.attrs {
		if kv.Key == key {
			return kv.Value.AsString(), true
		}
	}
	return "", false
}
