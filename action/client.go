package action

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/skosovsky/geminikit"
	"github.com/skosovsky/geminikit/mediafetch"
	"github.com/skosovsky/geminikit/prompts"
)

// DefaultMaxEmbeddingTokens is the input limit of embedding models.
const DefaultMaxEmbeddingTokens = 8192

const tracerName = "github.com/skosovsky/geminikit/action"

// Span attribute keys.
const (
	AttrAction       = attribute.Key("geminikit.action")
	AttrModel        = attribute.Key("geminikit.model")
	AttrFinishReason = attribute.Key("geminikit.finish_reason")
)

// ImageFetcher downloads images referenced by URL.
type ImageFetcher interface {
	FetchImage(ctx context.Context, rawURL string) (mediafetch.Image, error)
}

// Client runs actions through a Transport.
type Client struct {
	transport          geminikit.Transport
	logger             logrus.FieldLogger
	tracer             trace.Tracer
	counter            prompts.TokenCounter
	images             ImageFetcher
	maxEmbeddingTokens int
}

// New creates a Client. Panics if t is nil.
func New(t geminikit.Transport, opts ...Option) *Client {
	if t == nil {
		panic("action: Transport must not be nil")
	}
	c := &Client{
		transport:          t,
		logger:             logrus.StandardLogger(),
		tracer:             otel.Tracer(tracerName),
		counter:            &prompts.CharFallbackCounter{},
		images:             mediafetch.New(),
		maxEmbeddingTokens: DefaultMaxEmbeddingTokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// op is one traced and logged action invocation.
type op struct {
	span    trace.Span
	entry   logrus.FieldLogger
	started time.Time
}

func (c *Client) begin(ctx context.Context, kind Kind, model string) (context.Context, *op) {
	ctx, span := c.tracer.Start(ctx, "geminikit."+string(kind),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(AttrAction.String(string(kind)), AttrModel.String(model)),
	)
	return ctx, &op{
		span:    span,
		entry:   c.logger.WithFields(logrus.Fields{"action": kind, "model": model}),
		started: time.Now(),
	}
}

func (o *op) end(err error) {
	entry := o.entry.WithField("duration", time.Since(o.started))
	if err != nil {
		o.span.RecordError(err)
		o.span.SetStatus(codes.Error, err.Error())
		entry.WithError(err).Debug("action failed")
	} else {
		entry.Debug("action completed")
	}
	o.span.End()
}

// generate merges settings into conv and posts it to the model's generateContent endpoint.
func (c *Client) generate(ctx context.Context, o *op, model string, conv geminikit.Conversation, s geminikit.Settings) (*geminikit.GenerateResponse, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	req := geminikit.ApplySettings(&geminikit.GenerateRequest{Contents: conv}, s)
	var resp geminikit.GenerateResponse
	if err := c.transport.Post(ctx, geminikit.GenerateContentPath(model), req, &resp); err != nil {
		return nil, err
	}
	if cand, ok := resp.FirstCandidate(); ok {
		o.span.SetAttributes(AttrFinishReason.String(cand.FinishReason))
		o.entry = o.entry.WithField("finish_reason", cand.FinishReason)
	}
	return &resp, nil
}
