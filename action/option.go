package action

import (
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"github.com/skosovsky/geminikit/prompts"
)

// Option configures a Client (functional options pattern).
type Option func(*Client)

// WithLogger sets the logger. Invocations are logged at debug level.
// If l is nil, the default is left unchanged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTracerProvider sets the provider of the tracer that spans each invocation.
// Default is the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		if tp != nil {
			c.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithTokenCounter sets the counter used to enforce the embedding input limit.
func WithTokenCounter(tc prompts.TokenCounter) Option {
	return func(c *Client) {
		if tc != nil {
			c.counter = tc
		}
	}
}

// WithMaxEmbeddingTokens sets the embedding input limit. n <= 0 keeps the default.
func WithMaxEmbeddingTokens(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxEmbeddingTokens = n
		}
	}
}

// WithImageFetcher sets how AnalyzeImage downloads images given by URL.
func WithImageFetcher(f ImageFetcher) Option {
	return func(c *Client) {
		if f != nil {
			c.images = f
		}
	}
}
