package httptransport

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// Option configures a Transport (functional options pattern).
type Option func(*Transport)

// WithHTTPClient sets the HTTP client. Default has a 60s timeout. If c is nil, the default client is left unchanged.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) {
		if c != nil {
			t.client = c
		}
	}
}

// WithCredentials sets the credential provider. Without one requests are sent unauthenticated.
func WithCredentials(c Credentials) Option {
	return func(t *Transport) {
		t.creds = c
	}
}

// WithMaxBodySize caps response bodies. n <= 0 keeps DefaultMaxBodySize.
func WithMaxBodySize(n int64) Option {
	return func(t *Transport) {
		if n > 0 {
			t.maxBody = n
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(t *Transport) {
		if ua != "" {
			t.userAgent = ua
		}
	}
}

// WithLogger sets the logger. Calls are logged at debug level with the key redacted.
func WithLogger(l logrus.FieldLogger) Option {
	return func(t *Transport) {
		if l != nil {
			t.logger = l
		}
	}
}
