package genaitransport

import "net/http"

// Option configures the SDK client built by New.
type Option func(*config)

type config struct {
	apiKey     string
	baseURL    string
	apiVersion string
	httpClient *http.Client
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *config) { c.apiKey = key }
}

// WithBaseURL overrides the API host, e.g. for a proxy.
func WithBaseURL(u string) Option {
	return func(c *config) { c.baseURL = u }
}

// WithAPIVersion overrides the API version. Default is "v1".
func WithAPIVersion(v string) Option {
	return func(c *config) {
		if v != "" {
			c.apiVersion = v
		}
	}
}

// WithHTTPClient sets the HTTP client used by the SDK. If hc is nil, the SDK default is used.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) { c.httpClient = hc }
}
