package geminikit

import "context"

// Transport performs authenticated JSON calls against the generative-language API.
// Paths are relative to the API version root (e.g. "models/gemini-pro:generateContent").
// Implementations decode the response into out and report non-2xx answers as *HTTPError.
type Transport interface {
	Post(ctx context.Context, path string, body, out any) error
	Get(ctx context.Context, path string, out any) error
}
