// Package httptransport implements geminikit.Transport over plain HTTPS against
// the generative-language REST API.
//
// The credential is injected at construction through a Credentials value;
// APIKey appends it as the "key" query parameter and BearerToken sends an
// Authorization header. Request and response bodies are JSON. Any non-2xx
// answer is returned as *geminikit.HTTPError carrying the status line as
// Message and the raw body.
package httptransport
