package httptransport

import (
	"net/http"
	"net/url"
)

// Credentials authorizes an outgoing request.
type Credentials interface {
	Apply(req *http.Request)
}

// APIKey sends the key as the "key" query parameter.
type APIKey string

// Apply implements Credentials.
func (k APIKey) Apply(req *http.Request) {
	if k == "" {
		return
	}
	q := req.URL.Query()
	q.Set("key", string(k))
	req.URL.RawQuery = q.Encode()
}

// BearerToken sends the token in the Authorization header.
type BearerToken string

// Apply implements Credentials.
func (t BearerToken) Apply(req *http.Request) {
	if t != "" {
		req.Header.Set("Authorization", "Bearer "+string(t))
	}
}

var (
	_ Credentials = APIKey("")
	_ Credentials = BearerToken("")
)

// redact hides the key query parameter in URLs that end up in errors or logs.
func redact(u *url.URL) string {
	c := *u
	q := c.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		c.RawQuery = q.Encode()
	}
	return c.String()
}
