// Package mediafetch downloads images referenced by URL so they can be sent to
// the model as inline data.
package mediafetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultMaxBodySize is the default download limit (20 MiB, the inline request limit).
const DefaultMaxBodySize = 20 << 20

var (
	// ErrUnsafeScheme is returned when the URL scheme is not https.
	ErrUnsafeScheme = errors.New("mediafetch: only https scheme is allowed")
	// ErrBodyTooLarge is returned when the response exceeds the size limit.
	ErrBodyTooLarge = errors.New("mediafetch: response body exceeds size limit")
	// ErrUnsupportedType is returned when Content-Type is not an image type.
	ErrUnsupportedType = errors.New("mediafetch: unsupported content type")
	// ErrFetchFailed wraps transport failures and non-200 answers.
	ErrFetchFailed = errors.New("mediafetch: fetch failed")
)

// Image is a downloaded image. MIMEType is empty when the server sent none.
type Image struct {
	Data     []byte
	MIMEType string
}

// Fetcher downloads images over https with a size cap.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets the HTTP client. If c is nil, the default is left unchanged.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithMaxBytes sets the download limit. n <= 0 keeps DefaultMaxBodySize.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBytes = n
		}
	}
}

// New creates a Fetcher with a 30s client timeout.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{Timeout: 30 * time.Second},
		maxBytes: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchImage downloads rawURL. Only https is allowed, and a Content-Type, when
// present, must be image/*.
func (f *Fetcher) FetchImage(ctx context.Context, rawURL string) (Image, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Image{}, fmt.Errorf("mediafetch: parse URL: %w", err)
	}
	if u.Scheme != "https" {
		return Image{}, ErrUnsafeScheme
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	resp, err := f.client.Do(req) // #nosec G107 -- caller-supplied image URL, https only
	if err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return Image{}, fmt.Errorf("%w: status %s", ErrFetchFailed, resp.Status)
	}
	contentType := resp.Header.Get("Content-Type")
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return Image{}, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return Image{}, fmt.Errorf("%w: read body: %w", ErrFetchFailed, err)
	}
	if int64(len(data)) > f.maxBytes {
		return Image{}, ErrBodyTooLarge
	}
	return Image{Data: data, MIMEType: contentType}, nil
}
