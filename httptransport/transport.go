package httptransport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/skosovsky/geminikit"
	"github.com/skosovsky/geminikit/internal/jsonx"
)

// DefaultBaseURL is the v1 root of the generative-language API.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1/"

// DefaultMaxBodySize limits response bodies (32 MiB).
const DefaultMaxBodySize = 32 << 20

const defaultUserAgent = "geminikit/1.0"

var (
	// ErrInvalidBaseURL is returned by New for an empty or relative base URL.
	ErrInvalidBaseURL = errors.New("httptransport: invalid base URL")
	// ErrBodyTooLarge is returned when a response exceeds the size limit.
	ErrBodyTooLarge = errors.New("httptransport: response body exceeds size limit")
)

var _ geminikit.Transport = (*Transport)(nil)

// Transport sends JSON requests relative to a base URL.
type Transport struct {
	baseURL   string
	client    *http.Client
	creds     Credentials
	maxBody   int64
	userAgent string
	logger    logrus.FieldLogger
}

// New creates a Transport. An empty baseURL means DefaultBaseURL.
func New(baseURL string, opts ...Option) (*Transport, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	t := &Transport{
		baseURL:   strings.TrimSuffix(baseURL, "/") + "/",
		client:    &http.Client{Timeout: 60 * time.Second},
		maxBody:   DefaultMaxBodySize,
		userAgent: defaultUserAgent,
		logger:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Post encodes body as JSON, posts it to path and decodes the answer into out.
func (t *Transport) Post(ctx context.Context, path string, body, out any) error {
	data, err := jsonx.Marshal(body)
	if err != nil {
		return fmt.Errorf("httptransport: encode request: %w", err)
	}
	return t.do(ctx, http.MethodPost, path, data, out)
}

// Get fetches path and decodes the answer into out.
func (t *Transport) Get(ctx context.Context, path string, out any) error {
	return t.do(ctx, http.MethodGet, path, nil, out)
}

func (t *Transport) do(ctx context.Context, method, path string, body []byte, out any) error {
	u, err := t.resolve(path)
	if err != nil {
		return err
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("%w: %w", geminikit.ErrRequestFailed, err)
	}
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.creds != nil {
		t.creds.Apply(req)
	}

	started := time.Now()
	resp, err := t.client.Do(req) // #nosec G704 -- base URL is from config and path is built by this module
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", geminikit.ErrRequestFailed, method, redact(req.URL), err)
	}
	defer func() { _ = resp.Body.Close() }()
	t.logger.WithFields(logrus.Fields{
		"method":   method,
		"url":      redact(req.URL),
		"status":   resp.StatusCode,
		"duration": time.Since(started),
	}).Debug("gemini api call")

	data, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBody))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", geminikit.ErrRequestFailed, err)
	}
	probe := make([]byte, 1)
	if n, _ := resp.Body.Read(probe); n > 0 {
		return fmt.Errorf("%w: %d bytes", ErrBodyTooLarge, t.maxBody)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &geminikit.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
			Body:       string(data),
			Header:     resp.Header.Clone(),
		}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := jsonx.Unmarshal(data, out); err != nil {
		return fmt.Errorf("httptransport: decode response: %w", err)
	}
	return nil
}

// resolve joins path to the base URL, keeping any query string in path.
func (t *Transport) resolve(path string) (*url.URL, error) {
	p, rawQuery, _ := strings.Cut(strings.TrimPrefix(path, "/"), "?")
	u, err := url.Parse(t.baseURL + p)
	if err != nil {
		return nil, fmt.Errorf("%w: bad path %q: %w", geminikit.ErrRequestFailed, path, err)
	}
	u.RawQuery = rawQuery
	return u, nil
}
