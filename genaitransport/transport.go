package genaitransport

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"github.com/skosovsky/geminikit"
	"github.com/skosovsky/geminikit/internal/jsonx"
)

// ErrUnsupported is returned for paths and body types the SDK bridge does not route.
var ErrUnsupported = errors.New("genaitransport: unsupported call")

// modelService is the subset of *genai.Models the transport calls.
type modelService interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
	All(ctx context.Context) iter.Seq2[*genai.Model, error]
}

var _ geminikit.Transport = (*Transport)(nil)

// Transport routes geminikit calls through the SDK.
type Transport struct {
	models modelService
}

// New builds an SDK client for the Gemini API backend.
func New(ctx context.Context, opts ...Option) (*Transport, error) {
	cfg := config{apiVersion: "v1"}
	for _, opt := range opts {
		opt(&cfg)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.baseURL,
			APIVersion: cfg.apiVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("genaitransport: create client: %w", err)
	}
	return &Transport{models: client.Models}, nil
}

// Post handles generateContent and embedContent paths.
func (t *Transport) Post(ctx context.Context, path string, body, out any) error {
	switch {
	case strings.HasSuffix(path, ":generateContent"):
		req, ok := asGenerateRequest(body)
		dst, okOut := out.(*geminikit.GenerateResponse)
		if !ok || !okOut {
			return fmt.Errorf("%w: generateContent with %T -> %T", ErrUnsupported, body, out)
		}
		return t.generate(ctx, strings.TrimSuffix(path, ":generateContent"), req, dst)
	case strings.HasSuffix(path, ":embedContent"):
		req, ok := asEmbedRequest(body)
		dst, okOut := out.(*geminikit.EmbedResponse)
		if !ok || !okOut {
			return fmt.Errorf("%w: embedContent with %T -> %T", ErrUnsupported, body, out)
		}
		return t.embed(ctx, strings.TrimSuffix(path, ":embedContent"), req, dst)
	default:
		return fmt.Errorf("%w: POST %s", ErrUnsupported, path)
	}
}

// Get handles the model listing. The SDK pages internally, so the first page
// holds every model and later page tokens yield an empty page.
func (t *Transport) Get(ctx context.Context, path string, out any) error {
	p, query, _ := strings.Cut(path, "?")
	dst, ok := out.(*geminikit.ModelList)
	if p != geminikit.ModelsPath || !ok {
		return fmt.Errorf("%w: GET %s", ErrUnsupported, path)
	}
	*dst = geminikit.ModelList{}
	if strings.Contains(query, "pageToken=") {
		return nil
	}
	for m, err := range t.models.All(ctx) {
		if err != nil {
			return convertError(err)
		}
		if m == nil {
			continue
		}
		dst.Models = append(dst.Models, geminikit.Model{
			Name:        m.Name,
			DisplayName: m.DisplayName,
			Description: m.Description,
		})
	}
	return nil
}

func (t *Transport) generate(ctx context.Context, model string, req *geminikit.GenerateRequest, out *geminikit.GenerateResponse) error {
	contents, err := toContents(req.Contents)
	if err != nil {
		return err
	}
	resp, err := t.models.GenerateContent(ctx, model, contents, toGenerateConfig(req))
	if err != nil {
		return convertError(err)
	}
	*out = fromGenerateResponse(resp)
	return nil
}

func (t *Transport) embed(ctx context.Context, model string, req geminikit.EmbedRequest, out *geminikit.EmbedResponse) error {
	content, err := toContent(req.Content)
	if err != nil {
		return err
	}
	resp, err := t.models.EmbedContent(ctx, model, []*genai.Content{content}, nil)
	if err != nil {
		return convertError(err)
	}
	*out = geminikit.EmbedResponse{}
	if resp != nil && len(resp.Embeddings) > 0 && resp.Embeddings[0] != nil {
		values := make([]float64, len(resp.Embeddings[0].Values))
		for i, v := range resp.Embeddings[0].Values {
			values[i] = float64(v)
		}
		out.Embedding.Values = values
	}
	return nil
}

func asGenerateRequest(body any) (*geminikit.GenerateRequest, bool) {
	switch b := body.(type) {
	case *geminikit.GenerateRequest:
		return b, b != nil
	case geminikit.GenerateRequest:
		return &b, true
	default:
		return nil, false
	}
}

func asEmbedRequest(body any) (geminikit.EmbedRequest, bool) {
	switch b := body.(type) {
	case geminikit.EmbedRequest:
		return b, true
	case *geminikit.EmbedRequest:
		if b == nil {
			return geminikit.EmbedRequest{}, false
		}
		return *b, true
	default:
		return geminikit.EmbedRequest{}, false
	}
}

// convertError maps SDK API errors onto *geminikit.HTTPError.
//
// The SDK keeps the raw body only when it is not a JSON error envelope; Status
// is then the HTTP status line. Otherwise the envelope is encoded back.
func convertError(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %w", geminikit.ErrRequestFailed, err)
	}
	code := strconv.Itoa(apiErr.Code)
	if strings.HasPrefix(apiErr.Status, code) {
		return &geminikit.HTTPError{StatusCode: apiErr.Code, Message: apiErr.Status, Body: apiErr.Message}
	}
	msg := strings.TrimSpace(code + " " + apiErr.Status)
	body, encErr := jsonx.Marshal(map[string]genai.APIError{"error": apiErr})
	if encErr != nil {
		return &geminikit.HTTPError{StatusCode: apiErr.Code, Message: msg, Body: apiErr.Message}
	}
	return &geminikit.HTTPError{StatusCode: apiErr.Code, Message: msg, Body: string(body)}
}
