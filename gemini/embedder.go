// Package gemini implements embedding and token counting on Google Gemini.
package gemini

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fwojciec/docindex"
	"google.golang.org/genai"
)

// Defaults for the Gemini embedder.
const (
	DefaultEmbeddingModel = "gemini-embedding-001"

	// DefaultDimensions matches the vector size of the OpenAI corpus so the
	// two providers produce interchangeable corpora.
	DefaultDimensions = 1536

	// TokenizerModel is the model used for local token counting.
	TokenizerModel = "gemini-2.5-flash"
)

const retryInfoType = "type.googleapis.com/google.rpc.RetryInfo"

var _ docindex.Embedder = (*Embedder)(nil)

// Embedder implements docindex.Embedder using the Gemini embedding API.
type Embedder struct {
	client     *genai.Client
	model      string
	dimensions int32
}

// NewEmbedder creates an Embedder. An empty model selects
// DefaultEmbeddingModel and dimensions <= 0 selects DefaultDimensions.
func NewEmbedder(client *genai.Client, model string, dimensions int) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &Embedder{client: client, model: model, dimensions: int32(dimensions)}
}

// NewClient connects to the Gemini API with apiKey. A non-empty baseURL
// overrides the API endpoint.
func NewClient(ctx context.Context, apiKey, baseURL string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, docindex.Errorf(docindex.EINVALID, "API key required")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
}

// Embed returns the embedding of text as a retrieval document.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, docindex.Errorf(docindex.EINVALID, "text required")
	}

	dims := e.dimensions
	result, err := e.client.Models.EmbedContent(ctx, e.model,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		&genai.EmbedContentConfig{
			TaskType:             "RETRIEVAL_DOCUMENT",
			OutputDimensionality: &dims,
		},
	)
	if err != nil {
		return nil, classify(err)
	}
	if result == nil || len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, docindex.Errorf(docindex.EINTERNAL, "gemini returned no embedding")
	}
	return result.Embeddings[0].Values, nil
}

// classify maps Gemini API errors to domain error codes.
func classify(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		e := docindex.WrapError(docindex.ERATELIMIT, err, "gemini rate limited")
		e.RetryAfter = retryDelay(apiErr.Details)
		return e
	case apiErr.Code >= 500:
		return docindex.WrapError(docindex.EUNAVAILABLE, err, "gemini unavailable")
	case apiErr.Code == http.StatusNotFound:
		return docindex.WrapError(docindex.ENOTFOUND, err, "gemini model not found")
	default:
		return docindex.WrapError(docindex.EINVALID, err, "gemini rejected request")
	}
}

// retryDelay reads google.rpc.RetryInfo from error details.
func retryDelay(details []map[string]any) time.Duration {
	for _, d := range details {
		if d["@type"] != retryInfoType {
			continue
		}
		s, ok := d["retryDelay"].(string)
		if !ok {
			continue
		}
		if delay, err := time.ParseDuration(s); err == nil && delay > 0 {
			return delay
		}
	}
	return 0
}
