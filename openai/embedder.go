// Package openai implements docindex.Embedder on the OpenAI embeddings API
// or any endpoint compatible with it.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/docindex"
	dihttp "github.com/fwojciec/docindex/http"
)

var _ docindex.Embedder = (*Embedder)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "text-embedding-ada-002"
	DefaultTimeout = 60 * time.Second
)

// maxResponseSize bounds the response body; a 3072-dim vector is well under it.
const maxResponseSize = 8 << 20

// Config holds configuration for the OpenAI embedder.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL. Can point at any compatible API.
	BaseURL string

	// Model is the embedding model to use.
	Model string

	// Timeout is the request timeout.
	Timeout time.Duration

	// Dimensions overrides the output size. Only text-embedding-3-* models
	// accept it.
	Dimensions int
}

// Embedder generates embeddings using the OpenAI API.
type Embedder struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	model      string
	dimensions int
}

type embeddingRequest struct {
	Model      string `json:"model"`
	Input      string `json:"input"`
	Dimensions int    `json:"dimensions,omitempty"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// NewEmbedder creates an Embedder. Returns EINVALID without an API key.
func NewEmbedder(cfg Config) (*Embedder, error) {
	if cfg.APIKey == "" {
		return nil, docindex.Errorf(docindex.EINVALID, "API key required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Embedder{
		client:     &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}, nil
}

// Embed returns the embedding vector for text.
//
// A 429 response is reported as ERATELIMIT carrying the Retry-After header,
// and 5xx responses as EUNAVAILABLE.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, docindex.Errorf(docindex.EINVALID, "text required")
	}

	reqBody := embeddingRequest{Model: e.model, Input: text}
	if strings.HasPrefix(e.model, "text-embedding-3-") {
		reqBody.Dimensions = e.dimensions
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embeddings", bytes.NewReader(payload))
	if err != nil {
		return nil, docindex.WrapError(docindex.EINVALID, err, "invalid base URL %q", e.baseURL)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, docindex.WrapError(docindex.EUNAVAILABLE, err, "openai request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, docindex.WrapError(docindex.EUNAVAILABLE, err, "read openai response")
	}

	var parsed embeddingResponse
	decodeErr := json.Unmarshal(body, &parsed)

	if resp.StatusCode != http.StatusOK {
		err := dihttp.StatusError(resp, "openai embeddings")
		var de *docindex.Error
		if decodeErr == nil && parsed.Error != nil && errors.As(err, &de) {
			de.Message += ": " + parsed.Error.Message
		}
		return nil, err
	}
	if decodeErr != nil {
		return nil, docindex.WrapError(docindex.EINTERNAL, decodeErr, "decode openai response")
	}
	if parsed.Error != nil {
		return nil, docindex.Errorf(docindex.EINTERNAL, "openai error: %s", parsed.Error.Message)
	}
	for _, d := range parsed.Data {
		if d.Index == 0 && len(d.Embedding) > 0 {
			return d.Embedding, nil
		}
	}
	return nil, docindex.Errorf(docindex.EINTERNAL, "openai returned no embedding")
}
