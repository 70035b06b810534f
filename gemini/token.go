package gemini

import (
	"context"

	"github.com/fwojciec/docindex"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ docindex.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens locally with the Gemini sentencepiece
// tokenizer, so build statistics cost no API calls.
type TokenCounter struct {
	model string
	tok   *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the tokenizer for model, or for TokenizerModel if
// model is empty. The tokenizer model file is downloaded and cached on first
// use. Returns EINVALID for a model the local tokenizer does not support.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = TokenizerModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, docindex.WrapError(docindex.EINVALID, err, "no local tokenizer for %s", model)
	}
	return &TokenCounter{model: model, tok: tok}, nil
}

// Model returns the model whose tokenizer is used.
func (tc *TokenCounter) Model() string {
	return tc.model
}

// CountTokens implements docindex.TokenCounter.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, docindex.WrapError(docindex.EINTERNAL, err, "count tokens")
	}
	return int(result.TotalTokens), nil
}
