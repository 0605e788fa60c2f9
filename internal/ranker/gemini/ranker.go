// Package gemini ranks shelters with Google's Gemini models through the
// genai SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/mr1hm/go-shelter-advisor/internal/recommend"
)

const (
	DefaultModel       = "gemini-2.0-flash"
	DefaultTemperature = 0.2
)

// Generator is the slice of the genai Models service the ranker needs.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Ranker struct {
	gen         Generator
	model       string
	temperature float32
	logger      *slog.Logger
}

var _ recommend.Ranker = (*Ranker)(nil)

// NewClient builds a genai client for the Gemini API backend.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating gemini client: %w", err)
	}
	return client, nil
}

func NewRanker(gen Generator, model string, temperature float32, logger *slog.Logger) *Ranker {
	if model == "" {
		model = DefaultModel
	}
	return &Ranker{
		gen:         gen,
		model:       model,
		temperature: temperature,
		logger:      logger.With("component", "ranker.gemini"),
	}
}

func (r *Ranker) Rank(ctx context.Context, req recommend.RankRequest) (string, error) {
	prompt, err := recommend.BuildPrompt(req)
	if err != nil {
		return "", err
	}

	resp, err := r.gen.GenerateContent(ctx, r.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](r.temperature),
		ResponseMIMEType:  "application/json",
		SystemInstruction: genai.NewContentFromText(recommend.SystemPrompt, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("error ranking with %s: %w", r.model, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("empty gemini response")
	}

	var txt string
	for _, candidate := range resp.Candidates {
		if candidate.Content != nil && len(candidate.Content.Parts) > 0 {
			txt = candidate.Content.Parts[0].Text
			break
		}
	}
	r.logger.Debug("ranker reply received", "model", r.model, "candidates", len(req.Candidates), "length", len(txt))
	return txt, nil
}
