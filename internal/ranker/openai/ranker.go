package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mr1hm/go-shelter-advisor/internal/recommend"
)

const (
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.2
	defaultMaxTokens   = 1000
)

type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req ChatCompletionRequest) (ChatCompletionResponse, error)
}

type Ranker struct {
	client      ChatClient
	model       string
	temperature float32
	logger      *slog.Logger
}

var _ recommend.Ranker = (*Ranker)(nil)

func NewRanker(client ChatClient, model string, temperature float32, logger *slog.Logger) *Ranker {
	if model == "" {
		model = DefaultModel
	}
	return &Ranker{
		client:      client,
		model:       model,
		temperature: temperature,
		logger:      logger.With("component", "ranker.openai"),
	}
}

// Rank sends one chat completion and returns the assistant's text verbatim.
func (r *Ranker) Rank(ctx context.Context, req recommend.RankRequest) (string, error) {
	prompt, err := recommend.BuildPrompt(req)
	if err != nil {
		return "", err
	}

	completion, err := r.client.CreateChatCompletion(ctx, ChatCompletionRequest{
		Model: r.model,
		Messages: []Message{
			{Role: "system", Content: recommend.SystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: r.temperature,
		MaxTokens:   defaultMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("error ranking with %s: %w", r.model, err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	content := completion.Choices[0].Message.Content
	r.logger.Debug("ranker reply received", "model", r.model, "candidates", len(req.Candidates), "length", len(content))
	return content, nil
}
