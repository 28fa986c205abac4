// Package generator produces tweet text for a topic via the OpenAI API.
package generator

import (
	"context"
	"fmt"
	"strings"

	"tweetpilot/internal/config"
	"tweetpilot/internal/pkg/httpclient"
)

const completionsURL = "https://api.openai.com/v1/chat/completions"

const promptTemplate = `Search your knowledge for the latest news and create a tweet about %s. ` +
	`Include emojis and hashtags, and ensure it is factual and informative. ` +
	`The tweet must be at most 280 characters long.`

// OpenAIGenerator generates tweet text with an OpenAI chat model.
type OpenAIGenerator struct {
	http  *httpclient.Client
	url   string
	model string
}

// New creates an OpenAI-backed generator.
func New(cfg *config.OpenAIConfig) *OpenAIGenerator {
	return &OpenAIGenerator{
		http:  httpclient.New().WithHeader("Authorization", "Bearer "+cfg.APIKey),
		url:   completionsURL,
		model: cfg.Model,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate returns tweet text for the topic.
func (g *OpenAIGenerator) Generate(ctx context.Context, topic string) (string, error) {
	var result chatResponse

	resp, err := g.http.Request().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(chatRequest{
			Model: g.model,
			Messages: []chatMessage{
				{Role: "user", Content: fmt.Sprintf(promptTemplate, topic)},
			},
			Temperature: 0.5,
			MaxTokens:   280,
		}).
		SetResult(&result).
		Post(g.url)
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("openai completion failed: %s", resp.Status())
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai completion returned no choices")
	}

	text := strings.TrimSpace(result.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("openai completion returned empty text")
	}

	// The model sometimes wraps the tweet in quotes.
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		text = text[1 : len(text)-1]
	}

	return text, nil
}
