package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tweetpilot/internal/pkg/httpclient"
)

// ErrTweetNotFound means the tweet no longer exists on Twitter. The embed
// API answers with a non-JSON error page for deleted tweets, which is the
// only deletion signal it gives.
var ErrTweetNotFound = errors.New("tweet not found")

// EmbedClient fetches oEmbed HTML snippets for published tweets.
type EmbedClient struct {
	http     *httpclient.Client
	embedURL string
}

// NewEmbedClient creates an oEmbed API client.
func NewEmbedClient(embedURL string) *EmbedClient {
	return &EmbedClient{
		http:     httpclient.New(),
		embedURL: embedURL,
	}
}

// Render returns the embeddable HTML for one tweet. A deleted tweet is
// reported as ErrTweetNotFound; anything else is a hard failure.
func (c *EmbedClient) Render(ctx context.Context, accountID, tweetID string) (string, error) {
	tweetURL := fmt.Sprintf("https://twitter.com/%s/status/%s", accountID, tweetID)

	resp, err := c.http.Request().
		SetContext(ctx).
		SetQueryParam("url", tweetURL).
		Get(c.embedURL)
	if err != nil {
		return "", fmt.Errorf("fetching tweet embed: %w", err)
	}

	var body struct {
		HTML string `json:"html"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("tweet %s: %w", tweetID, ErrTweetNotFound)
	}
	if body.HTML == "" {
		return "", fmt.Errorf("embed response for tweet %s missing html", tweetID)
	}

	return body.HTML, nil
}
