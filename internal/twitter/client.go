// Package twitter wraps the pieces of the Twitter v2 API the service
// needs: OAuth2 PKCE login, token refresh, posting tweets and reading
// oEmbed snippets.
package twitter

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"

	"tweetpilot/internal/config"
	"tweetpilot/internal/pkg/httpclient"
)

const (
	apiBaseURL   = "https://api.twitter.com"
	authorizeURL = "https://twitter.com/i/oauth2/authorize"

	oauthScopes = "tweet.read tweet.write users.read offline.access"
)

// TokenPair is an OAuth2 access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Client talks to the Twitter v2 API.
type Client struct {
	http         *httpclient.Client
	clientID     string
	clientSecret string
	callbackURL  string
}

// NewClient creates a Twitter API client.
func NewClient(cfg *config.TwitterConfig) *Client {
	return &Client{
		http:         httpclient.New(),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		callbackURL:  cfg.CallbackURL,
	}
}

// NewCodeVerifier returns a fresh PKCE code verifier.
func NewCodeVerifier() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating code verifier: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// AuthLink builds the OAuth2 authorization URL for the given state and
// code verifier (S256 challenge).
func (c *Client) AuthLink(state, codeVerifier string) string {
	sum := sha256.Sum256([]byte(codeVerifier))
	challenge := base64.RawURLEncoding.EncodeToString(sum[:])

	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", c.callbackURL)
	params.Set("scope", oauthScopes)
	params.Set("state", state)
	params.Set("code_challenge", challenge)
	params.Set("code_challenge_method", "S256")

	return authorizeURL + "?" + params.Encode()
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login exchanges an authorization code for a token pair.
func (c *Client) Login(ctx context.Context, code, codeVerifier string) (*TokenPair, error) {
	return c.requestToken(ctx, map[string]string{
		"grant_type":    "authorization_code",
		"code":          code,
		"code_verifier": codeVerifier,
		"redirect_uri":  c.callbackURL,
	})
}

// RefreshToken rotates a token pair using the stored refresh token.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	return c.requestToken(ctx, map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": refreshToken,
	})
}

func (c *Client) requestToken(ctx context.Context, form map[string]string) (*TokenPair, error) {
	var result tokenResponse

	resp, err := c.http.Request().
		SetContext(ctx).
		SetBasicAuth(c.clientID, c.clientSecret).
		SetFormData(form).
		SetResult(&result).
		Post(apiBaseURL + "/2/oauth2/token")
	if err != nil {
		return nil, fmt.Errorf("twitter token request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("twitter token request failed: %s", resp.Status())
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		return nil, fmt.Errorf("twitter token response missing tokens")
	}

	return &TokenPair{AccessToken: result.AccessToken, RefreshToken: result.RefreshToken}, nil
}

// Me returns the Twitter account id of the token's owner.
func (c *Client) Me(ctx context.Context, accessToken string) (string, error) {
	var result struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}

	resp, err := c.http.Request().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&result).
		Get(apiBaseURL + "/2/users/me")
	if err != nil {
		return "", fmt.Errorf("twitter users/me: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("twitter users/me failed: %s", resp.Status())
	}
	if result.Data.ID == "" {
		return "", fmt.Errorf("twitter users/me response missing account id")
	}

	return result.Data.ID, nil
}

// PostTweet publishes text and returns the Twitter-assigned tweet id.
func (c *Client) PostTweet(ctx context.Context, accessToken, text string) (string, error) {
	var result struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}

	resp, err := c.http.Request().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"text": text}).
		SetResult(&result).
		Post(apiBaseURL + "/2/tweets")
	if err != nil {
		return "", fmt.Errorf("posting tweet: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("posting tweet failed: %s", resp.Status())
	}
	if result.Data.ID == "" {
		return "", fmt.Errorf("tweet response missing tweet id")
	}

	return result.Data.ID, nil
}
