// Package twitch is a minimal Helix API client used to pull a channel's
// top clips as additional clip sources.
package twitch

import (
	"fmt"
	"sync"
	"time"

	"clip-automator/log"
	apperrors "clip-automator/pkg/errors"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	defaultAuthURL = "https://id.twitch.tv/oauth2/token"
	defaultAPIURL  = "https://api.twitch.tv/helix"
)

type Client struct {
	http         *resty.Client
	clientID     string
	clientSecret string
	authURL      string
	apiURL       string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

type Option func(*Client)

// WithEndpoints overrides the auth and API base URLs, used by tests.
func WithEndpoints(authURL, apiURL string) Option {
	return func(c *Client) {
		c.authURL = authURL
		c.apiURL = apiURL
	}
}

func NewClient(clientID, clientSecret, proxyAddr string, opts ...Option) *Client {
	httpClient := resty.New().SetTimeout(30 * time.Second)
	if proxyAddr != "" {
		httpClient.SetProxy(proxyAddr)
	}

	c := &Client{
		http:         httpClient,
		clientID:     clientID,
		clientSecret: clientSecret,
		authURL:      defaultAuthURL,
		apiURL:       defaultAPIURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// ensureToken fetches an app access token via the client credentials flow,
// reusing the cached one until shortly before it expires.
func (c *Client) ensureToken() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-time.Minute)) {
		return c.accessToken, nil
	}

	var token tokenResponse
	resp, err := c.http.R().
		SetFormData(map[string]string{
			"client_id":     c.clientID,
			"client_secret": c.clientSecret,
			"grant_type":    "client_credentials",
		}).
		SetResult(&token).
		Post(c.authURL)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeTwitchAuthFailed, "Twitch authentication failed", err)
	}
	if resp.IsError() || token.AccessToken == "" {
		log.GetLogger().Error("twitch token request rejected",
			zap.Int("status", resp.StatusCode()), zap.String("body", resp.String()))
		return "", apperrors.WrapWithDetail(apperrors.CodeTwitchAuthFailed,
			"Twitch authentication failed",
			fmt.Sprintf("status %d", resp.StatusCode()), nil)
	}

	c.accessToken = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	return c.accessToken, nil
}

func (c *Client) apiRequest(token string) *resty.Request {
	return c.http.R().
		SetHeader("Client-Id", c.clientID).
		SetAuthToken(token)
}
