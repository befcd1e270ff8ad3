package openai

import (
	"net/http"

	"clip-automator/config"

	"github.com/sashabaranov/go-openai"
)

type Client struct {
	client    *openai.Client
	chatModel string
}

func NewClient(baseUrl, apiKey, model, proxyAddr string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseUrl != "" {
		cfg.BaseURL = baseUrl
	}

	transport := &http.Transport{}
	if proxyAddr != "" {
		transport.Proxy = http.ProxyURL(config.Conf.App.ParsedProxy)
	}

	// No client timeout: hour-long podcasts produce transcription requests
	// that legitimately run for many minutes.
	cfg.HTTPClient = &http.Client{
		Transport: transport,
	}

	if model == "" {
		model = openai.GPT4oMini
	}

	return &Client{
		client:    openai.NewClientWithConfig(cfg),
		chatModel: model,
	}
}
