package openai

import (
	"context"

	"clip-automator/log"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ChatCompletion sends a single-turn prompt and returns the raw reply.
func (c *Client) ChatCompletion(prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		log.GetLogger().Error("chat completion failed", zap.Error(err))
		return "", err
	}
	if len(resp.Choices) == 0 {
		log.GetLogger().Warn("chat completion returned no choices")
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
