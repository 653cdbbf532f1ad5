package ocr

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// NewChatClient returns a chat-completion client pointed at the provider's
// OpenAI-compatible endpoint.
func NewChatClient(config Config) (*openai.Client, error) {
	if config.APIKey == "" {
		return nil, WrapOCRError("NewChatClient", ErrMissingAPIKey,
			"set MISTRAL_API_KEY or pass Config.APIKey")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultConfig().BaseURL
	}
	clientConfig.BaseURL = baseURL + "/v1"

	return openai.NewClientWithConfig(clientConfig), nil
}

// TextChat sends a single user prompt to the chat model and returns the
// completion text.
func (c *Client) TextChat(ctx context.Context, prompt string) (string, error) {
	const op = "TextChat"

	chatClient, err := NewChatClient(c.config)
	if err != nil {
		return "", err
	}

	resp, err := chatClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.config.ChatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", WrapOCRError(op, fmt.Errorf("%w: %v", ErrProviderCall, err), "")
	}

	if len(resp.Choices) == 0 {
		return "", WrapOCRError(op, ErrProviderCall, "no response choices from chat model")
	}

	return resp.Choices[0].Message.Content, nil
}
