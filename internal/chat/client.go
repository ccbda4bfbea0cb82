package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/molscan/molscan/internal/model"
	"github.com/sashabaranov/go-openai"
)

const systemPrompt = `You are a chemistry-literate assistant. When your answer mentions a
molecule, include its SMILES notation in backticks, like ` + "`CCO`" + ` for ethanol.
When you rely on a source page, cite it inline as [N] where N is the page number.`

// Client is a minimal streaming chat front-end. Replies are returned as one
// string so they can be fed straight through the scan pipeline.
type Client struct {
	api       *openai.Client
	model     string
	maxTokens int
	timeout   time.Duration
}

// NewClient creates a chat client. A non-empty BaseURL points the client at
// an OpenAI-compatible endpoint such as a local Ollama server.
func NewClient(cfg model.ChatConfig, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	chatModel := cfg.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}

	return &Client{
		api:       openai.NewClientWithConfig(clientConfig),
		model:     chatModel,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
	}, nil
}

// Ask sends the prompt and accumulates the streamed reply. onDelta, when
// non-nil, receives each chunk as it arrives.
func (c *Client) Ask(ctx context.Context, prompt string, onDelta func(string)) (string, error) {
	timeout := c.timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: c.maxTokens,
		Stream:    true,
	}

	stream, err := c.api.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer stream.Close()

	var reply strings.Builder
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("chat stream: %w", err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		delta := resp.Choices[0].Delta.Content
		reply.WriteString(delta)
		if onDelta != nil && delta != "" {
			onDelta(delta)
		}
	}

	return reply.String(), nil
}
