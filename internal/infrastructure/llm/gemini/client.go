package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/kirillkom/telegram-gemini-bot/internal/infrastructure/resilience"
)

// Client generates text and image descriptions through the Gemini API.
type Client struct {
	client   *genai.Client
	model    string
	executor *resilience.Executor
}

func New(ctx context.Context, apiKey, model string, executor *resilience.Executor) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{
		client:   client,
		model:    model,
		executor: executor,
	}, nil
}

func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, "gemini.generate", genai.Text(prompt))
}

func (c *Client) DescribeImage(ctx context.Context, instruction string, mimeType string, image []byte) (string, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(instruction),
			genai.NewPartFromBytes(image, mimeType),
		}, genai.RoleUser),
	}
	return c.generate(ctx, "gemini.describe_image", contents)
}

func (c *Client) generate(ctx context.Context, operation string, contents []*genai.Content) (string, error) {
	var text string
	call := func(callCtx context.Context) error {
		resp, err := c.client.Models.GenerateContent(callCtx, c.model, contents, nil)
		if err != nil {
			return fmt.Errorf("gemini generate: %w", err)
		}
		text = strings.TrimSpace(resp.Text())
		return nil
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, operation, call, classifyProviderError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", wrapProviderError(operation, err)
	}
	return text, nil
}
