package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/dealflow/internal/domain/deals"
	"github.com/bryanwahyu/dealflow/internal/infra/ai/prompt"
)

const maxTokens = 4096

const defaultModel = "gpt-4o"

// Client implements the Generator port against the OpenAI chat API.
type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model}
}

// GenerateReport runs the underwrite template over the extracted document
// text.
func (c *Client) GenerateReport(ctx context.Context, documentText string) (string, error) {
	return c.complete(ctx, prompt.Underwrite, documentText)
}

// GenerateQuestions runs the KIQ template over the underwriting analysis.
func (c *Client) GenerateQuestions(ctx context.Context, reportText string) (string, error) {
	return c.complete(ctx, prompt.KIQ, reportText)
}

func (c *Client) complete(ctx context.Context, t prompt.Template, input string) (string, error) {
	model := c.Model
	if model == "" {
		model = defaultModel
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: t.System},
			{Role: openai.ChatMessageRoleUser, Content: t.Render(input)},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classify(t.ID, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%s: empty completion: %w", t.ID, deals.ErrServiceFailure)
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps transport errors onto the adapter failure taxonomy so the
// coordinator's fallback markers keep the failure kind.
func classify(templateID string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %v: %w", templateID, err, deals.ErrTimeout)
	}
	return fmt.Errorf("%s: %v: %w", templateID, err, deals.ErrServiceFailure)
}
