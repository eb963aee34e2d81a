package coach

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"

	"nabta/internal/config"
	"nabta/internal/models"
	"nabta/internal/observability"
)

// systemPrompt frames every conversation sent upstream. The coach answers
// in the language the user wrote in.
const systemPrompt = "You are Nabta's wellness coach. You help users build healthy habits " +
	"around movement, nutrition, and rest. Keep answers short, practical, and encouraging. " +
	"Reply in the language the user writes in, English or Arabic."

const requestTimeout = 30 * time.Second

// Message is one turn of a coach conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type chatError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client proxies chat history to an OpenAI-style chat-completions endpoint.
type Client struct {
	client *resty.Client
	apiKey string
	model  string
}

// NewClient builds a coach client from configuration. A missing API key is
// allowed here; Chat rejects requests until one is configured.
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.CoachAPIURL).
		SetTimeout(requestTimeout)

	return &Client{
		client: client,
		apiKey: cfg.CoachAPIKey,
		model:  cfg.CoachModel,
	}
}

// Close releases the underlying HTTP client.
func (c *Client) Close() error {
	return c.client.Close()
}

// Chat sends the conversation upstream, prefixed with the system prompt,
// and returns the single completion string.
func (c *Client) Chat(ctx context.Context, history []Message) (string, error) {
	if c.apiKey == "" {
		observability.CoachRequests.WithLabelValues("config_error").Inc()
		return "", models.NewConfigError("COACH_API_KEY is not configured")
	}
	if len(history) == 0 {
		return "", models.NewValidationError("messages are required")
	}
	for _, m := range history {
		if m.Role != "user" && m.Role != "assistant" {
			return "", models.NewValidationError("message role must be user or assistant")
		}
		if m.Content == "" {
			return "", models.NewValidationError("message content is required")
		}
	}

	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, Message{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)

	start := time.Now()
	res, err := c.client.R().
		WithContext(ctx).
		SetAuthToken(c.apiKey).
		SetBody(&chatRequest{Model: c.model, Messages: messages}).
		SetResult(&chatResponse{}).
		SetError(&chatError{}).
		Post("/v1/chat/completions")
	observability.CoachLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		observability.CoachRequests.WithLabelValues("error").Inc()
		return "", models.NewUpstreamError("coach upstream unreachable", err)
	}

	if res.IsError() {
		observability.CoachRequests.WithLabelValues("error").Inc()
		if apiErr, ok := res.Error().(*chatError); ok && apiErr.Error.Message != "" {
			return "", models.NewUpstreamError(apiErr.Error.Message, nil)
		}
		return "", models.NewUpstreamError(fmt.Sprintf("coach upstream returned status %d", res.StatusCode()), nil)
	}

	out, ok := res.Result().(*chatResponse)
	if !ok || len(out.Choices) == 0 {
		observability.CoachRequests.WithLabelValues("error").Inc()
		return "", models.NewUpstreamError("coach upstream returned no completion", nil)
	}

	observability.CoachRequests.WithLabelValues("ok").Inc()
	return out.Choices[0].Message.Content, nil
}
