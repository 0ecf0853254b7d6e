// Package llm is the client for the hosted language-model gateway.
// It performs a single chat completion per call and classifies the outcome;
// retry policy, if any, belongs to the caller.
package llm

import (
	"context"
	"errors"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Config holds the gateway client configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration

	// RateLimitStatus and PaymentRequiredStatus are the upstream status codes
	// recognized as throttling and billing failures. They are configuration
	// rather than literals so a gateway contract change is a config edit.
	RateLimitStatus       int
	PaymentRequiredStatus int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:               "https://api.openai.com/v1",
		APIKey:                "",
		Model:                 "gpt-4o-mini",
		Timeout:               30 * time.Second,
		RateLimitStatus:       429,
		PaymentRequiredStatus: 402,
	}
}

// Message is one entry of the assembled instruction sequence.
type Message struct {
	Role    string // system, user, assistant
	Content string
}

// Completer is the gateway surface the orchestrator depends on.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Client calls the upstream completion service.
type Client struct {
	client *openai.Client
	config *Config
}

// NewClient creates a new gateway client.
func NewClient(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RateLimitStatus == 0 {
		cfg.RateLimitStatus = 429
	}
	if cfg.PaymentRequiredStatus == 0 {
		cfg.PaymentRequiredStatus = 402
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

// Complete sends the assembled instruction sequence to the gateway and
// returns the completion text. Failures come back as *GatewayError. A missing
// credential fails before any network call.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	if c.config.APIKey == "" {
		return "", &GatewayError{Kind: KindConfiguration, Detail: "gateway API key is not configured"}
	}

	llmMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		llmMessages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.config.Model,
		Messages: llmMessages,
	})
	if err != nil {
		return "", c.classify(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &GatewayError{Kind: KindUpstream, Detail: "empty completion response"}
	}

	return resp.Choices[0].Message.Content, nil
}

// classify maps an upstream error to a GatewayError.
func (c *Client) classify(err error) *GatewayError {
	statusCode := 0
	detail := err.Error()

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	if errors.As(err, &apiErr) {
		statusCode = apiErr.HTTPStatusCode
		detail = apiErr.Message
	} else if errors.As(err, &reqErr) {
		statusCode = reqErr.HTTPStatusCode
	}

	switch statusCode {
	case c.config.RateLimitStatus:
		return &GatewayError{Kind: KindRateLimited, StatusCode: statusCode, Detail: detail}
	case c.config.PaymentRequiredStatus:
		return &GatewayError{Kind: KindPaymentRequired, StatusCode: statusCode, Detail: detail}
	default:
		return &GatewayError{Kind: KindUpstream, StatusCode: statusCode, Detail: detail}
	}
}
