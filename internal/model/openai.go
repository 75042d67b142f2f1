package model

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIOptions configures an OpenAIGateway.
type OpenAIOptions struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature *float32
}

// OpenAIGateway implements Gateway on top of the OpenAI chat completions API.
// Any OpenAI-compatible endpoint works through BaseURL.
type OpenAIGateway struct {
	client      *openai.Client
	model       string
	temperature *float32
	logger      *zap.Logger
}

// NewOpenAIGateway creates a gateway. An API key is required.
func NewOpenAIGateway(opts OpenAIOptions, logger *zap.Logger) (*OpenAIGateway, error) {
	if opts.APIKey == "" {
		return nil, errors.New("OpenAI API key is not set (export OPENAI_API_KEY or set api_key in the config file)")
	}
	if opts.Model == "" {
		return nil, errors.New("model name is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	return &OpenAIGateway{
		client:      openai.NewClientWithConfig(cfg),
		model:       opts.Model,
		temperature: opts.Temperature,
		logger:      logger,
	}, nil
}

// Name returns the provider name.
func (g *OpenAIGateway) Name() string {
	return "openai"
}

// Complete sends a chat completion request.
func (g *OpenAIGateway) Complete(ctx context.Context, req Request) (*Response, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	chatReq := openai.ChatCompletionRequest{
		Model:    g.model,
		Messages: messages,
	}
	if g.temperature != nil {
		chatReq.Temperature = *g.temperature
	}
	if req.Mode == JSONObject {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	g.logger.Debug("sending chat completion",
		zap.String("model", g.model),
		zap.Int("messages", len(messages)),
		zap.Stringer("mode", req.Mode))

	resp, err := g.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	choice := resp.Choices[0]
	g.logger.Debug("received chat completion",
		zap.String("finish_reason", string(choice.FinishReason)),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens))

	return &Response{
		Content:      choice.Message.Content,
		FinishReason: string(choice.FinishReason),
		Usage: &Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
