// Package model is the gateway to the remote language model. Callers hand
// it an ordered list of role-tagged messages and a response mode and get
// back the reply text.
package model

import (
	"context"
	"errors"
)

// Role tags a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ResponseMode selects between free text and a single JSON object reply.
type ResponseMode int

const (
	FreeText ResponseMode = iota
	JSONObject
)

func (m ResponseMode) String() string {
	switch m {
	case JSONObject:
		return "json_object"
	default:
		return "free_text"
	}
}

// Request is a single completion request.
type Request struct {
	Messages []Message
	Mode     ResponseMode
}

// Usage reports token accounting for a completion.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Response is the model reply.
type Response struct {
	Content      string
	FinishReason string
	Usage        *Usage
}

// Gateway sends requests to a language model.
type Gateway interface {
	// Name returns the provider name (e.g. "openai").
	Name() string

	// Complete sends the conversation and returns the reply.
	Complete(ctx context.Context, req Request) (*Response, error)
}

// ErrEmptyResponse is returned when the provider answers without any choices.
var ErrEmptyResponse = errors.New("no response choices returned")

// Prompt sends a single user message and returns the reply text.
func Prompt(ctx context.Context, g Gateway, prompt string, mode ResponseMode) (string, error) {
	resp, err := g.Complete(ctx, Request{
		Messages: []Message{{Role: RoleUser, Content: prompt}},
		Mode:     mode,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
