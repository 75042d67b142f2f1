package model

import (
	"context"
	"fmt"
	"sync"
)

// MockGateway is a Gateway that replays scripted replies. It records every
// request so tests can inspect what was sent.
type MockGateway struct {
	mu sync.Mutex

	// Replies are returned in order, one per call.
	Replies []string
	// Responder, when set, is consulted once Replies is exhausted.
	Responder func(req Request) (string, error)
	// Err, when set, is returned from every call.
	Err error

	CallHistory []Request
}

// NewMockGateway creates a mock that answers with replies in order.
func NewMockGateway(replies ...string) *MockGateway {
	return &MockGateway{Replies: replies}
}

// Name returns the provider name.
func (m *MockGateway) Name() string {
	return "mock"
}

// Complete returns the next scripted reply.
func (m *MockGateway) Complete(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	req.Messages = append([]Message(nil), req.Messages...)
	m.CallHistory = append(m.CallHistory, req)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}

	if len(m.Replies) > 0 {
		reply := m.Replies[0]
		m.Replies = m.Replies[1:]
		return &Response{Content: reply, FinishReason: "stop"}, nil
	}
	if m.Responder != nil {
		reply, err := m.Responder(req)
		if err != nil {
			return nil, err
		}
		return &Response{Content: reply, FinishReason: "stop"}, nil
	}
	return nil, fmt.Errorf("mock gateway: no reply scripted for call %d", len(m.CallHistory))
}

// GetCallCount returns the number of calls made.
func (m *MockGateway) GetCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.CallHistory)
}

// GetLastRequest returns the last request made.
func (m *MockGateway) GetLastRequest() *Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.CallHistory) == 0 {
		return nil
	}
	return &m.CallHistory[len(m.CallHistory)-1]
}
