package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGatewayRepliesInOrder(t *testing.T) {
	mock := NewMockGateway("one", "two")
	ctx := context.Background()

	first, err := Prompt(ctx, mock, "a", FreeText)
	require.NoError(t, err)
	assert.Equal(t, "one", first)

	second, err := Prompt(ctx, mock, "b", JSONObject)
	require.NoError(t, err)
	assert.Equal(t, "two", second)

	_, err = Prompt(ctx, mock, "c", FreeText)
	assert.Error(t, err)

	assert.Equal(t, 3, mock.GetCallCount())
	last := mock.GetLastRequest()
	require.NotNil(t, last)
	assert.Equal(t, []Message{{Role: RoleUser, Content: "c"}}, last.Messages)
	assert.Equal(t, JSONObject, mock.CallHistory[1].Mode)
}

func TestMockGatewayResponderAndError(t *testing.T) {
	mock := &MockGateway{
		Responder: func(req Request) (string, error) {
			return "echo: " + req.Messages[0].Content, nil
		},
	}
	got, err := Prompt(context.Background(), mock, "hi", FreeText)
	require.NoError(t, err)
	assert.Equal(t, "echo: hi", got)

	boom := errors.New("quota exceeded")
	mock.Err = boom
	_, err = Prompt(context.Background(), mock, "hi", FreeText)
	assert.ErrorIs(t, err, boom)
}

func TestMockGatewayCopiesMessages(t *testing.T) {
	mock := NewMockGateway("ok")
	messages := []Message{{Role: RoleUser, Content: "original"}}

	_, err := mock.Complete(context.Background(), Request{Messages: messages})
	require.NoError(t, err)

	messages[0].Content = "changed"
	assert.Equal(t, "original", mock.CallHistory[0].Messages[0].Content)
}

func TestResponseModeString(t *testing.T) {
	assert.Equal(t, "free_text", FreeText.String())
	assert.Equal(t, "json_object", JSONObject.String())
}
