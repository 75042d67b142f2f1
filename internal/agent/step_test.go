package agent

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStep(t *testing.T) {
	step, err := ParseStep(` {"step":"action","function":"read_file","input":"a.txt"} `)
	require.NoError(t, err)
	assert.Equal(t, StepAction, step.Kind)
	assert.Equal(t, "read_file", step.Function)
	assert.JSONEq(t, `"a.txt"`, string(step.Input))

	step, err = ParseStep(`{"step":"plan","content":""}`)
	require.NoError(t, err)
	assert.Equal(t, StepPlan, step.Kind)

	for _, reply := range []string{"", "[]", `"plan"`, `{"step":`} {
		_, err := ParseStep(reply)
		require.Error(t, err, reply)
		assert.Equal(t, InvalidJSONMessage, err.Error())
	}
}

func TestObserve(t *testing.T) {
	got, err := observe("a < b", nil)
	require.NoError(t, err)
	assert.Equal(t, `{"step":"observe","output":"a < b"}`, got)

	got, err = observe("ignored", errors.New("disk full"))
	require.NoError(t, err)
	assert.Equal(t, `{"step":"observe","output":"Error: disk full"}`, got)

	got, err = observe(map[string]any{"n": 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"step":"observe","output":{"n":1}}`, got)

	_, err = observe(json.RawMessage(`{`), nil)
	assert.Error(t, err)
}

func TestSystemPrompt(t *testing.T) {
	files := SystemPrompt("files", "- read_file: Reads.")
	assert.Contains(t, files, "You are CodeSH")
	assert.Contains(t, files, "Available Tools:\n- read_file: Reads.\n")
	assert.Contains(t, files, "always use the change_directory function")
	assert.NotContains(t, files, "execute_long_running_command")

	shell := SystemPrompt("shell", "- execute_command: Runs.")
	assert.Contains(t, shell, "use execute_long_running_command")
	assert.Contains(t, shell, `"step": "string"`)
}
