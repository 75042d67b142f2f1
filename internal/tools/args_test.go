package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Args
		wantErr bool
	}{
		{name: "missing", raw: "", want: KeyedArgs(nil)},
		{name: "null", raw: "null", want: KeyedArgs(nil)},
		{name: "object", raw: `{"file_path":"a.txt"}`, want: KeyedArgs(map[string]any{"file_path": "a.txt"})},
		{name: "string", raw: `"ls -la"`, want: PositionalArgs("ls -la")},
		{name: "number", raw: `42`, want: PositionalArgs(float64(42))},
		{name: "list", raw: `["a","b"]`, wantErr: true},
		{name: "broken object", raw: `{"a":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(json.RawMessage(tt.raw))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, KindBadInput, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBind(t *testing.T) {
	tool := &Tool{
		Name: "sample",
		Params: []Param{
			{Name: "path", Required: true},
			{Name: "verbose", Type: TypeBool, Default: false},
		},
		Run: func(context.Context, *Env, Values) (any, error) { return nil, nil },
	}

	tests := []struct {
		name    string
		args    Args
		want    Values
		wantErr string
	}{
		{
			name: "keyed with default",
			args: KeyedArgs(map[string]any{"path": "a"}),
			want: Values{"path": "a", "verbose": false},
		},
		{
			name: "keyed bool from string",
			args: KeyedArgs(map[string]any{"path": "a", "verbose": "true"}),
			want: Values{"path": "a", "verbose": true},
		},
		{
			name: "positional binds first param",
			args: PositionalArgs("a"),
			want: Values{"path": "a", "verbose": false},
		},
		{
			name: "number converts to string",
			args: PositionalArgs(float64(7)),
			want: Values{"path": "7", "verbose": false},
		},
		{
			name:    "missing required",
			args:    KeyedArgs(map[string]any{"verbose": true}),
			wantErr: "missing required argument 'path' for tool 'sample'",
		},
		{
			name:    "unexpected key",
			args:    KeyedArgs(map[string]any{"path": "a", "extra": 1}),
			wantErr: "unexpected argument 'extra' for tool 'sample'",
		},
		{
			name:    "bad bool",
			args:    KeyedArgs(map[string]any{"path": "a", "verbose": "maybe"}),
			wantErr: "invalid input for tool 'sample': argument 'verbose' must be a boolean",
		},
		{
			name:    "object for string",
			args:    KeyedArgs(map[string]any{"path": map[string]any{}}),
			wantErr: "invalid input for tool 'sample': argument 'path' must be a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tool.Bind(tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				assert.Equal(t, KindBadInput, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBindRejectsPositionalForZeroParamTool(t *testing.T) {
	_, err := GetCurrentDirectoryTool().Bind(PositionalArgs("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not accept positional input")
}

func TestBindRejectsPositionalForUpdateFile(t *testing.T) {
	_, err := UpdateFileTool().Bind(PositionalArgs("a.txt"))
	require.Error(t, err)
	assert.Equal(t, KindBadInput, KindOf(err))
}

func TestInvokeRecoversPanic(t *testing.T) {
	env := newTestEnv(t)
	tool := &Tool{
		Name: "boom",
		Run: func(context.Context, *Env, Values) (any, error) {
			panic("kaboom")
		},
	}

	payload, err := Invoke(context.Background(), env.Env, tool, KeyedArgs(nil))
	assert.Nil(t, payload)
	require.Error(t, err)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "tool 'boom' crashed: kaboom", err.Error())
}

func TestErrorFormatting(t *testing.T) {
	assert.Equal(t, "Tool 'nope' not found.", ToolNotFound("nope").Error())
	assert.Equal(t, KindNotFound, KindOf(ToolNotFound("nope")))
	assert.Equal(t, "unsafe", KindUnsafe.String())

	wrapped := wrapError(KindIO, assert.AnError, "failed to read")
	assert.ErrorIs(t, wrapped, assert.AnError)
	assert.Equal(t, "failed to read: "+assert.AnError.Error(), wrapped.Error())
}
