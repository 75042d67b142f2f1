package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteCommand(t *testing.T) {
	env := newTestEnv(t)

	payload, err := env.invoke(t, ExecuteCommandTool(), `"echo hello"`)
	require.NoError(t, err)
	assert.Equal(t, CommandOutput{Command: "echo hello", Text: "hello"}, payload)

	payload, err = env.invoke(t, ExecuteCommandTool(), `{"command":"echo oops; exit 3"}`)
	require.NoError(t, err)
	assert.Equal(t, CommandOutput{Command: "echo oops; exit 3", ExitCode: 3, Text: "Command failed with error code 3:\noops\n"}, payload)
}

func TestExecuteCommandRunsInSessionDirectory(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.Mkdir(filepath.Join(env.dir, "sub"), 0755))
	_, err := env.Session.Chdir("sub")
	require.NoError(t, err)

	_, err = env.invoke(t, ExecuteCommandTool(), `"echo data > out.txt"`)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(env.dir, "sub", "out.txt"))
}

func TestExecuteCommandRealtime(t *testing.T) {
	env := newTestEnv(t)

	payload, err := env.invoke(t, ExecuteCommandTool(), `{"command":"echo one; echo two","show_realtime_output":true}`)
	require.NoError(t, err)
	assert.Equal(t, "Command completed successfully.\nOutput:\none\ntwo\n", fmt.Sprint(payload))
	assert.Contains(t, env.out.String(), "Executing command: echo one; echo two")
	assert.Contains(t, env.out.String(), "  two\n")
}

func TestExecuteLongRunningCommand(t *testing.T) {
	env := newTestEnv(t)

	payload, err := env.invoke(t, ExecuteLongRunningCommandTool(), `"echo done; exit 2"`)
	require.NoError(t, err)
	assert.Equal(t, "Command completed with non-zero exit code: 2\nOutput:\ndone\n", fmt.Sprint(payload))
	assert.Equal(t, 2, payload.(CommandOutput).ExitCode)
}

func TestDangerousCommandNeverRuns(t *testing.T) {
	env := newTestEnv(t)
	marker := filepath.Join(env.dir, "marker")

	for _, tool := range []*Tool{ExecuteCommandTool(), ExecuteLongRunningCommandTool()} {
		t.Run(tool.Name, func(t *testing.T) {
			_, err := env.invoke(t, tool, `"touch marker && rm marker"`)
			require.Error(t, err)
			assert.Equal(t, UnsafeMessage, err.Error())
			assert.Equal(t, KindUnsafe, KindOf(err))
			assert.NoFileExists(t, marker)
		})
	}
}

func TestExecuteCommandParseError(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.invoke(t, ExecuteCommandTool(), `"echo 'unterminated"`)
	require.Error(t, err)
	assert.Equal(t, KindExec, KindOf(err))
	assert.Contains(t, err.Error(), "failed to execute command")
}

func TestCommandOutputMarshalsAsText(t *testing.T) {
	data, err := CommandOutput{Command: "x", ExitCode: 1, Text: "a > b"}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"a > b"`, string(data))
}
