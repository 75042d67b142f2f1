package tools

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForMode(t *testing.T) {
	files, err := ForMode("files")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"create_file", "read_file", "update_file", "list_directory",
		"create_directory", "change_directory", "get_current_directory",
		"generate_code", "generate_project", "explain_code", "improve_code", "generate_test",
	}, files.Names())

	shell, err := ForMode("shell")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"execute_command", "execute_long_running_command", "generate_command",
		"generate_code", "generate_project", "explain_code", "improve_code", "generate_test",
	}, shell.Names())

	_, err = ForMode("gui")
	assert.Error(t, err)
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(ReadFileTool(), ReadFileTool())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate tool")

	_, err = NewRegistry(&Tool{Name: "no_run"})
	require.Error(t, err)
}

func TestCatalogue(t *testing.T) {
	r, err := NewRegistry(ReadFileTool(), GetCurrentDirectoryTool())
	require.NoError(t, err)

	lines := strings.Split(r.Catalogue(), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "- read_file: Reads and returns the contents of a file. Parameters: file_path.", lines[0])
	assert.Equal(t, "- get_current_directory: Gets the current working directory.", lines[1])
}

func TestLookupAndSuggest(t *testing.T) {
	r, err := ForMode("files")
	require.NoError(t, err)

	tool, ok := r.Lookup("read_file")
	require.True(t, ok)
	assert.Equal(t, "read_file", tool.Name)

	_, ok = r.Lookup("delete_everything")
	assert.False(t, ok)

	suggestion, ok := r.Suggest("readfile")
	require.True(t, ok)
	assert.Equal(t, "read_file", suggestion)

	_, ok = r.Suggest("")
	assert.False(t, ok)
}

func TestEveryToolIsComplete(t *testing.T) {
	for _, tool := range append(FilesTools(), ShellTools()...) {
		assert.NotEmpty(t, tool.Description, tool.Name)
		assert.NotNil(t, tool.Run, tool.Name)
	}
}
