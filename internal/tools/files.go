package tools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atinylittleshell/codesh/internal/session"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

func CreateFileTool() *Tool {
	return &Tool{
		Name:        "create_file",
		Description: "Creates a new file with content. Parameters: file_path, content.",
		Params: []Param{
			{Name: "file_path", Required: true},
			{Name: "content", Default: ""},
		},
		Run: createFile,
	}
}

func createFile(ctx context.Context, env *Env, in Values) (any, error) {
	filePath := in.String("file_path")
	absPath := env.Session.Resolve(filePath)

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, wrapError(KindIO, err, "failed to create file '%s'", filePath)
	}
	if err := os.WriteFile(absPath, []byte(in.String("content")), 0644); err != nil {
		return nil, wrapError(KindIO, err, "failed to create file '%s'", filePath)
	}

	env.logger().Debug("created file", zap.String("path", absPath))
	return fmt.Sprintf("File '%s' created successfully.", filePath), nil
}

func ReadFileTool() *Tool {
	return &Tool{
		Name:        "read_file",
		Description: "Reads and returns the contents of a file. Parameters: file_path.",
		Params:      []Param{{Name: "file_path", Required: true}},
		Run:         readFile,
	}
}

func readFile(ctx context.Context, env *Env, in Values) (any, error) {
	filePath := in.String("file_path")

	content, err := os.ReadFile(env.Session.Resolve(filePath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, newError(KindNotFound, "File '%s' does not exist.", filePath)
		}
		return nil, wrapError(KindIO, err, "failed to read file '%s'", filePath)
	}
	return string(content), nil
}

func UpdateFileTool() *Tool {
	return &Tool{
		Name:        "update_file",
		Description: "Updates the contents of an existing file. Parameters: file_path, content.",
		Params: []Param{
			{Name: "file_path", Required: true},
			{Name: "content", Required: true},
		},
		// A lone value cannot carry both path and content.
		Accepts: ShapeKeyed,
		Run:     updateFile,
	}
}

func updateFile(ctx context.Context, env *Env, in Values) (any, error) {
	filePath := in.String("file_path")
	absPath := env.Session.Resolve(filePath)

	if _, err := os.Stat(absPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, newError(KindNotFound, "File '%s' does not exist.", filePath)
		}
		return nil, wrapError(KindIO, err, "failed to update file '%s'", filePath)
	}
	if err := os.WriteFile(absPath, []byte(in.String("content")), 0644); err != nil {
		return nil, wrapError(KindIO, err, "failed to update file '%s'", filePath)
	}
	return fmt.Sprintf("File '%s' updated successfully.", filePath), nil
}

func ListDirectoryTool() *Tool {
	return &Tool{
		Name:        "list_directory",
		Description: "Lists the contents of a directory. Parameters: directory_path (optional, defaults to current directory).",
		Params:      []Param{{Name: "directory_path", Default: "."}},
		Run:         listDirectory,
	}
}

func listDirectory(ctx context.Context, env *Env, in Values) (any, error) {
	dirPath := in.String("directory_path")
	if dirPath == "" {
		dirPath = "."
	}
	absPath := env.Session.Resolve(dirPath)

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, newError(KindNotFound, "Directory '%s' does not exist.", dirPath)
		}
		return nil, wrapError(KindIO, err, "failed to list directory '%s'", dirPath)
	}
	if !info.IsDir() {
		return nil, newError(KindBadInput, "'%s' is not a directory.", dirPath)
	}

	entries, err := os.ReadDir(absPath)
	if err != nil {
		return nil, wrapError(KindIO, err, "failed to list directory '%s'", dirPath)
	}
	if len(entries) == 0 {
		return fmt.Sprintf("Directory '%s' is empty.", dirPath), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Contents of '%s':\n", dirPath)
	for _, entry := range entries {
		if entry.IsDir() {
			fmt.Fprintf(&sb, "📁 %s/\n", entry.Name())
			continue
		}
		if fi, err := entry.Info(); err == nil {
			fmt.Fprintf(&sb, "📄 %s (%s)\n", entry.Name(), humanize.Bytes(uint64(fi.Size())))
		} else {
			fmt.Fprintf(&sb, "📄 %s\n", entry.Name())
		}
	}
	return sb.String(), nil
}

func CreateDirectoryTool() *Tool {
	return &Tool{
		Name:        "create_directory",
		Description: "Creates a new directory. Parameters: directory_path.",
		Params:      []Param{{Name: "directory_path", Required: true}},
		Run:         createDirectory,
	}
}

func createDirectory(ctx context.Context, env *Env, in Values) (any, error) {
	dirPath := in.String("directory_path")
	absPath := env.Session.Resolve(dirPath)

	if _, err := os.Stat(absPath); err == nil {
		return nil, newError(KindBadInput, "Directory '%s' already exists.", dirPath)
	}
	if err := os.MkdirAll(absPath, 0755); err != nil {
		return nil, wrapError(KindIO, err, "failed to create directory '%s'", dirPath)
	}
	return fmt.Sprintf("Directory '%s' created successfully.", dirPath), nil
}

func ChangeDirectoryTool() *Tool {
	return &Tool{
		Name:        "change_directory",
		Description: "Changes the current working directory. Parameters: directory_path.",
		Params:      []Param{{Name: "directory_path", Required: true}},
		Run:         changeDirectory,
	}
}

func changeDirectory(ctx context.Context, env *Env, in Values) (any, error) {
	dirPath := in.String("directory_path")

	dir, err := env.Session.Chdir(dirPath)
	switch {
	case errors.Is(err, session.ErrNotExist):
		return nil, newError(KindNotFound, "Directory '%s' does not exist.", dirPath)
	case errors.Is(err, session.ErrNotDirectory):
		return nil, newError(KindBadInput, "'%s' is not a directory.", dirPath)
	case err != nil:
		return nil, wrapError(KindIO, err, "failed to change directory")
	}

	env.logger().Info("changed directory", zap.String("dir", dir))
	return fmt.Sprintf("Changed directory to: %s", dir), nil
}

func GetCurrentDirectoryTool() *Tool {
	return &Tool{
		Name:        "get_current_directory",
		Description: "Gets the current working directory.",
		Run:         getCurrentDirectory,
	}
}

func getCurrentDirectory(ctx context.Context, env *Env, in Values) (any, error) {
	return fmt.Sprintf("Current directory: %s", env.Session.Dir()), nil
}
