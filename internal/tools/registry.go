package tools

import (
	"fmt"
	"strings"

	"github.com/atinylittleshell/codesh/internal/config"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

// Registry maps tool names to tools. It is fixed once built.
type Registry struct {
	tools map[string]*Tool
	order []string
}

// NewRegistry builds a registry, rejecting duplicate or unnamed tools.
func NewRegistry(tools ...*Tool) (*Registry, error) {
	r := &Registry{tools: make(map[string]*Tool, len(tools))}
	for _, t := range tools {
		if t.Name == "" || t.Run == nil {
			return nil, fmt.Errorf("tool %q is incomplete", t.Name)
		}
		if _, exists := r.tools[t.Name]; exists {
			return nil, fmt.Errorf("duplicate tool %q", t.Name)
		}
		r.tools[t.Name] = t
		r.order = append(r.order, t.Name)
	}
	return r, nil
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (*Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Catalogue renders the "- name: description" list used in the system prompt.
func (r *Registry) Catalogue() string {
	lines := lo.Map(r.order, func(name string, _ int) string {
		return fmt.Sprintf("- %s: %s", name, r.tools[name].Description)
	})
	return strings.Join(lines, "\n")
}

// Suggest returns the registered name closest to name, if any is close.
func (r *Registry) Suggest(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	matches := fuzzy.Find(name, r.order)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Str, true
}

// FilesTools returns the tool set of the file-oriented mode.
func FilesTools() []*Tool {
	return []*Tool{
		CreateFileTool(),
		ReadFileTool(),
		UpdateFileTool(),
		ListDirectoryTool(),
		CreateDirectoryTool(),
		ChangeDirectoryTool(),
		GetCurrentDirectoryTool(),
		GenerateCodeTool(),
		GenerateProjectTool(ProjectFiles),
		ExplainCodeTool(),
		ImproveCodeTool(),
		GenerateTestTool(),
	}
}

// ShellTools returns the tool set of the command-oriented mode.
func ShellTools() []*Tool {
	return []*Tool{
		ExecuteCommandTool(),
		ExecuteLongRunningCommandTool(),
		GenerateCommandTool(),
		GenerateCodeTool(),
		GenerateProjectTool(ProjectShell),
		ExplainCodeTool(),
		ImproveCodeTool(),
		GenerateTestTool(),
	}
}

// ForMode builds the registry for "files" or "shell" mode.
func ForMode(mode string) (*Registry, error) {
	switch mode {
	case config.ModeFiles:
		return NewRegistry(FilesTools()...)
	case config.ModeShell:
		return NewRegistry(ShellTools()...)
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}
