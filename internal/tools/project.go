package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atinylittleshell/codesh/internal/executor"
	"github.com/atinylittleshell/codesh/internal/model"
	"go.uber.org/zap"
)

// ProjectStrategy selects how generate_project builds a project when no
// scaffolding CLI applies.
type ProjectStrategy int

const (
	// ProjectFiles asks for a file manifest and writes it directly.
	ProjectFiles ProjectStrategy = iota
	// ProjectShell asks for shell commands and runs them.
	ProjectShell
)

// ProjectCompleted is the message of a successful generate_project result.
const ProjectCompleted = "Project creation completed successfully!"

// ProjectResult is the structured payload of generate_project.
type ProjectResult struct {
	Message      string           `json:"message"`
	ProjectType  string           `json:"project_type"`
	Description  string           `json:"description"`
	FilesCreated []string         `json:"files_created"`
	Commands     []CommandOutcome `json:"commands"`
}

// CommandOutcome records one command run during project generation.
type CommandOutcome struct {
	Command string `json:"command"`
	Result  string `json:"result"`
}

type projectInfo struct {
	ProjectType    string   `json:"project_type"`
	UseCLI         bool     `json:"use_cli"`
	CLICommands    []string `json:"cli_commands"`
	PackageManager string   `json:"package_manager"`
}

type projectManifest struct {
	ProjectName string `json:"project_name"`
	Description string `json:"description"`
	Files       []struct {
		Path    string `json:"path"`
		Content string `json:"content"`
	} `json:"files"`
}

type cliTemplate struct {
	create string
	post   []string
}

var cliTemplates = map[string]cliTemplate{
	"vite": {
		create: "npm create vite@latest %s -- --template react",
		post: []string{
			"npm install",
			"npm install -D tailwindcss postcss autoprefixer",
			"npx tailwindcss init -p",
		},
	},
	"create-react-app": {
		create: "npx create-react-app %s --template typescript",
	},
	"next": {
		create: "npx create-next-app@latest %s --ts --app --tailwind --eslint --src-dir --import-alias '@/*'",
	},
	"nuxt": {
		create: "npx nuxi init %s",
		post:   []string{"npm install"},
	},
}

func GenerateProjectTool(strategy ProjectStrategy) *Tool {
	return &Tool{
		Name:        "generate_project",
		Description: "Generates a complete project structure based on the description. Parameters: project_description, project_path (optional, defaults to current directory).",
		Params: []Param{
			{Name: "project_description", Required: true},
			{Name: "project_path", Default: "."},
		},
		Run: func(ctx context.Context, env *Env, in Values) (any, error) {
			g := &projectGenerator{
				env:         env,
				strategy:    strategy,
				description: in.String("project_description"),
				path:        in.String("project_path"),
			}
			return g.generate(ctx)
		},
	}
}

type projectGenerator struct {
	env         *Env
	strategy    ProjectStrategy
	description string
	path        string
	failed      int
}

func (g *projectGenerator) generate(ctx context.Context) (*ProjectResult, error) {
	g.env.progress("🔍 Analyzing project requirements...")
	info := g.detect(ctx)

	result := &ProjectResult{
		ProjectType:  info.ProjectType,
		FilesCreated: []string{},
		Commands:     []CommandOutcome{},
	}

	var err error
	switch {
	case info.UseCLI:
		g.env.progress("🚀 This appears to be a %s project. Using CLI tools...", info.ProjectType)
		err = g.scaffold(ctx, info, result)
	case g.strategy == ProjectFiles:
		err = g.writeManifest(ctx, result)
	default:
		err = g.runGeneratedCommands(ctx, result)
	}
	if err != nil {
		return nil, err
	}

	switch {
	case result.Message != "":
	case g.failed > 0:
		result.Message = fmt.Sprintf("Project creation finished with %d failed command(s).", g.failed)
	default:
		result.Message = ProjectCompleted
	}
	return result, nil
}

// detect classifies the project. Any failure degrades to an unknown project
// built without a scaffolding CLI.
func (g *projectGenerator) detect(ctx context.Context) projectInfo {
	fallback := projectInfo{ProjectType: "unknown"}

	reply, err := model.Prompt(ctx, g.env.Gateway, detectProjectPrompt(g.description), model.JSONObject)
	if err != nil {
		g.env.logger().Warn("project type detection failed", zap.Error(err))
		return fallback
	}

	var info projectInfo
	if err := json.Unmarshal([]byte(reply), &info); err != nil {
		g.env.logger().Warn("project type detection returned invalid JSON", zap.Error(err))
		return fallback
	}
	if info.ProjectType == "" {
		info.ProjectType = fallback.ProjectType
	}
	return info
}

func (g *projectGenerator) scaffold(ctx context.Context, info projectInfo, result *ProjectResult) error {
	projectDir := g.env.Session.Resolve(g.path)

	// Model-supplied commands name their own target, so they run inside the
	// project directory. Template commands create it from its parent.
	createDir := projectDir
	commands := info.CLICommands
	var post []string
	if len(commands) == 0 {
		tmpl, ok := cliTemplates[strings.ToLower(info.ProjectType)]
		if !ok {
			return newError(KindBadInput, "no CLI commands available for project type '%s'", info.ProjectType)
		}
		name := "."
		if filepath.Clean(g.path) != "." {
			createDir, name = filepath.Dir(projectDir), filepath.Base(projectDir)
		}
		commands = []string{fmt.Sprintf(tmpl.create, name)}
		post = tmpl.post
	}
	if err := os.MkdirAll(createDir, 0755); err != nil {
		return wrapError(KindIO, err, "failed to create directory '%s'", createDir)
	}

	g.env.progress("📦 Creating %s project in %s...", info.ProjectType, g.path)

	total := len(commands) + len(post)
	for i, command := range commands {
		opts := executor.Options{Dir: createDir}
		if i == 0 {
			// Scaffolders prompt for confirmation; the first run is also bounded.
			opts.Stdin = strings.NewReader("y\n")
			opts.Timeout = g.env.ScaffoldTimeout
		}
		g.env.progress("[%d/%d] Running: %s", i+1, total, command)
		if !g.runStep(ctx, command, opts, result, g.strategy == ProjectShell) {
			return nil
		}
	}

	for i, command := range post {
		g.env.progress("[%d/%d] Running: %s", len(commands)+i+1, total, command)
		if !g.runStep(ctx, command, executor.Options{Dir: projectDir}, result, g.strategy == ProjectShell) {
			return nil
		}
	}
	return nil
}

// runStep runs one project command and records its outcome. It reports
// false when generation should stop.
func (g *projectGenerator) runStep(ctx context.Context, command string, opts executor.Options, result *ProjectResult, longRunning bool) bool {
	if IsDangerous(command) {
		g.env.logger().Warn("skipped dangerous project command", zap.String("command", command))
		result.Commands = append(result.Commands, CommandOutcome{Command: command, Result: "Error: " + UnsafeMessage})
		g.failed++
		return true
	}

	run := g.env.Executor.Run
	if longRunning {
		run = g.env.Executor.RunLongRunning
	}

	res, err := run(ctx, command, opts)
	if err != nil {
		var timeout *executor.TimeoutError
		if errors.As(err, &timeout) {
			result.Commands = append(result.Commands, CommandOutcome{Command: command, Result: "Error: " + timeout.Error()})
			result.Message = fmt.Sprintf("Project creation stopped: %s", timeout.Error())
			return false
		}
		if ctx.Err() != nil {
			result.Commands = append(result.Commands, CommandOutcome{Command: command, Result: "Error: " + err.Error()})
			result.Message = "Project creation cancelled."
			return false
		}
		result.Commands = append(result.Commands, CommandOutcome{Command: command, Result: "Error: " + err.Error()})
		g.failed++
		return true
	}

	if !res.Success() {
		g.failed++
	}
	g.env.progress("✅ Command completed")
	result.Commands = append(result.Commands, CommandOutcome{Command: command, Result: res.String()})
	return true
}

func (g *projectGenerator) writeManifest(ctx context.Context, result *ProjectResult) error {
	g.env.progress("📂 Generating project structure...")

	reply, err := model.Prompt(ctx, g.env.Gateway, manifestPrompt(g.description), model.JSONObject)
	if err != nil {
		return wrapError(KindModel, err, "failed to generate project structure")
	}

	var manifest projectManifest
	if err := json.Unmarshal([]byte(reply), &manifest); err != nil {
		return wrapError(KindModel, err, "failed to parse project structure")
	}
	result.Description = manifest.Description

	base := g.env.Session.Resolve(g.path)
	for _, file := range manifest.Files {
		target, ok := within(base, file.Path)
		if !ok {
			g.env.logger().Warn("skipped project file outside project path", zap.String("path", file.Path))
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return wrapError(KindIO, err, "failed to create directory for '%s'", file.Path)
		}
		if err := os.WriteFile(target, []byte(file.Content), 0644); err != nil {
			return wrapError(KindIO, err, "failed to write '%s'", file.Path)
		}
		g.env.progress("  Created: %s", file.Path)
		result.FilesCreated = append(result.FilesCreated, file.Path)
	}
	return nil
}

func (g *projectGenerator) runGeneratedCommands(ctx context.Context, result *ProjectResult) error {
	g.env.progress("📂 Generating project structure...")

	reply, err := model.Prompt(ctx, g.env.Gateway, projectCommandsPrompt(g.description, g.path), model.FreeText)
	if err != nil {
		return wrapError(KindModel, err, "failed to generate project commands")
	}

	var commands []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		commands = append(commands, line)
	}

	for i, command := range commands {
		g.env.progress("[%d/%d] Executing: %s", i+1, len(commands), command)
		if !g.runStep(ctx, command, executor.Options{Dir: g.env.Session.Dir()}, result, false) {
			return nil
		}
		g.env.progress("  Result: %s", firstLine(result.Commands[len(result.Commands)-1].Result))
	}
	return nil
}

// within joins rel onto base and reports whether the result stays inside base.
func within(base, rel string) (string, bool) {
	if rel == "" || filepath.IsAbs(rel) {
		return "", false
	}
	target := filepath.Join(base, rel)
	relToBase, err := filepath.Rel(base, target)
	if err != nil || relToBase == ".." || strings.HasPrefix(relToBase, ".."+string(filepath.Separator)) {
		return "", false
	}
	return target, true
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
