package tools

import (
	"context"
	"strings"

	"github.com/atinylittleshell/codesh/internal/model"
	"go.uber.org/zap"
)

// askModel sends a single free-text prompt and wraps failures as KindModel.
func askModel(ctx context.Context, env *Env, what, prompt string) (string, error) {
	reply, err := model.Prompt(ctx, env.Gateway, prompt, model.FreeText)
	if err != nil {
		return "", wrapError(KindModel, err, "failed to %s", what)
	}
	return reply, nil
}

func GenerateCodeTool() *Tool {
	return &Tool{
		Name:        "generate_code",
		Description: "Generates code based on the provided prompt and language. Parameters: prompt, language (optional, defaults to python).",
		Params: []Param{
			{Name: "prompt", Required: true},
			{Name: "language", Default: "python"},
		},
		Run: func(ctx context.Context, env *Env, in Values) (any, error) {
			code, err := askModel(ctx, env, "generate code", codePrompt(in.String("prompt"), in.String("language")))
			if err != nil {
				return nil, err
			}
			return strings.TrimSpace(code), nil
		},
	}
}

func ExplainCodeTool() *Tool {
	return &Tool{
		Name:        "explain_code",
		Description: "Provides an explanation for the given code. Parameters: code.",
		Params:      []Param{{Name: "code", Required: true}},
		Run: func(ctx context.Context, env *Env, in Values) (any, error) {
			return askModel(ctx, env, "explain code", explainPrompt(in.String("code")))
		},
	}
}

func ImproveCodeTool() *Tool {
	return &Tool{
		Name:        "improve_code",
		Description: "Improves the given code based on the improvement prompt. Parameters: code, improvement_prompt (optional).",
		Params: []Param{
			{Name: "code", Required: true},
			{Name: "improvement_prompt", Default: ""},
		},
		Run: func(ctx context.Context, env *Env, in Values) (any, error) {
			return askModel(ctx, env, "improve code", improvePrompt(in.String("code"), in.String("improvement_prompt")))
		},
	}
}

func GenerateTestTool() *Tool {
	return &Tool{
		Name:        "generate_test",
		Description: "Generates tests for the given code. Parameters: code, test_framework (optional, defaults to pytest).",
		Params: []Param{
			{Name: "code", Required: true},
			{Name: "test_framework", Default: "pytest"},
		},
		Run: func(ctx context.Context, env *Env, in Values) (any, error) {
			return askModel(ctx, env, "generate tests", testPrompt(in.String("code"), in.String("test_framework")))
		},
	}
}

func GenerateCommandTool() *Tool {
	return &Tool{
		Name:        "generate_command",
		Description: "Generates a shell command based on the operation description. Parameters: operation_description.",
		Params:      []Param{{Name: "operation_description", Required: true}},
		Run:         generateCommand,
	}
}

func generateCommand(ctx context.Context, env *Env, in Values) (any, error) {
	reply, err := askModel(ctx, env, "generate command", commandPrompt(in.String("operation_description")))
	if err != nil {
		return nil, err
	}

	command := strings.TrimSpace(reply)
	if IsDangerous(command) {
		env.logger().Warn("rejected generated command", zap.String("command", command))
		return nil, unsafeCommand()
	}
	return command, nil
}
