package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/atinylittleshell/codesh/internal/executor"
	"go.uber.org/zap"
)

func ExecuteCommandTool() *Tool {
	return &Tool{
		Name:        "execute_command",
		Description: "Executes a shell command directly. Parameters: command, show_realtime_output (optional).",
		Params: []Param{
			{Name: "command", Required: true},
			{Name: "show_realtime_output", Type: TypeBool, Default: false},
		},
		RunsCommand: true,
		Run: func(ctx context.Context, env *Env, in Values) (any, error) {
			command := in.String("command")
			if in.Bool("show_realtime_output") {
				return runCommand(ctx, env, command, env.Executor.Stream)
			}
			return runCommand(ctx, env, command, env.Executor.Run)
		},
	}
}

func ExecuteLongRunningCommandTool() *Tool {
	return &Tool{
		Name:        "execute_long_running_command",
		Description: "Executes a potentially long-running command with real-time feedback. Parameters: command.",
		Params:      []Param{{Name: "command", Required: true}},
		RunsCommand: true,
		Run: func(ctx context.Context, env *Env, in Values) (any, error) {
			return runCommand(ctx, env, in.String("command"), env.Executor.RunLongRunning)
		},
	}
}

type runner func(ctx context.Context, command string, opts executor.Options) (*executor.Result, error)

// runCommand applies the denylist and runs command in the session directory.
// A non-zero exit status is part of the payload, not an error.
func runCommand(ctx context.Context, env *Env, command string, run runner) (any, error) {
	if IsDangerous(command) {
		env.logger().Warn("rejected command", zap.String("command", command))
		return nil, unsafeCommand()
	}

	result, err := run(ctx, command, executor.Options{Dir: env.Session.Dir()})
	if err != nil {
		var timeout *executor.TimeoutError
		if errors.As(err, &timeout) {
			return nil, wrapError(KindTimeout, err, "failed to execute command")
		}
		return nil, wrapError(KindExec, err, "failed to execute command")
	}
	return CommandOutput{Command: command, ExitCode: result.ExitCode, Text: result.String()}, nil
}

// CommandOutput is the payload of the command tools. It serializes as its text.
type CommandOutput struct {
	Command  string
	ExitCode int
	Text     string
}

func (c CommandOutput) String() string {
	return c.Text
}

func (c CommandOutput) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c.Text); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
