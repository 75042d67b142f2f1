// Package agent drives the plan/action/observe/output loop between the
// user, the model and the tools.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atinylittleshell/codesh/internal/config"
	"github.com/atinylittleshell/codesh/internal/model"
	"github.com/atinylittleshell/codesh/internal/render"
	"github.com/atinylittleshell/codesh/internal/tools"
	"go.uber.org/zap"
)

// DefaultMaxSteps bounds the model calls of one turn when Options.MaxSteps is zero.
const DefaultMaxSteps = config.DefaultMaxSteps

// timeNow is a variable that can be overridden for testing.
var timeNow = time.Now

// State is the position of the agent in its loop.
type State int

const (
	StateAwaitingInput State = iota
	StateAwaitingStep
)

func (s State) String() string {
	if s == StateAwaitingStep {
		return "awaiting_model_step"
	}
	return "awaiting_user_input"
}

// Options configure an Agent.
type Options struct {
	Mode     string
	Gateway  model.Gateway
	Registry *tools.Registry
	Env      *tools.Env
	Renderer *render.Renderer
	Logger   *zap.Logger
	MaxSteps int
}

// Agent holds the conversation of one process run.
type Agent struct {
	gateway  model.Gateway
	registry *tools.Registry
	env      *tools.Env
	renderer *render.Renderer
	logger   *zap.Logger
	maxSteps int

	state        State
	conversation []model.Message
}

// New creates an agent whose conversation holds only the system prompt.
func New(opts Options) (*Agent, error) {
	if opts.Gateway == nil {
		return nil, errors.New("agent requires a model gateway")
	}
	if opts.Registry == nil {
		return nil, errors.New("agent requires a tool registry")
	}
	if opts.Env == nil {
		return nil, errors.New("agent requires a tool environment")
	}
	if opts.Renderer == nil {
		return nil, errors.New("agent requires a renderer")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Env.Session != nil {
		logger = logger.With(zap.String("session", opts.Env.Session.ID))
	}

	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	return &Agent{
		gateway:  opts.Gateway,
		registry: opts.Registry,
		env:      opts.Env,
		renderer: opts.Renderer,
		logger:   logger,
		maxSteps: maxSteps,
		conversation: []model.Message{{
			Role:    model.RoleSystem,
			Content: SystemPrompt(opts.Mode, opts.Registry.Catalogue()),
		}},
	}, nil
}

// State returns where the agent is in its loop.
func (a *Agent) State() State {
	return a.state
}

// Conversation returns a copy of the conversation so far.
func (a *Agent) Conversation() []model.Message {
	return append([]model.Message(nil), a.conversation...)
}

// RunTurn handles one user request. It returns nil once the model produces
// an output step. A protocol violation, a model failure or cancellation of
// ctx abandons the turn; the error has already been rendered.
func (a *Agent) RunTurn(ctx context.Context, input string) error {
	a.append(model.RoleUser, input)
	startTime := timeNow()
	defer func() {
		a.state = StateAwaitingInput
	}()

	for step := 0; step < a.maxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return a.fail(fmt.Errorf("turn cancelled: %w", err))
		}

		a.state = StateAwaitingStep
		resp, err := a.gateway.Complete(ctx, model.Request{
			Messages: a.Conversation(),
			Mode:     model.JSONObject,
		})
		if err != nil {
			return a.fail(err)
		}
		if resp.Usage != nil {
			a.logger.Debug("model step",
				zap.Int("step", step),
				zap.Int("prompt_tokens", resp.Usage.PromptTokens),
				zap.Int("completion_tokens", resp.Usage.CompletionTokens))
		}

		parsed, err := ParseStep(resp.Content)
		if err != nil {
			a.logger.Warn("protocol violation", zap.Error(err), zap.String("reply", resp.Content))
			return a.fail(err)
		}
		a.append(model.RoleAssistant, strings.TrimSpace(resp.Content))

		switch parsed.Kind {
		case StepPlan:
			a.renderer.RenderPlan(parsed.Content)
		case StepAction:
			if err := a.act(ctx, parsed); err != nil {
				return a.fail(err)
			}
		case StepOutput:
			a.renderer.RenderOutput(parsed.Content)
			a.logger.Info("turn completed",
				zap.Int("steps", step+1),
				zap.Duration("duration", timeNow().Sub(startTime)))
			return nil
		}
	}

	return a.fail(&ProtocolError{
		Reason: fmt.Sprintf("Reached the maximum of %d steps without an output.", a.maxSteps),
	})
}

// act runs the tool named by an action step and appends the observation.
// Tool failures become observations; only an unencodable payload is an error.
func (a *Agent) act(ctx context.Context, step *Step) error {
	logger := a.logger.With(zap.String("tool", step.Function))

	tool, ok := a.registry.Lookup(step.Function)
	if !ok {
		logger.Warn("unknown tool requested")
		if suggestion, found := a.registry.Suggest(step.Function); found {
			a.renderer.RenderSystemMessage(fmt.Sprintf("Unknown tool '%s', did you mean '%s'?", step.Function, suggestion))
		}
		return a.appendObservation(nil, tools.ToolNotFound(step.Function))
	}

	args, err := tools.ParseArgs(step.Input)
	if err != nil {
		a.renderer.RenderToolComplete(tool.Name, 0, err)
		return a.appendObservation(nil, err)
	}

	if tool.RunsCommand {
		a.renderer.RenderExecStart(commandText(args))
	} else {
		a.renderer.RenderToolExecuting(tool.Name, args.Display())
	}
	start := timeNow()
	payload, err := tools.Invoke(ctx, a.env, tool, args)
	duration := timeNow().Sub(start)

	if out, ok := payload.(tools.CommandOutput); ok && err == nil {
		a.renderer.RenderExecEnd(out.Command, duration, out.ExitCode)
	} else {
		a.renderer.RenderToolComplete(tool.Name, duration, err)
	}

	if err != nil {
		logger.Info("tool failed",
			zap.String("kind", tools.KindOf(err).String()),
			zap.Duration("duration", duration),
			zap.Error(err))
	} else {
		logger.Info("tool succeeded", zap.Duration("duration", duration))
	}
	return a.appendObservation(payload, err)
}

func commandText(args tools.Args) string {
	if args.Shape == tools.ShapePositional {
		return fmt.Sprint(args.Positional)
	}
	return fmt.Sprint(args.Keyed["command"])
}

func (a *Agent) appendObservation(payload any, toolErr error) error {
	content, err := observe(payload, toolErr)
	if err != nil {
		return err
	}
	a.append(model.RoleAssistant, content)
	return nil
}

func (a *Agent) append(role model.Role, content string) {
	a.conversation = append(a.conversation, model.Message{Role: role, Content: content})
}

func (a *Agent) fail(err error) error {
	a.renderer.RenderError(err.Error())
	return err
}
