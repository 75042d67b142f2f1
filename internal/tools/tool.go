// Package tools defines the actions the model can call and the registry
// that dispatches them.
package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/atinylittleshell/codesh/internal/executor"
	"github.com/atinylittleshell/codesh/internal/model"
	"github.com/atinylittleshell/codesh/internal/render"
	"github.com/atinylittleshell/codesh/internal/session"
	"go.uber.org/zap"
)

// ParamType is the expected type of a tool parameter.
type ParamType int

const (
	TypeString ParamType = iota
	TypeBool
)

// Param describes one tool parameter. Optional parameters take Default when omitted.
type Param struct {
	Name     string
	Type     ParamType
	Required bool
	Default  any
}

// RunFunc executes a tool. The payload is a string or a JSON-serializable value.
type RunFunc func(ctx context.Context, env *Env, in Values) (any, error)

// Tool is a named action with its parameter list.
type Tool struct {
	Name        string
	Description string
	Params      []Param
	// Accepts lists the input shapes the tool takes. Zero means keyed input,
	// plus positional input when the tool has at least one parameter.
	Accepts Shape
	// RunsCommand marks tools whose "command" argument is a shell command.
	RunsCommand bool
	Run         RunFunc
}

func (t *Tool) accepts() Shape {
	if t.Accepts != 0 {
		return t.Accepts
	}
	if len(t.Params) > 0 {
		return ShapeKeyed | ShapePositional
	}
	return ShapeKeyed
}

// Bind maps args onto the tool's parameters, applying defaults and checking
// names, presence and types.
func (t *Tool) Bind(args Args) (Values, error) {
	if args.Shape&t.accepts() == 0 {
		return nil, newError(KindBadInput, "tool '%s' does not accept %s input", t.Name, args.Shape)
	}

	given := map[string]any{}
	switch args.Shape {
	case ShapeKeyed:
		for key, value := range args.Keyed {
			if _, ok := t.param(key); !ok {
				return nil, newError(KindBadInput, "unexpected argument '%s' for tool '%s'", key, t.Name)
			}
			given[key] = value
		}
	case ShapePositional:
		given[t.Params[0].Name] = args.Positional
	}

	values := make(Values, len(t.Params))
	for _, p := range t.Params {
		value, ok := given[p.Name]
		if !ok || value == nil {
			if p.Required {
				return nil, newError(KindBadInput, "missing required argument '%s' for tool '%s'", p.Name, t.Name)
			}
			values[p.Name] = p.Default
			continue
		}
		converted, err := convert(p, value)
		if err != nil {
			return nil, wrapError(KindBadInput, err, "invalid input for tool '%s'", t.Name)
		}
		values[p.Name] = converted
	}
	return values, nil
}

func (t *Tool) param(name string) (Param, bool) {
	for _, p := range t.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Env is what a tool may touch while it runs.
type Env struct {
	Session  *session.Session
	Gateway  model.Gateway
	Executor *executor.Executor
	// Renderer receives progress lines. It may be nil.
	Renderer *render.Renderer
	Logger   *zap.Logger
	// ScaffoldTimeout bounds the primary scaffold command of project generation.
	ScaffoldTimeout time.Duration
}

func (e *Env) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func (e *Env) progress(format string, args ...any) {
	if e.Renderer != nil {
		e.Renderer.RenderProgress(fmt.Sprintf(format, args...))
	}
}

// Invoke binds args and runs tool. Panics inside the tool are recovered and
// reported as KindInternal errors.
func Invoke(ctx context.Context, env *Env, tool *Tool, args Args) (payload any, err error) {
	defer func() {
		if r := recover(); r != nil {
			env.logger().Error("tool panicked",
				zap.String("tool", tool.Name),
				zap.Any("panic", r),
				zap.Stack("stack"))
			payload = nil
			err = newError(KindInternal, "tool '%s' crashed: %v", tool.Name, r)
		}
	}()

	values, err := tool.Bind(args)
	if err != nil {
		return nil, err
	}
	return tool.Run(ctx, env, values)
}
