// Package repl reads user requests from the terminal and hands them to the
// agent one turn at a time.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/atinylittleshell/codesh/internal/render"
	"github.com/atinylittleshell/codesh/internal/styles"
	"github.com/peterh/liner"
	"go.uber.org/zap"
)

// Prompt is shown before each request.
const Prompt = "> "

// GoodbyeMessage is printed when the loop ends.
const GoodbyeMessage = "Exiting CODESH. Goodbye!"

// ErrExit is returned when the user requests to exit the REPL.
var ErrExit = errors.New("exit requested")

// LineReader reads one line of user input. *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// Turner runs one agent turn.
type Turner interface {
	RunTurn(ctx context.Context, input string) error
}

// Options configure a REPL.
type Options struct {
	Reader LineReader
	Agent  Turner
	Out    io.Writer
	Mode   string
	Logger *zap.Logger
}

// REPL is the interactive read loop.
type REPL struct {
	reader LineReader
	agent  Turner
	out    io.Writer
	mode   string
	logger *zap.Logger

	// notify scopes interrupts to a single turn.
	notify func(ctx context.Context) (context.Context, context.CancelFunc)
}

// New creates a REPL.
func New(opts Options) (*REPL, error) {
	if opts.Reader == nil {
		return nil, errors.New("repl requires a line reader")
	}
	if opts.Agent == nil {
		return nil, errors.New("repl requires an agent")
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &REPL{
		reader: opts.Reader,
		agent:  opts.Agent,
		out:    out,
		mode:   opts.Mode,
		logger: logger,
		notify: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt)
		},
	}, nil
}

// Run reads and handles input until exit, end of input or an interrupt at
// the prompt. Failed turns do not end the loop.
func (r *REPL) Run(ctx context.Context) error {
	defer r.reader.Close()

	for {
		if err := ctx.Err(); err != nil {
			r.goodbye()
			return nil
		}

		line, err := r.reader.Prompt(Prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(r.out)
				r.goodbye()
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if err := r.handle(ctx, line); err != nil {
			if errors.Is(err, ErrExit) {
				r.goodbye()
				return nil
			}
			return err
		}
	}
}

// RunOnce handles a single task without prompting.
func (r *REPL) RunOnce(ctx context.Context, task string) error {
	defer r.reader.Close()
	return r.runTurn(ctx, strings.TrimSpace(task))
}

func (r *REPL) handle(ctx context.Context, line string) error {
	input := strings.TrimSpace(line)
	if input == "" {
		return nil
	}

	switch strings.ToLower(input) {
	case "exit":
		return ErrExit
	case "help":
		render.RenderHelp(r.out, r.mode)
		return nil
	}

	r.reader.AppendHistory(input)
	if err := r.runTurn(ctx, input); err != nil {
		// Already rendered by the agent.
		r.logger.Debug("turn abandoned", zap.Error(err))
	}
	return nil
}

func (r *REPL) runTurn(ctx context.Context, input string) error {
	turnCtx, stop := r.notify(ctx)
	defer stop()

	err := r.agent.RunTurn(turnCtx, input)
	if err != nil && turnCtx.Err() != nil && ctx.Err() == nil {
		fmt.Fprintln(r.out, styles.HINT("(interrupted)"))
	}
	return err
}

func (r *REPL) goodbye() {
	fmt.Fprintln(r.out, styles.FAREWELL(GoodbyeMessage))
}
