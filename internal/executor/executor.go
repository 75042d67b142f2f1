// Package executor runs shell commands for the tools. Commands are parsed
// and interpreted by mvdan.cc/sh, so they behave the same on every platform,
// and run with the session's working directory.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/atinylittleshell/codesh/internal/render"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// RunningMessage is shown next to the spinner while a long command runs.
const RunningMessage = "Command running..."

var separator = strings.Repeat("-", 40)

// Options control a single command run.
type Options struct {
	// Dir is the working directory. Empty means the process directory.
	Dir string
	// Stdin feeds the command. Nil means no input.
	Stdin io.Reader
	// Timeout bounds the run. Zero means no limit.
	Timeout time.Duration
}

// Executor runs commands and reports their output.
type Executor struct {
	out             *render.SyncWriter
	logger          *zap.Logger
	env             []string
	spinnerInterval time.Duration
	newSpinner      func(w io.Writer, interval time.Duration) *render.Spinner
}

// Option configures an Executor.
type Option func(*Executor)

// WithSpinnerInterval sets the frame interval of the long-running indicator.
func WithSpinnerInterval(d time.Duration) Option {
	return func(e *Executor) {
		e.spinnerInterval = d
	}
}

// WithEnv replaces the environment passed to commands.
func WithEnv(env []string) Option {
	return func(e *Executor) {
		e.env = env
	}
}

// New creates an Executor that prints streamed output to out.
func New(out io.Writer, logger *zap.Logger, opts ...Option) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Executor{
		out:    render.NewSyncWriter(out),
		logger: logger,
		// Pagers and credential prompts would block a non-interactive run.
		env: append(os.Environ(),
			"PAGER=cat",
			"GIT_PAGER=cat",
			"GIT_TERMINAL_PROMPT=0",
		),
		spinnerInterval: render.DefaultSpinnerInterval,
		newSpinner:      render.NewSpinner,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes command to completion and captures its merged output.
func (e *Executor) Run(ctx context.Context, command string, opts Options) (*Result, error) {
	var buf syncBuffer
	start := time.Now()

	exitCode, err := e.run(ctx, command, opts, &buf)
	result := &Result{
		Command:  command,
		Output:   buf.String(),
		ExitCode: exitCode,
		Duration: time.Since(start),
	}
	return e.finish(result, opts, err)
}

// Stream executes command and prints each output line as soon as it is
// complete. All lines are also collected into the result.
func (e *Executor) Stream(ctx context.Context, command string, opts Options) (*Result, error) {
	return e.stream(ctx, command, opts, false)
}

// RunLongRunning streams command while a spinner animates on the current
// line. The spinner is stopped and its line cleared before returning, on
// every path.
func (e *Executor) RunLongRunning(ctx context.Context, command string, opts Options) (*Result, error) {
	spinner := e.newSpinner(e.out, e.spinnerInterval)
	spinner.SetMessage(RunningMessage)
	stop := spinner.Start(ctx)
	defer stop()

	return e.stream(ctx, command, opts, true)
}

func (e *Executor) stream(ctx context.Context, command string, opts Options, overSpinner bool) (*Result, error) {
	prefix := ""
	if overSpinner {
		prefix = render.ClearLine
	}
	printLine := func(s string) {
		fmt.Fprintf(e.out, "%s%s\n", prefix, s)
	}

	printLine("")
	printLine("Executing command: " + command)
	printLine("Command output:")
	printLine(render.DimStyle.Render(separator))

	lw := newLineWriter(func(line string) {
		printLine("  " + line)
	})

	start := time.Now()
	exitCode, err := e.run(ctx, command, opts, lw)
	lw.Flush()
	printLine(render.DimStyle.Render(separator))

	lines := lw.Lines()
	var output strings.Builder
	for _, line := range lines {
		output.WriteString(line)
		output.WriteByte('\n')
	}

	result := &Result{
		Command:  command,
		Output:   output.String(),
		Lines:    lines,
		ExitCode: exitCode,
		Duration: time.Since(start),
		Streamed: true,
	}
	return e.finish(result, opts, err)
}

func (e *Executor) finish(result *Result, opts Options, err error) (*Result, error) {
	if errors.Is(err, context.DeadlineExceeded) && opts.Timeout > 0 {
		e.logger.Warn("command timed out",
			zap.String("command", result.Command),
			zap.Duration("timeout", opts.Timeout))
		return result, &TimeoutError{Command: result.Command, Timeout: opts.Timeout, Partial: result}
	}
	if err != nil {
		e.logger.Debug("command failed", zap.String("command", result.Command), zap.Error(err))
		return result, err
	}

	e.logger.Debug("command finished",
		zap.String("command", result.Command),
		zap.Int("exit_code", result.ExitCode),
		zap.Duration("duration", result.Duration),
		zap.Bool("streamed", result.Streamed))
	return result, nil
}

// run parses and interprets command, sending stdout and stderr to w.
// A non-zero exit status is returned as the exit code with a nil error.
func (e *Executor) run(ctx context.Context, command string, opts Options, w io.Writer) (int, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return 0, fmt.Errorf("failed to parse command: %w", err)
	}

	runnerOpts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(e.env...)),
		interp.StdIO(opts.Stdin, w, w),
		interp.ExecHandlers(e.logExec),
	}
	if opts.Dir != "" {
		runnerOpts = append(runnerOpts, interp.Dir(opts.Dir))
	}
	runner, err := interp.New(runnerOpts...)
	if err != nil {
		return 0, fmt.Errorf("failed to create shell runner: %w", err)
	}

	runCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	err = runner.Run(runCtx, prog)
	if ctxErr := runCtx.Err(); ctxErr != nil {
		return 0, ctxErr
	}
	if err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return int(exitStatus), nil
		}
		return 0, fmt.Errorf("command execution failed: %w", err)
	}
	return 0, nil
}

func (e *Executor) logExec(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		e.logger.Debug("exec", zap.Strings("args", args), zap.String("dir", interp.HandlerCtx(ctx).Dir))
		return next(ctx, args)
	}
}

// syncBuffer provides a thread-safe wrapper around bytes.Buffer
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
