package repl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeReader struct {
	lines   []string
	err     error
	history []string
	closed  bool
}

func (f *fakeReader) Prompt(string) (string, error) {
	if len(f.lines) == 0 {
		if f.err != nil {
			return "", f.err
		}
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func (f *fakeReader) AppendHistory(item string) {
	f.history = append(f.history, item)
}

func (f *fakeReader) Close() error {
	f.closed = true
	return nil
}

type fakeAgent struct {
	inputs []string
	err    error
	run    func(ctx context.Context, input string) error
}

func (f *fakeAgent) RunTurn(ctx context.Context, input string) error {
	f.inputs = append(f.inputs, input)
	if f.run != nil {
		return f.run(ctx, input)
	}
	return f.err
}

func newTestREPL(t *testing.T, reader *fakeReader, agent *fakeAgent) (*REPL, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	r, err := New(Options{
		Reader: reader,
		Agent:  agent,
		Out:    out,
		Mode:   "files",
		Logger: zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	return r, out
}

func TestNewRequiresReaderAndAgent(t *testing.T) {
	_, err := New(Options{Agent: &fakeAgent{}})
	assert.Error(t, err)
	_, err = New(Options{Reader: &fakeReader{}})
	assert.Error(t, err)
}

func TestRunDispatchesInput(t *testing.T) {
	reader := &fakeReader{lines: []string{"  ", "  list files  ", "HELP", "create a.txt", " Exit ", "never read"}}
	agent := &fakeAgent{}
	r, out := newTestREPL(t, reader, agent)

	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, []string{"list files", "create a.txt"}, agent.inputs)
	assert.Equal(t, []string{"list files", "create a.txt"}, reader.history)
	assert.Equal(t, []string{"never read"}, reader.lines)
	assert.Contains(t, out.String(), "Available operations:")
	assert.Contains(t, out.String(), GoodbyeMessage)
	assert.True(t, reader.closed)
}

func TestRunContinuesAfterFailedTurn(t *testing.T) {
	reader := &fakeReader{lines: []string{"first", "second", "exit"}}
	agent := &fakeAgent{err: errors.New("Invalid JSON response from assistant.")}
	r, _ := newTestREPL(t, reader, agent)

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, []string{"first", "second"}, agent.inputs)
}

func TestRunExitsOnEOFAndAbort(t *testing.T) {
	for _, readErr := range []error{io.EOF, liner.ErrPromptAborted} {
		t.Run(readErr.Error(), func(t *testing.T) {
			reader := &fakeReader{err: readErr}
			r, out := newTestREPL(t, reader, &fakeAgent{})

			require.NoError(t, r.Run(context.Background()))
			assert.Contains(t, out.String(), GoodbyeMessage)
		})
	}
}

func TestRunReportsReadFailure(t *testing.T) {
	reader := &fakeReader{err: errors.New("tty gone")}
	r, _ := newTestREPL(t, reader, &fakeAgent{})

	err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty gone")
}

func TestInterruptCancelsOnlyTheTurn(t *testing.T) {
	reader := &fakeReader{lines: []string{"slow task", "next task", "exit"}}
	agent := &fakeAgent{
		run: func(ctx context.Context, input string) error {
			if input == "slow task" {
				<-ctx.Done()
				return ctx.Err()
			}
			return nil
		},
	}
	r, out := newTestREPL(t, reader, agent)

	// Simulate Ctrl+C arriving during the first turn.
	interrupted := false
	r.notify = func(ctx context.Context) (context.Context, context.CancelFunc) {
		turnCtx, cancel := context.WithCancel(ctx)
		if !interrupted {
			interrupted = true
			cancel()
		}
		return turnCtx, cancel
	}

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, []string{"slow task", "next task"}, agent.inputs)
	assert.Contains(t, out.String(), "(interrupted)")
}

func TestRunOnce(t *testing.T) {
	reader := &fakeReader{}
	agent := &fakeAgent{}
	r, _ := newTestREPL(t, reader, agent)

	require.NoError(t, r.RunOnce(context.Background(), "  build it "))
	assert.Equal(t, []string{"build it"}, agent.inputs)
	assert.True(t, reader.closed)
}
