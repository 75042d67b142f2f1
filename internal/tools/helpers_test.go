package tools

import (
	"bytes"
	"context"
	"testing"

	"github.com/atinylittleshell/codesh/internal/executor"
	"github.com/atinylittleshell/codesh/internal/model"
	"github.com/atinylittleshell/codesh/internal/render"
	"github.com/atinylittleshell/codesh/internal/session"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	*Env
	dir     string
	gateway *model.MockGateway
	out     *bytes.Buffer
}

func newTestEnv(t *testing.T, replies ...string) *testEnv {
	t.Helper()

	dir := t.TempDir()
	sess, err := session.New(dir)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	gateway := model.NewMockGateway(replies...)
	return &testEnv{
		Env: &Env{
			Session:  sess,
			Gateway:  gateway,
			Executor: executor.New(out, zap.NewNop()),
			Renderer: render.New(out, func() int { return 80 }),
			Logger:   zap.NewNop(),
		},
		dir:     dir,
		gateway: gateway,
		out:     out,
	}
}

func (e *testEnv) invoke(t *testing.T, tool *Tool, input string) (any, error) {
	t.Helper()
	args, err := ParseArgs([]byte(input))
	require.NoError(t, err)
	return Invoke(context.Background(), e.Env, tool, args)
}
