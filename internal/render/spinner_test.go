package render

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lockedBuffer is a bytes.Buffer safe for the spinner goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestNewSpinner(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, 0)

	assert.Equal(t, []string{"|", "/", "-", "\\"}, s.frames)
	assert.Equal(t, 100*time.Millisecond, s.interval)

	s = NewSpinner(&buf, 5*time.Millisecond)
	assert.Equal(t, 5*time.Millisecond, s.interval)
}

func TestSpinnerStartStop(t *testing.T) {
	buf := &lockedBuffer{}
	s := NewSpinner(buf, 5*time.Millisecond)
	s.SetMessage("Command running...")

	stop := s.Start(context.Background())
	assert.True(t, s.Running())

	require.Eventually(t, func() bool { return s.FramesRendered() >= 3 }, time.Second, time.Millisecond)
	stop()

	assert.False(t, s.Running())
	output := buf.String()
	assert.Contains(t, output, "] Command running...")
	assert.True(t, strings.HasSuffix(output, ClearLine), "line must be cleared on stop")

	// Nothing is drawn after stop returns.
	settled := buf.String()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, settled, buf.String())
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := NewSpinner(&lockedBuffer{}, 5*time.Millisecond)
	stop := s.Start(context.Background())
	stop()
	stop()
	assert.False(t, s.Running())
}

func TestSpinnerDoubleStart(t *testing.T) {
	s := NewSpinner(&lockedBuffer{}, 5*time.Millisecond)

	stop1 := s.Start(context.Background())
	stop2 := s.Start(context.Background())
	stop2()
	assert.True(t, s.Running(), "second start must not own the goroutine")

	stop1()
	assert.False(t, s.Running())
}

func TestSpinnerStopsWithParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewSpinner(&lockedBuffer{}, 5*time.Millisecond)
	stop := s.Start(ctx)

	cancel()
	require.Eventually(t, func() bool { return !s.Running() }, time.Second, time.Millisecond)
	stop()
}

func TestSyncWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewSyncWriter(buf)
	assert.Same(t, w, NewSyncWriter(w))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = w.Write([]byte("line\n"))
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, strings.Count(buf.String(), "line\n"))
}
