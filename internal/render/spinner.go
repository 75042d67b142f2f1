package render

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// DefaultSpinnerInterval is the frame interval of the line spinner.
var DefaultSpinnerInterval = spinner.Line.FPS

// Spinner animates a "[|] message" indicator on the current line until stopped.
type Spinner struct {
	writer   io.Writer
	frames   []string
	interval time.Duration
	mu       sync.Mutex
	running  bool
	message  string
	rendered int           // frames drawn since Start
	done     chan struct{} // closed once the goroutine has cleared the line
}

// NewSpinner creates a spinner using the line frame set. A non-positive
// interval selects DefaultSpinnerInterval.
func NewSpinner(writer io.Writer, interval time.Duration) *Spinner {
	if interval <= 0 {
		interval = DefaultSpinnerInterval
	}
	return &Spinner{
		writer:   writer,
		frames:   spinner.Line.Frames,
		interval: interval,
	}
}

// SetMessage sets the message to display after the spinner
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// Running reports whether the animation goroutine is alive.
func (s *Spinner) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// FramesRendered returns how many frames were drawn by the last run.
func (s *Spinner) FramesRendered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rendered
}

// Start begins the animation and returns a stop function.
// The stop function blocks until the goroutine has exited and cleared the line.
// It is safe to call more than once.
func (s *Spinner) Start(ctx context.Context) func() {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return func() { cancel() }
	}
	s.running = true
	s.rendered = 0
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	go s.run(ctx)

	return func() {
		cancel()
		<-done
	}
}

func (s *Spinner) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	frameIndex := 0
	s.renderFrame(frameIndex)

	for {
		select {
		case <-ctx.Done():
			s.clearLine()
			s.mu.Lock()
			s.running = false
			done := s.done
			s.mu.Unlock()
			close(done)
			return
		case <-ticker.C:
			frameIndex = (frameIndex + 1) % len(s.frames)
			s.renderFrame(frameIndex)
		}
	}
}

func (s *Spinner) renderFrame(frameIndex int) {
	s.mu.Lock()
	message := s.message
	s.rendered++
	s.mu.Unlock()

	frame := ToolPendingStyle.Render(s.frames[frameIndex])
	if message != "" {
		fmt.Fprintf(s.writer, "\r\033[K[%s] %s", frame, message)
	} else {
		fmt.Fprintf(s.writer, "\r\033[K[%s]", frame)
	}
}

func (s *Spinner) clearLine() {
	fmt.Fprint(s.writer, ClearLine)
}

// ClearLine returns the cursor to column zero and erases the line.
const ClearLine = "\r\033[K"
