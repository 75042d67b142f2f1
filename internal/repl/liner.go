package repl

import "github.com/peterh/liner"

// NewLineReader returns a terminal line editor with an in-memory history.
// Ctrl+C at the prompt aborts it with liner.ErrPromptAborted.
func NewLineReader() *liner.State {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetMultiLineMode(true)
	return line
}
