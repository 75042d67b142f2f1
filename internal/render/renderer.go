package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rivo/uniseg"
	"github.com/samber/lo"
)

const maxArgWidth = 60

// Renderer handles all assistant output in the terminal.
type Renderer struct {
	writer    io.Writer
	termWidth func() int
}

// New creates a new Renderer. termWidth may be nil.
func New(writer io.Writer, termWidth func() int) *Renderer {
	return &Renderer{
		writer:    writer,
		termWidth: termWidth,
	}
}

// RenderPlan prints a plan step.
func (r *Renderer) RenderPlan(content string) {
	r.renderPrefixed(SymbolPlan, PlanStyle, content)
}

// RenderOutput prints the final answer of a turn.
func (r *Renderer) RenderOutput(content string) {
	r.renderPrefixed(SymbolOutput, OutputStyle, content)
}

func (r *Renderer) renderPrefixed(symbol string, style lipgloss.Style, content string) {
	prefix := symbol + ": "
	wrapped := wordwrap.String(content, r.getTerminalWidth()-uniseg.StringWidth(prefix))
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	fmt.Fprintln(r.writer, prefix+strings.Join(lines, "\n"))
}

// RenderToolExecuting prints the pending line for a tool call with its arguments.
func (r *Renderer) RenderToolExecuting(toolName string, args map[string]any) {
	fmt.Fprintf(r.writer, "%s %s\n", StyledSymbol(SymbolToolPending, true), toolName)
	for _, line := range formatArgs(args) {
		fmt.Fprintln(r.writer, DimStyle.Render(line))
	}
}

// RenderToolComplete prints the completion line for a tool call. A non-nil
// err marks the call as failed and is shown underneath.
func (r *Renderer) RenderToolComplete(toolName string, duration time.Duration, err error) {
	success := err == nil
	mark := SymbolSuccess
	if !success {
		mark = SymbolError
	}
	fmt.Fprintf(r.writer, "%s %s %s %s\n",
		StyledSymbol(SymbolToolComplete, success),
		toolName,
		StyledSymbol(mark, success),
		DimStyle.Render(fmt.Sprintf("(%.1fs)", duration.Seconds())))
	if err != nil {
		fmt.Fprintln(r.writer, DimStyle.Render("   "+truncate(firstLine(err.Error()), r.getTerminalWidth()-3)))
	}
}

// RenderExecStart prints the header shown before a shell command runs.
func (r *Renderer) RenderExecStart(command string) {
	fmt.Fprintf(r.writer, "%s %s\n", StyledSymbol(SymbolExec, true), command)
}

// RenderExecEnd prints the footer shown after a shell command exits.
func (r *Renderer) RenderExecEnd(command string, duration time.Duration, exitCode int) {
	commandFirstWord := command
	if idx := strings.Index(command, " "); idx > 0 {
		commandFirstWord = command[:idx]
	}

	if exitCode == 0 {
		fmt.Fprintf(r.writer, "%s %s %s\n", StyledSymbol(SymbolSuccess, true), commandFirstWord,
			DimStyle.Render(fmt.Sprintf("(%.1fs)", duration.Seconds())))
		return
	}
	fmt.Fprintf(r.writer, "%s %s %s exit code %d\n", StyledSymbol(SymbolError, false), commandFirstWord,
		DimStyle.Render(fmt.Sprintf("(%.1fs)", duration.Seconds())), exitCode)
}

// RenderError prints a local error that ended the current turn.
func (r *Renderer) RenderError(message string) {
	fmt.Fprintln(r.writer, ErrorStyle.Render("Error: "+message))
}

// RenderSystemMessage renders a system/status message with → prefix
func (r *Renderer) RenderSystemMessage(message string) {
	fmt.Fprintln(r.writer, SystemMessageStyle.Render(fmt.Sprintf("%s %s", SymbolSystemMessage, message)))
}

// RenderProgress prints a progress line emitted by a long tool, such as project generation.
func (r *Renderer) RenderProgress(message string) {
	fmt.Fprintln(r.writer, message)
}

// formatArgs formats tool arguments for display, one line per argument in key order.
func formatArgs(args map[string]any) []string {
	keys := lo.Keys(args)
	sort.Strings(keys)

	return lo.Map(keys, func(k string, _ int) string {
		value := strings.ReplaceAll(fmt.Sprintf("%v", args[k]), "\n", " ")
		return fmt.Sprintf("   %s: %s", k, truncate(value, maxArgWidth))
	})
}

// truncate shortens s to at most width terminal cells, appending "..." when cut.
func truncate(s string, width int) string {
	if width <= 3 || uniseg.StringWidth(s) <= width {
		return s
	}

	var sb strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > width-3 {
			break
		}
		sb.WriteString(g.Str())
		used += w
	}
	return sb.String() + "..."
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// getTerminalWidth returns the current terminal width, with a sensible default
func (r *Renderer) getTerminalWidth() int {
	if r.termWidth != nil {
		width := r.termWidth()
		if width > 0 {
			return width
		}
	}
	return 80
}
