// Package render draws the assistant's terminal output: plan and answer
// lines, tool activity, errors, the banner, and the progress spinner.
package render

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	ColorCyan   = lipgloss.Color("12") // Answers
	ColorYellow = lipgloss.Color("11") // Pending work, banner
	ColorGreen  = lipgloss.Color("10") // Success indicator
	ColorRed    = lipgloss.Color("9")  // Error indicator
	ColorGray   = lipgloss.Color("8")  // Dim/secondary (timing, args)
	ColorPurple = lipgloss.Color("13") // Plan lines
)

const (
	SymbolPlan          = "🧠"
	SymbolOutput        = "🤖"
	SymbolExec          = "▶" // Shell command start
	SymbolToolPending   = "○" // Tool executing
	SymbolToolComplete  = "●" // Tool complete
	SymbolSuccess       = "✓"
	SymbolError         = "✗"
	SymbolSystemMessage = "→"
)

var (
	PlanStyle          = lipgloss.NewStyle().Foreground(ColorPurple)
	OutputStyle        = lipgloss.NewStyle().Foreground(ColorCyan)
	HeaderStyle        = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
	ExecStartStyle     = lipgloss.NewStyle().Foreground(ColorYellow)
	ToolPendingStyle   = lipgloss.NewStyle().Foreground(ColorYellow)
	SuccessStyle       = lipgloss.NewStyle().Foreground(ColorGreen)
	ErrorStyle         = lipgloss.NewStyle().Foreground(ColorRed)
	DimStyle           = lipgloss.NewStyle().Foreground(ColorGray)
	SystemMessageStyle = lipgloss.NewStyle().Foreground(ColorGray)
)

// StyledSymbol returns a symbol with appropriate styling applied
func StyledSymbol(symbol string, success bool) string {
	switch symbol {
	case SymbolExec:
		return ExecStartStyle.Render(symbol)
	case SymbolToolPending:
		return ToolPendingStyle.Render(symbol)
	case SymbolToolComplete:
		if success {
			return SuccessStyle.Render(symbol)
		}
		return ErrorStyle.Render(symbol)
	case SymbolSuccess:
		return SuccessStyle.Render(symbol)
	case SymbolError:
		return ErrorStyle.Render(symbol)
	case SymbolSystemMessage:
		return SystemMessageStyle.Render(symbol)
	default:
		return symbol
	}
}
