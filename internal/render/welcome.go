package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// WelcomeInfo contains information to display in the welcome screen.
type WelcomeInfo struct {
	Version string
	Model   string
	// Mode is the active tool set, "files" or "shell".
	Mode string
}

var codeshLogo = []string{
	"               _           _     ",
	"  ___ ___   __| | ___  ___| |__  ",
	" / __/ _ \\ / _` |/ _ \\/ __| '_ \\ ",
	"| (_| (_) | (_| |  __/\\__ \\ | | |",
	" \\___\\___/ \\__,_|\\___||___/_| |_|",
}

// RenderWelcome renders the banner shown at startup.
func RenderWelcome(w io.Writer, info WelcomeInfo, termWidth int) {
	logoStyle := lipgloss.NewStyle().Foreground(ColorYellow)
	titleStyle := lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(ColorGray)
	valueStyle := lipgloss.NewStyle().Foreground(ColorYellow)
	dimStyle := lipgloss.NewStyle().Foreground(ColorGray).Italic(true)

	var sb strings.Builder
	sb.WriteString("\n")
	if termWidth >= lipgloss.Width(codeshLogo[0]) {
		for _, line := range codeshLogo {
			sb.WriteString(logoStyle.Render(line) + "\n")
		}
		sb.WriteString("\n")
	}

	title := "Code Generation and File Creation Agent"
	if info.Mode == "shell" {
		title = "Code Generation and Shell Command Agent"
	}
	sb.WriteString(titleStyle.Render(title) + "\n\n")

	version := dimStyle.Render("development")
	if info.Version != "" && info.Version != "dev" {
		version = valueStyle.Render(info.Version)
	}
	sb.WriteString(labelStyle.Render("version: ") + version + "\n")
	sb.WriteString(labelStyle.Render("model:   ") + valueStyle.Render(info.Model) + "\n")
	sb.WriteString(labelStyle.Render("mode:    ") + valueStyle.Render(info.Mode) + "\n\n")

	sb.WriteString(dimStyle.Render("Type 'help' for available commands") + "\n")
	sb.WriteString(dimStyle.Render("Type 'exit' to quit") + "\n\n")

	fmt.Fprint(w, sb.String())
}

var filesHelp = []string{
	"Generate code: 'Create a function to calculate Fibonacci numbers'",
	"Create files: 'Create a file named app.py with a Flask app'",
	"Generate projects: 'Create a React todo app with Vite and Tailwind in ./todo-app'",
	"Explain code: 'Explain this code: <paste code here>'",
	"Improve code: 'Improve this code for performance: <paste code here>'",
	"Generate tests: 'Write tests for: <paste code here>'",
	"File operations: Create, read, update files",
	"Directory operations: List, create, navigate directories",
}

var shellHelp = []string{
	"File & Directory operations: 'List files in current directory', 'Create a new folder called projects'",
	"Generate code: 'Create a function to calculate Fibonacci numbers'",
	"Create files: 'Create a file named app.py with a Flask app'",
	"Generate projects: 'Create a React todo app with Vite and Tailwind in ./todo-app'",
	"Explain code: 'Explain this code: <paste code here>'",
	"Improve code: 'Improve this code for performance: <paste code here>'",
	"Generate tests: 'Write tests for: <paste code here>'",
}

// RenderHelp prints the static usage text for mode.
func RenderHelp(w io.Writer, mode string) {
	entries := filesHelp
	if mode == "shell" {
		entries = shellHelp
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, HeaderStyle.Render("Available operations:"))
	for _, entry := range entries {
		fmt.Fprintf(w, "  - %s\n", entry)
	}
	if mode == "shell" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, DimStyle.Render("Commands are automatically generated and executed based on natural language descriptions"))
	} else {
		fmt.Fprintln(w, DimStyle.Render("    - 'cd projects' to change directory"))
		fmt.Fprintln(w, DimStyle.Render("    - 'pwd' to show current directory"))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Type 'exit' to quit")
	fmt.Fprintln(w)
}
