// Package output provides terminal output formatting utilities for the jiracommit CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintSeparator prints a dim line with label centered, sized to the terminal.
func PrintSeparator(out io.Writer, label string) {
	termWidth := GetTerminalWidth()
	magenta := color.New(color.FgMagenta, color.Faint).SprintFunc()

	label = " " + label + " "
	lineLen := (termWidth - len(label)) / 2
	if lineLen < 3 {
		lineLen = 3
	}

	line := strings.Repeat("─", lineLen)
	fmt.Fprintf(out, "%s%s%s\n", magenta(line), magenta(label), magenta(line))
}

// PrintSuccess prints a green checkmark followed by message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintNote prints a dim informational line.
func PrintNote(out io.Writer, format string, args ...any) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintln(out, dim(fmt.Sprintf(format, args...)))
}

// PrintDerived prints a branch and the commit message derived from it.
// A branch without a message is shown with a dim placeholder.
func PrintDerived(out io.Writer, branch, message string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if branch == "" {
		branch = "(detached HEAD)"
	}
	if message == "" {
		fmt.Fprintf(out, "%s %s %s\n", cyan(branch), dim("→"), dim("(no issue key)"))
		return
	}
	fmt.Fprintf(out, "%s %s %s\n", cyan(branch), dim("→"), white(message))
}

// Key renders a key or path in the style used for labels in command output.
func Key(s string) string {
	return color.New(color.FgCyan).Sprint(s)
}
