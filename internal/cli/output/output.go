package output

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// ColorsEnabled returns true if terminal colors should be used.
// Respects NO_COLOR environment variable (https://no-color.org/)
func ColorsEnabled() bool {
	_, noColor := os.LookupEnv("NO_COLOR")
	if noColor {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ANSI color codes
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
	white  = "\033[37m"
)

// Symbols for CLI output (ASCII-compatible)
const (
	SymbolSuccess = "+"
	SymbolError   = "x"
	SymbolWarning = "!"
	SymbolInfo    = "*"
	SymbolArrow   = "->"
)

func colorize(code, text string) string {
	if !ColorsEnabled() {
		return text
	}
	return fmt.Sprintf("%s%s%s", code, text, reset)
}

// Bold returns text in bold (or plain if colors disabled)
func Bold(text string) string { return colorize(bold, text) }

// Dim returns text in dim style (or plain if colors disabled)
func Dim(text string) string { return colorize(dim, text) }

// Success returns text styled for success messages
func Success(text string) string { return colorize(green, text) }

// Error returns text styled for error messages
func Error(text string) string { return colorize(red, text) }

// Warning returns text styled for warning messages
func Warning(text string) string { return colorize(yellow, text) }

// Info returns text styled for informational messages
func Info(text string) string { return colorize(cyan, text) }

// Header returns text styled as a section header
func Header(text string) string { return colorize(bold+white, text) }

// PrintHeader prints a bold section header
func PrintHeader(text string) {
	fmt.Println(Header(text))
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("%s %s\n", Success(SymbolSuccess), Success(message))
}

// PrintError prints an error message to stderr
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", Error(SymbolError), Error(message))
}

// PrintWarning prints a warning message to stderr
func PrintWarning(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", Warning(SymbolWarning), Warning(message))
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	fmt.Printf("%s %s\n", Info(SymbolInfo), Info(message))
}

// PrintStep prints a step being executed with arrow
func PrintStep(message string) {
	fmt.Printf("  %s %s\n", SymbolArrow, message)
}

// PrintHint prints a concrete next-step command the user can run to
// troubleshoot, e.g. after a readiness timeout.
func PrintHint(description, command string) {
	fmt.Printf("  %s %s:\n      %s\n", SymbolArrow, description, Dim(command))
}

// PrintDiagnostics prints a raw multi-line diagnostic dump, dimmed.
func PrintDiagnostics(dump string) {
	if dump == "" {
		return
	}
	fmt.Println(Dim(dump))
}
