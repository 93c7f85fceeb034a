package ports

// TerminalInput provides methods for reading user input from the terminal.
type TerminalInput interface {
	// ReadLine prompts and returns one line of input with the newline trimmed.
	ReadLine(prompt string) (string, error)
	// ReadPassword prompts for a secret without echoing it to the terminal.
	ReadPassword(prompt string) (string, error)
	// IsTerminal returns true if stdin is connected to a terminal.
	IsTerminal() bool
}
