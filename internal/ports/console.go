package ports

// Console reads operator input. Each call writes prompt and blocks until a
// full line is available.
type Console interface {
	// ReadLine returns the next line without its line terminator.
	// Returns domain.ErrInputClosed when the input ends.
	ReadLine(prompt string) (string, error)

	// ReadSecret is ReadLine without echo when the input is a terminal.
	ReadSecret(prompt string) (string, error)
}
