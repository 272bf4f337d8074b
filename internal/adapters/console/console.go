// Package console implements ports.Console on top of an io.Reader, reading
// secrets without echo when the reader is a terminal.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/bft-labs/defendcode/internal/domain"
)

// Console reads operator input line by line.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	fd           int
	tty          bool
	readPassword func(fd int) ([]byte, error)
}

// New creates a Console reading from in and writing prompts to out.
// Secrets are read with term.ReadPassword only when in is a terminal.
func New(in io.Reader, out io.Writer) *Console {
	c := &Console{
		in:           bufio.NewReader(in),
		out:          out,
		fd:           -1,
		readPassword: term.ReadPassword,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		c.fd = int(f.Fd())
		c.tty = true
	}
	return c
}

// ReadLine writes prompt and returns the next line without its terminator.
// A final line without a newline is still returned; after that the
// console reports domain.ErrInputClosed.
func (c *Console) ReadLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)

	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", domain.NewIOError("read input", "", err)
		}
		if line == "" {
			return "", domain.ErrInputClosed
		}
	}
	return trimEOL(line), nil
}

// ReadSecret reads a line without echo on a terminal and falls back to
// ReadLine otherwise (pipes, tests).
func (c *Console) ReadSecret(prompt string) (string, error) {
	if !c.tty {
		return c.ReadLine(prompt)
	}

	fmt.Fprint(c.out, prompt)
	b, err := c.readPassword(c.fd)
	fmt.Fprintln(c.out)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", domain.ErrInputClosed
		}
		return "", domain.NewIOError("read secret", "", err)
	}
	return string(b), nil
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
