package console

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/bft-labs/defendcode/internal/domain"
	"github.com/bft-labs/defendcode/internal/ports"
)

var _ ports.Console = (*Console)(nil)

func TestConsole_ReadLine(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("Ada\r\nO'Brien-Smith\nlast-no-newline"), &out)

	for _, want := range []string{"Ada", "O'Brien-Smith", "last-no-newline"} {
		got, err := c.ReadLine("> ")
		if err != nil {
			t.Fatalf("ReadLine: %v", err)
		}
		if got != want {
			t.Errorf("ReadLine() = %q, want %q", got, want)
		}
	}

	if _, err := c.ReadLine("> "); !errors.Is(err, domain.ErrInputClosed) {
		t.Errorf("ReadLine() at EOF error = %v, want ErrInputClosed", err)
	}
	if got := out.String(); got != "> > > > " {
		t.Errorf("prompts = %q", got)
	}
}

func TestConsole_ReadLinePreservesBlanks(t *testing.T) {
	c := New(strings.NewReader("  spaced  \n\n"), io.Discard)

	got, err := c.ReadLine("")
	if err != nil || got != "  spaced  " {
		t.Errorf("ReadLine() = %q, %v", got, err)
	}
	got, err = c.ReadLine("")
	if err != nil || got != "" {
		t.Errorf("ReadLine() empty line = %q, %v", got, err)
	}
}

func TestConsole_ReadSecretFallsBackWithoutTerminal(t *testing.T) {
	c := New(strings.NewReader("Abcdef1!\n"), io.Discard)
	got, err := c.ReadSecret("Enter a password: ")
	if err != nil || got != "Abcdef1!" {
		t.Errorf("ReadSecret() = %q, %v", got, err)
	}
}

func TestConsole_ReadSecretOnTerminal(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out)
	c.tty = true
	c.readPassword = func(int) ([]byte, error) { return []byte("Secret1!"), nil }

	got, err := c.ReadSecret("pw: ")
	if err != nil || got != "Secret1!" {
		t.Fatalf("ReadSecret() = %q, %v", got, err)
	}
	if out.String() != "pw: \n" {
		t.Errorf("output = %q, want prompt then newline", out.String())
	}

	c.readPassword = func(int) ([]byte, error) { return nil, io.EOF }
	if _, err := c.ReadSecret("pw: "); !errors.Is(err, domain.ErrInputClosed) {
		t.Errorf("ReadSecret() at EOF error = %v, want ErrInputClosed", err)
	}
}
