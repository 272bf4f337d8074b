package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	fsadapter "github.com/bft-labs/defendcode/internal/adapters/fs"
	logadapter "github.com/bft-labs/defendcode/internal/adapters/log"
	"github.com/bft-labs/defendcode/internal/domain"
	"github.com/bft-labs/defendcode/internal/report"
	"github.com/bft-labs/defendcode/internal/testutil"
)

type harness struct {
	dir     string
	console *testutil.ScriptedConsole
	sink    *testutil.RecordingSink
	out     *bytes.Buffer
	store   *fsadapter.CredentialFile
}

func newHarness(t *testing.T, lines ...string) *harness {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "in.txt"), []byte("hello\nworld\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return &harness{
		dir:     dir,
		console: testutil.NewScriptedConsole(lines...),
		sink:    &testutil.RecordingSink{},
		out:     &bytes.Buffer{},
		store:   fsadapter.NewCredentialFile(filepath.Join(dir, fsadapter.DefaultCredentialFileName)),
	}
}

func (h *harness) session(summary bool) *Session {
	cfg := SessionConfig{
		WorkDir:       h.dir,
		Extensions:    []string{".txt"},
		MaxInputBytes: 1 << 20,
		Summary:       summary,
		ReservedPaths: h.reserved(),
	}
	return NewSession(cfg, h.console, h.out, h.store, h.sink, logadapter.NoopLogger{})
}

func (h *harness) reserved() []string {
	return []string{h.store.Path(), filepath.Join(h.dir, "error_log.txt")}
}

func TestSession_Completes(t *testing.T) {
	h := newHarness(t, "Ada", "Lovelace", "3", "-4", "in.txt", "out.txt", "Abcdef1!", "Abcdef1!")

	res, err := h.session(true).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := report.Report{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		FirstInteger:  3,
		SecondInteger: -4,
		Sum:           -1,
		Product:       -12,
		InputFileName: "in.txt",
		InputContents: "hello\nworld\n",
	}
	if diff := cmp.Diff(want, res.Report); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}

	got, err := os.ReadFile(filepath.Join(h.dir, "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	var rendered bytes.Buffer
	if err := want.Render(&rendered); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(rendered.String(), string(got)); diff != "" {
		t.Errorf("output file mismatch (-want +got):\n%s", diff)
	}

	stored, err := h.store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(res.Credential, stored); diff != "" {
		t.Errorf("credential mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(string(got), "Abcdef1!") || strings.Contains(h.out.String(), "Abcdef1!") {
		t.Error("password leaked into output")
	}

	for _, s := range []string{"You entered: 3 and -4", "Valid input file selected: in.txt", "OUTPUT SUMMARY", "Program executed successfully!"} {
		if !strings.Contains(h.out.String(), s) {
			t.Errorf("operator output missing %q", s)
		}
	}
}

func TestSession_SummaryDisabled(t *testing.T) {
	h := newHarness(t, "Ada", "Lovelace", "1", "2", "in.txt", "out.txt", "Abcdef1!", "Abcdef1!")

	if _, err := h.session(false).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.Contains(h.out.String(), "OUTPUT SUMMARY") {
		t.Error("summary printed while disabled")
	}
}

func TestSession_RepromptsUntilValid(t *testing.T) {
	h := newHarness(t,
		"1Ada", "Ada",
		"Lovelace-", "Lovelace",
		"abc", "2147483648", "5",
		"6",
		"in.md", "../in.txt", "missing.txt", "in.txt",
		"IN.txt", "out.txt",
		"short", "Abcdef1!", "Abcdef1?", "Abcdef1!",
	)

	res, err := h.session(false).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Report.Sum != 11 || res.Report.Product != 30 {
		t.Errorf("sum/product = %d/%d, want 11/30", res.Report.Sum, res.Report.Product)
	}
	if h.console.Remaining() != 0 {
		t.Errorf("%d lines left unread", h.console.Remaining())
	}

	for _, label := range []string{"first name", "last name", "first integer", "input file", "output file", "password"} {
		if !h.sink.Contains(domain.SeverityWarn, label) {
			t.Errorf("no warning recorded for %s", label)
		}
	}
}

func TestSession_Overflow(t *testing.T) {
	tests := []struct {
		name   string
		first  string
		second string
		op     string
	}{
		{name: "addition", first: "2147483647", second: "1", op: "addition"},
		{name: "multiplication", first: "65536", second: "65536", op: "multiplication"},
		{name: "negative addition", first: "-2147483648", second: "-1", op: "addition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "Ada", "Lovelace", tt.first, tt.second, "in.txt", "out.txt")

			_, err := h.session(false).Run(context.Background())
			if !errors.Is(err, domain.ErrOverflow) {
				t.Fatalf("expected ErrOverflow, got %v", err)
			}
			var oe *domain.OverflowError
			if !errors.As(err, &oe) || oe.Op != tt.op {
				t.Fatalf("expected overflow during %s, got %v", tt.op, err)
			}
			if h.console.Remaining() != 2 {
				t.Errorf("file prompts ran after overflow")
			}
			if !h.sink.Contains(domain.SeverityError, "overflow") {
				t.Error("overflow not recorded")
			}
			if _, err := os.Stat(filepath.Join(h.dir, "out.txt")); !os.IsNotExist(err) {
				t.Errorf("output file exists after overflow: %v", err)
			}
		})
	}
}

func TestSession_InputClosed(t *testing.T) {
	h := newHarness(t, "Ada")

	_, err := h.session(false).Run(context.Background())
	if !errors.Is(err, domain.ErrInputClosed) {
		t.Fatalf("expected ErrInputClosed, got %v", err)
	}
	if !h.sink.Contains(domain.SeverityWarn, "session ended early") {
		t.Error("early end not recorded")
	}
	if strings.Contains(h.out.String(), "successfully") {
		t.Error("success reported for an incomplete session")
	}
}

func TestSession_Canceled(t *testing.T) {
	h := newHarness(t, "Ada", "Lovelace")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.session(false).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type resetFailStore struct {
	*fsadapter.CredentialFile
}

func (resetFailStore) Reset(ctx context.Context) error {
	return domain.NewIOError("reset credential file", "password.txt", errors.New("read-only file system"))
}

func TestSession_ResetFailure(t *testing.T) {
	h := newHarness(t, "Ada")
	cfg := SessionConfig{WorkDir: h.dir}
	s := NewSession(cfg, h.console, h.out, resetFailStore{h.store}, h.sink, logadapter.NoopLogger{})

	_, err := s.Run(context.Background())
	if !errors.Is(err, domain.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	if h.console.Remaining() != 1 {
		t.Error("prompted after reset failure")
	}
}

type panicConsole struct{}

func (panicConsole) ReadLine(prompt string) (string, error)   { panic("console exploded") }
func (panicConsole) ReadSecret(prompt string) (string, error) { panic("console exploded") }

func TestSession_RecoversPanic(t *testing.T) {
	h := newHarness(t)
	cfg := SessionConfig{WorkDir: h.dir}
	s := NewSession(cfg, panicConsole{}, h.out, h.store, h.sink, logadapter.NoopLogger{})

	_, err := s.Run(context.Background())
	if !errors.Is(err, domain.ErrUnexpected) {
		t.Fatalf("expected ErrUnexpected, got %v", err)
	}
	if !h.sink.Contains(domain.SeverityError, "console exploded") {
		t.Error("panic not recorded")
	}
}

func TestSession_RejectsOwnFiles(t *testing.T) {
	h := newHarness(t,
		"Ada", "Lovelace", "1", "2",
		"password.txt", "in.txt",
		"password.txt", "PASSWORD.TXT", "error_log.txt", "out.txt",
		"Abcdef1!", "Abcdef1!",
	)

	res, err := h.session(false).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Output.Name != "out.txt" {
		t.Errorf("output = %q, want out.txt", res.Output.Name)
	}
	if h.console.Remaining() != 0 {
		t.Errorf("%d lines left unread", h.console.Remaining())
	}

	stored, err := h.store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(res.Credential, stored); diff != "" {
		t.Errorf("credential file overwritten (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(h.dir, "error_log.txt")); !os.IsNotExist(err) {
		t.Errorf("log path was created by output validation: %v", err)
	}

	for _, label := range []string{"input file", "output file"} {
		if !h.sink.Contains(domain.SeverityWarn, label+": 'password.txt' is used by this program") {
			t.Errorf("no reserved-file rejection recorded for %s", label)
		}
	}
}

// growingConsole appends to a file before the first secret is read,
// simulating an input file that changes after it was validated.
type growingConsole struct {
	*testutil.ScriptedConsole
	grow func()
}

func (c *growingConsole) ReadSecret(prompt string) (string, error) {
	if c.grow != nil {
		c.grow()
		c.grow = nil
	}
	return c.ScriptedConsole.ReadSecret(prompt)
}

func TestSession_InputGrowsPastLimit(t *testing.T) {
	h := newHarness(t, "Ada", "Lovelace", "1", "2", "in.txt", "out.txt", "Abcdef1!", "Abcdef1!")
	console := &growingConsole{
		ScriptedConsole: h.console,
		grow: func() {
			f, err := os.OpenFile(filepath.Join(h.dir, "in.txt"), os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			if _, err := f.WriteString(strings.Repeat("x", 32)); err != nil {
				t.Fatal(err)
			}
		},
	}
	cfg := SessionConfig{WorkDir: h.dir, MaxInputBytes: 16, ReservedPaths: h.reserved()}

	_, err := NewSession(cfg, console, h.out, h.store, h.sink, logadapter.NoopLogger{}).Run(context.Background())
	if !errors.Is(err, domain.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	if !strings.Contains(err.Error(), "byte limit") {
		t.Errorf("error = %v, want size limit failure", err)
	}
	if got, _ := os.ReadFile(filepath.Join(h.dir, "out.txt")); len(got) != 0 {
		t.Errorf("report written despite failure: %q", got)
	}
	if strings.Contains(h.out.String(), "successfully written") {
		t.Error("success reported after read failure")
	}
}
