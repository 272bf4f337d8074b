package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bft-labs/defendcode/internal/domain"
	"github.com/bft-labs/defendcode/internal/password"
	"github.com/bft-labs/defendcode/internal/ports"
	"github.com/bft-labs/defendcode/internal/prompt"
	"github.com/bft-labs/defendcode/internal/report"
	"github.com/bft-labs/defendcode/internal/rules"
)

// SessionConfig contains configuration for one interactive session.
type SessionConfig struct {
	// WorkDir is the directory file names are resolved in.
	WorkDir       string
	Extensions    []string
	MaxInputBytes int64

	// Summary echoes the report to the operator after writing it.
	Summary bool

	// ReservedPaths are files the session writes itself, such as the
	// credential file and the diagnostic log. They cannot be selected.
	ReservedPaths []string
}

// Result is what a completed session produced.
type Result struct {
	Report     report.Report
	Output     domain.FileSelection
	Credential domain.Credential
}

// Session runs the validators in order and writes the report.
type Session struct {
	config    SessionConfig
	prompter  *prompt.Prompter
	passwords *password.Manager
	store     ports.CredentialStore
	sink      ports.DiagnosticSink
	logger    ports.Logger
	out       io.Writer
}

// NewSession creates a session with the given dependencies.
func NewSession(
	config SessionConfig,
	console ports.Console,
	out io.Writer,
	store ports.CredentialStore,
	sink ports.DiagnosticSink,
	logger ports.Logger,
	opts ...password.Option,
) *Session {
	config.Extensions = rules.NormalizeExtensions(config.Extensions)
	if config.WorkDir == "" {
		config.WorkDir = "."
	}

	p := prompt.New(console, out, sink)
	return &Session{
		config:    config,
		prompter:  p,
		passwords: password.NewManager(p, store, out, opts...),
		store:     store,
		sink:      sink,
		logger:    logger,
		out:       out,
	}
}

// Run executes the whole session. It returns a *domain.OverflowError when a
// computed result leaves the 32-bit range, a *domain.IOError for faults with
// no retry path, domain.ErrInputClosed or a context error when input stops,
// and a *domain.UnexpectedError for anything else. No report is written
// unless Run returns nil.
func (s *Session) Run(ctx context.Context) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &domain.UnexpectedError{Err: fmt.Errorf("panic: %v", r)}
		}
		if err != nil {
			err = s.fail(err)
		}
	}()

	if err := s.store.Reset(ctx); err != nil {
		return Result{}, err
	}

	fmt.Fprintln(s.out, "=== Secure Data Processing Program ===")

	firstName, err := s.collectName(ctx, "first")
	if err != nil {
		return Result{}, err
	}
	lastName, err := s.collectName(ctx, "last")
	if err != nil {
		return Result{}, err
	}

	pair, err := s.collectPair(ctx)
	if err != nil {
		return Result{}, err
	}
	sum, err := pair.Sum()
	if err != nil {
		return Result{}, err
	}
	product, err := pair.Product()
	if err != nil {
		return Result{}, err
	}
	s.logger.Debug("integers accepted", ports.Int64("sum", int64(sum)), ports.Int64("product", int64(product)))

	inputRule := rules.NewInputFileRule(s.config.WorkDir, s.config.Extensions, s.config.MaxInputBytes, s.config.ReservedPaths...)
	input, err := NewFileSelector(s.prompter, s.out, inputRule).Select(ctx)
	if err != nil {
		return Result{}, err
	}
	outputRule := rules.NewOutputFileRule(s.config.WorkDir, s.config.Extensions, input.Name, s.config.ReservedPaths...)
	output, err := NewFileSelector(s.prompter, s.out, outputRule).Select(ctx)
	if err != nil {
		return Result{}, err
	}

	fmt.Fprintln(s.out)
	cred, _, err := s.passwords.Issue(ctx)
	if err != nil {
		return Result{}, err
	}

	contents, err := readInput(inputRule.Path(input.Name), s.config.MaxInputBytes)
	if err != nil {
		return Result{}, domain.NewIOError("read input file", input.Name, err)
	}

	rep := report.Report{
		FirstName:     firstName,
		LastName:      lastName,
		FirstInteger:  pair.First,
		SecondInteger: pair.Second,
		Sum:           sum,
		Product:       product,
		InputFileName: input.Name,
		InputContents: string(contents),
	}
	if err := report.WriteFile(ctx, outputRule.Path(output.Name), rep); err != nil {
		if ctx.Err() != nil {
			return Result{}, err
		}
		return Result{}, domain.NewIOError("write output file", output.Name, err)
	}

	fmt.Fprintf(s.out, "\nAll information has been successfully written to %s\n", output.Name)
	if s.config.Summary {
		rep.Summary(s.out)
	}
	fmt.Fprintln(s.out, "\nProgram executed successfully!")

	s.logger.Info("session completed", ports.String("input", input.Name), ports.String("output", output.Name))
	return Result{Report: rep, Output: output, Credential: cred}, nil
}

// readInput reads the file at path, failing if it holds more than limit bytes.
// A non-positive limit reads everything.
func readInput(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if limit <= 0 {
		return io.ReadAll(f)
	}
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("file grew beyond the %d byte limit", limit)
	}
	return data, nil
}

// fail reports err to the operator and the diagnostic log and returns it,
// wrapped as a *domain.UnexpectedError if it fits no other category.
func (s *Session) fail(err error) error {
	switch {
	case errors.Is(err, domain.ErrOverflow):
		fmt.Fprintf(s.out, "Error: %v\n", err)
		s.sink.Record(domain.SeverityError, err.Error())
	case errors.Is(err, domain.ErrIO):
		fmt.Fprintf(s.out, "Error: %v\n", err)
		s.sink.Record(domain.SeverityError, err.Error())
	case errors.Is(err, domain.ErrInputClosed), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintln(s.out, "\nSession ended before all information was collected.")
		s.sink.Record(domain.SeverityWarn, "session ended early: "+err.Error())
	default:
		if !errors.Is(err, domain.ErrUnexpected) {
			err = &domain.UnexpectedError{Err: err}
		}
		fmt.Fprintf(s.out, "Error: %v\n", err)
		s.sink.Record(domain.SeverityError, err.Error())
	}
	return err
}
