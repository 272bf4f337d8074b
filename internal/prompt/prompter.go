// Package prompt drives a validator against operator input until the
// operator supplies an accepted value.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bft-labs/defendcode/internal/domain"
	"github.com/bft-labs/defendcode/internal/ports"
)

// State is a step of the retry loop.
type State int

const (
	StatePrompting State = iota
	StateValidating
	StateAccepted
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StatePrompting:
		return "Prompting"
	case StateValidating:
		return "Validating"
	case StateAccepted:
		return "Accepted"
	default:
		return "Unknown"
	}
}

// EventEmitter is called when the loop changes state.
type EventEmitter interface {
	OnStateChange(previous, current State, reason string)
}

// Prompter is the retry loop. There is no retry limit: it returns only on
// acceptance, when the input closes, or when ctx is done.
type Prompter struct {
	console ports.Console
	out     io.Writer
	sink    ports.DiagnosticSink
	label   string
	emitter EventEmitter
}

// New creates a Prompter reading from console, showing rejections on out and
// recording them in sink.
func New(console ports.Console, out io.Writer, sink ports.DiagnosticSink) *Prompter {
	return &Prompter{console: console, out: out, sink: sink}
}

// WithLabel returns a copy whose diagnostic records are prefixed by label
// (for example "first name").
func (p *Prompter) WithLabel(label string) *Prompter {
	cp := *p
	cp.label = label
	return &cp
}

// WithEmitter returns a copy that reports state changes to e.
func (p *Prompter) WithEmitter(e EventEmitter) *Prompter {
	cp := *p
	cp.emitter = e
	return &cp
}

// Run prompts with text until v accepts the line read, and returns it.
func (p *Prompter) Run(ctx context.Context, text string, v ports.Validator) (string, error) {
	return p.loop(ctx, text, v, p.console.ReadLine)
}

// RunSecret is Run reading without echo.
func (p *Prompter) RunSecret(ctx context.Context, text string, v ports.Validator) (string, error) {
	return p.loop(ctx, text, v, p.console.ReadSecret)
}

// Notify shows msg to the operator and records it at severity.
func (p *Prompter) Notify(severity domain.Severity, msg string) {
	fmt.Fprintf(p.out, "Error: %s\n", msg)
	if p.label != "" {
		msg = p.label + ": " + msg
	}
	p.sink.Record(severity, msg)
}

// ReadLine reads one unvalidated line from the console.
func (p *Prompter) ReadLine(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.console.ReadLine(text)
}

// ReadSecret reads one unvalidated line without echo.
func (p *Prompter) ReadSecret(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.console.ReadSecret(text)
}

func (p *Prompter) loop(ctx context.Context, text string, v ports.Validator, read func(string) (string, error)) (string, error) {
	state := StatePrompting
	var raw string

	for {
		switch state {
		case StatePrompting:
			if err := ctx.Err(); err != nil {
				return "", err
			}
			line, err := read(text)
			if err != nil {
				return "", err
			}
			raw = line
			state = p.transition(state, StateValidating, "input received")

		case StateValidating:
			res, err := v.Validate(raw)
			switch {
			case err != nil:
				if !errors.Is(err, domain.ErrIO) {
					return "", err
				}
				p.Notify(domain.SeverityError, err.Error())
				state = p.transition(state, StatePrompting, err.Error())
			case res.Accepted:
				state = p.transition(state, StateAccepted, "accepted")
			default:
				p.Notify(domain.SeverityWarn, res.Reason)
				state = p.transition(state, StatePrompting, res.Reason)
			}

		case StateAccepted:
			return raw, nil

		default:
			return "", fmt.Errorf("prompt: invalid state %v", state)
		}
	}
}

func (p *Prompter) transition(from, to State, reason string) State {
	if p.emitter != nil {
		p.emitter.OnStateChange(from, to, reason)
	}
	return to
}
