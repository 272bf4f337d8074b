// Package testutil provides scripted fakes for the ports used in tests.
package testutil

import (
	"strings"
	"sync"

	"github.com/bft-labs/defendcode/internal/domain"
)

// ScriptedConsole implements ports.Console by replaying lines in order.
// When the script is exhausted it reports domain.ErrInputClosed.
type ScriptedConsole struct {
	mu      sync.Mutex
	lines   []string
	Prompts []string
	Secret  []bool
}

// NewScriptedConsole returns a console that will answer with lines.
func NewScriptedConsole(lines ...string) *ScriptedConsole {
	return &ScriptedConsole{lines: lines}
}

// ReadLine implements ports.Console.
func (c *ScriptedConsole) ReadLine(prompt string) (string, error) {
	return c.next(prompt, false)
}

// ReadSecret implements ports.Console.
func (c *ScriptedConsole) ReadSecret(prompt string) (string, error) {
	return c.next(prompt, true)
}

// Remaining returns the number of unread lines.
func (c *ScriptedConsole) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

func (c *ScriptedConsole) next(prompt string, secret bool) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Prompts = append(c.Prompts, prompt)
	c.Secret = append(c.Secret, secret)
	if len(c.lines) == 0 {
		return "", domain.ErrInputClosed
	}
	line := c.lines[0]
	c.lines = c.lines[1:]
	return line, nil
}

// Record is one call to RecordingSink.Record.
type Record struct {
	Severity domain.Severity
	Msg      string
}

// RecordingSink implements ports.DiagnosticSink in memory.
type RecordingSink struct {
	mu      sync.Mutex
	records []Record
}

// Record implements ports.DiagnosticSink.
func (s *RecordingSink) Record(severity domain.Severity, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, Record{Severity: severity, Msg: msg})
}

// Records returns a copy of everything recorded so far.
func (s *RecordingSink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record{}, s.records...)
}

// Contains reports whether any record at severity contains substr.
func (s *RecordingSink) Contains(severity domain.Severity, substr string) bool {
	for _, r := range s.Records() {
		if r.Severity == severity && strings.Contains(r.Msg, substr) {
			return true
		}
	}
	return false
}
