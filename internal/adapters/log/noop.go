package log

import (
	"github.com/bft-labs/defendcode/internal/domain"
	"github.com/bft-labs/defendcode/internal/ports"
)

// NoopLogger implements ports.Logger and ports.DiagnosticSink by discarding
// everything.
type NoopLogger struct{}

// Debug discards the message.
func (NoopLogger) Debug(msg string, fields ...ports.Field) {}

// Info discards the message.
func (NoopLogger) Info(msg string, fields ...ports.Field) {}

// Warn discards the message.
func (NoopLogger) Warn(msg string, fields ...ports.Field) {}

// Error discards the message.
func (NoopLogger) Error(msg string, fields ...ports.Field) {}

// Record discards the record.
func (NoopLogger) Record(severity domain.Severity, msg string) {}
