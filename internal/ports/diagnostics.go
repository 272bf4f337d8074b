package ports

import "github.com/bft-labs/defendcode/internal/domain"

// DiagnosticSink is the append-only diagnostic log. Every rejection and
// fault in a session is recorded here, one line per call.
type DiagnosticSink interface {
	Record(severity domain.Severity, msg string)
}
