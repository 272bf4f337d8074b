package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/bft-labs/defendcode/internal/domain"
	"github.com/bft-labs/defendcode/internal/ports"
)

// TimeFormat is the timestamp layout used in the diagnostic log.
const TimeFormat = "2006-01-02 15:04:05"

// ZerologAdapter implements ports.Logger and ports.DiagnosticSink using zerolog.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter creates an adapter writing plain text lines
// ("timestamp LEVEL message key=value") to w.
func NewZerologAdapter(w io.Writer) *ZerologAdapter {
	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: TimeFormat,
	}
	logger := zerolog.New(output).With().Timestamp().Logger()
	return &ZerologAdapter{logger: logger}
}

// OpenDiagnosticLog opens path for appending (creating it if needed) and
// returns an adapter that tags every line with the session id. The caller
// closes the returned file.
func OpenDiagnosticLog(path, sessionID string) (*ZerologAdapter, *os.File, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, domain.NewIOError("open log", path, err)
	}
	a := NewZerologAdapter(f)
	if sessionID != "" {
		a = a.With(ports.String("session", sessionID))
	}
	return a, f, nil
}

// Level returns a copy of the adapter that drops lines below level.
func (z *ZerologAdapter) Level(level zerolog.Level) *ZerologAdapter {
	return &ZerologAdapter{logger: z.logger.Level(level)}
}

// With returns a copy of the adapter that adds fields to every line.
func (z *ZerologAdapter) With(fields ...ports.Field) *ZerologAdapter {
	ctx := z.logger.With()
	for _, f := range fields {
		ctx = ctx.Interface(f.Key, f.Value)
	}
	return &ZerologAdapter{logger: ctx.Logger()}
}

// Debug logs a debug-level message.
func (z *ZerologAdapter) Debug(msg string, fields ...ports.Field) {
	event := z.logger.Debug()
	for _, f := range fields {
		event = addField(event, f)
	}
	event.Msg(msg)
}

// Info logs an info-level message.
func (z *ZerologAdapter) Info(msg string, fields ...ports.Field) {
	event := z.logger.Info()
	for _, f := range fields {
		event = addField(event, f)
	}
	event.Msg(msg)
}

// Warn logs a warning-level message.
func (z *ZerologAdapter) Warn(msg string, fields ...ports.Field) {
	event := z.logger.Warn()
	for _, f := range fields {
		event = addField(event, f)
	}
	event.Msg(msg)
}

// Error logs an error-level message.
func (z *ZerologAdapter) Error(msg string, fields ...ports.Field) {
	event := z.logger.Error()
	for _, f := range fields {
		event = addField(event, f)
	}
	event.Msg(msg)
}

// Record writes one diagnostic line at the level matching severity.
func (z *ZerologAdapter) Record(severity domain.Severity, msg string) {
	switch severity {
	case domain.SeverityError:
		z.Error(msg)
	case domain.SeverityWarn:
		z.Warn(msg)
	default:
		z.Info(msg)
	}
}

// addField adds a Field to a zerolog.Event.
func addField(event *zerolog.Event, f ports.Field) *zerolog.Event {
	switch v := f.Value.(type) {
	case string:
		return event.Str(f.Key, v)
	case int:
		return event.Int(f.Key, v)
	case int64:
		return event.Int64(f.Key, v)
	case error:
		return event.Err(v)
	default:
		return event.Interface(f.Key, v)
	}
}
