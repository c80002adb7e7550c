package logging

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// traceTag rides along with the log arguments and is lifted into the trace_id field of the entry.
type traceTag string

// splitTrace removes the first traceTag from args.
func splitTrace(args []any) (traceID string, rest []any) {
	for i, a := range args {
		if t, ok := a.(traceTag); ok {
			rest = make([]any, 0, len(args)-1)
			rest = append(rest, args[:i]...)
			rest = append(rest, args[i+1:]...)

			return string(t), rest
		}
	}

	return "", args
}

// ContextLogger is the logger a request handler sees. Entries it writes carry the trace ID of the
// span found in the request context.
type ContextLogger struct {
	base Logger
	tag  traceTag
}

func NewContextLogger(ctx context.Context, base Logger) *ContextLogger {
	l := &ContextLogger{base: base}

	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		l.tag = traceTag(sc.TraceID().String())
	}

	return l
}

func (l *ContextLogger) tagged(args []any) []any {
	if l.tag == "" {
		return args
	}

	return append(args[:len(args):len(args)], l.tag)
}

func (l *ContextLogger) Debug(args ...any)             { l.base.Debug(l.tagged(args)...) }
func (l *ContextLogger) Debugf(f string, args ...any)  { l.base.Debugf(f, l.tagged(args)...) }
func (l *ContextLogger) Log(args ...any)               { l.base.Log(l.tagged(args)...) }
func (l *ContextLogger) Logf(f string, args ...any)    { l.base.Logf(f, l.tagged(args)...) }
func (l *ContextLogger) Info(args ...any)              { l.base.Info(l.tagged(args)...) }
func (l *ContextLogger) Infof(f string, args ...any)   { l.base.Infof(f, l.tagged(args)...) }
func (l *ContextLogger) Notice(args ...any)            { l.base.Notice(l.tagged(args)...) }
func (l *ContextLogger) Noticef(f string, args ...any) { l.base.Noticef(f, l.tagged(args)...) }
func (l *ContextLogger) Warn(args ...any)              { l.base.Warn(l.tagged(args)...) }
func (l *ContextLogger) Warnf(f string, args ...any)   { l.base.Warnf(f, l.tagged(args)...) }
func (l *ContextLogger) Error(args ...any)             { l.base.Error(l.tagged(args)...) }
func (l *ContextLogger) Errorf(f string, args ...any)  { l.base.Errorf(f, l.tagged(args)...) }
func (l *ContextLogger) Fatal(args ...any)             { l.base.Fatal(l.tagged(args)...) }
func (l *ContextLogger) Fatalf(f string, args ...any)  { l.base.Fatalf(f, l.tagged(args)...) }
func (l *ContextLogger) ChangeLevel(level Level)       { l.base.ChangeLevel(level) }
