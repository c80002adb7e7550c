// Package logging provides the levelled logger used across the service. Entries are written as JSON lines,
// or in a coloured single-line form when stdout is a terminal.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// PrettyPrint is implemented by structured log messages that know how to render themselves on a terminal.
type PrettyPrint interface {
	PrettyPrint(writer io.Writer)
}

// Logger is the levelled logging surface handed to every layer of the service.
type Logger interface {
	Debug(args ...any)
	Debugf(format string, args ...any)
	Log(args ...any)
	Logf(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Notice(args ...any)
	Noticef(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	ChangeLevel(level Level)
}

// entry is one line of log output.
type entry struct {
	Level   Level     `json:"level"`
	Time    time.Time `json:"time"`
	Message any       `json:"message"`
	TraceID string    `json:"trace_id,omitempty"`
}

type logger struct {
	min    Level
	stdout io.Writer
	stderr io.Writer
	pretty bool

	mu   sync.Mutex
	exit func(code int)
}

// NewLogger returns a Logger writing entries at or above level. ERROR and FATAL go to stderr, the rest to stdout.
func NewLogger(level Level) Logger {
	return &logger{
		min:    level,
		stdout: os.Stdout,
		stderr: os.Stderr,
		pretty: isTerminal(os.Stdout),
		exit:   os.Exit,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

func (l *logger) log(level Level, args ...any) {
	if level < l.min {
		return
	}

	traceID, rest := splitTrace(args)

	l.write(entry{Level: level, Time: time.Now(), Message: messageOf(rest), TraceID: traceID})
}

func (l *logger) logf(level Level, format string, args ...any) {
	if level < l.min {
		return
	}

	traceID, rest := splitTrace(args)

	l.write(entry{Level: level, Time: time.Now(), Message: fmt.Sprintf(format, rest...), TraceID: traceID})
}

func (l *logger) write(e entry) {
	w := l.stdout
	if e.Level >= ERROR {
		w = l.stderr
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.pretty {
		_ = json.NewEncoder(w).Encode(e)

		return
	}

	fmt.Fprintf(w, "\u001B[38;5;%dm%s\u001B[0m [%s]", e.Level.color(), e.Level.String()[0:4], e.Time.Format(time.TimeOnly))

	if e.TraceID != "" {
		fmt.Fprintf(w, " \u001B[38;5;8m%s\u001B[0m", e.TraceID)
	}

	fmt.Fprint(w, " ")

	if p, ok := e.Message.(PrettyPrint); ok {
		p.PrettyPrint(w)

		return
	}

	fmt.Fprintf(w, "%v\n", e.Message)
}

// messageOf keeps a lone argument as is, so structured values are encoded as objects rather than arrays.
func messageOf(args []any) any {
	if len(args) == 1 {
		return args[0]
	}

	return args
}

func (l *logger) Debug(args ...any)                  { l.log(DEBUG, args...) }
func (l *logger) Debugf(format string, args ...any)  { l.logf(DEBUG, format, args...) }
func (l *logger) Log(args ...any)                    { l.log(INFO, args...) }
func (l *logger) Logf(format string, args ...any)    { l.logf(INFO, format, args...) }
func (l *logger) Info(args ...any)                   { l.log(INFO, args...) }
func (l *logger) Infof(format string, args ...any)   { l.logf(INFO, format, args...) }
func (l *logger) Notice(args ...any)                 { l.log(NOTICE, args...) }
func (l *logger) Noticef(format string, args ...any) { l.logf(NOTICE, format, args...) }
func (l *logger) Warn(args ...any)                   { l.log(WARN, args...) }
func (l *logger) Warnf(format string, args ...any)   { l.logf(WARN, format, args...) }
func (l *logger) Error(args ...any)                  { l.log(ERROR, args...) }
func (l *logger) Errorf(format string, args ...any)  { l.logf(ERROR, format, args...) }

func (l *logger) Fatal(args ...any) {
	l.log(FATAL, args...)
	l.exit(1)
}

func (l *logger) Fatalf(format string, args ...any) {
	l.logf(FATAL, format, args...)
	l.exit(1)
}

func (l *logger) ChangeLevel(level Level) {
	l.min = level
}

// LogLevelResponder is implemented by errors that want to be logged at a level other than ERROR.
type LogLevelResponder interface {
	LogLevel() Level
}

// GetLogLevelForError returns the level err should be logged at.
func GetLogLevelForError(err error) Level {
	if e, ok := err.(LogLevelResponder); ok {
		return e.LogLevel()
	}

	return ERROR
}
