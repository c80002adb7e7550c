package logging

import (
	"fmt"
	"io"
	"os"
)

// MockLogger prints bare messages with no level, time or encoding, so tests can compare output directly.
// Output goes to whatever os.Stdout and os.Stderr are at the time of the call, unless writers are given
// through NewMockLoggerWithWriters.
type MockLogger struct {
	level  Level
	stdout io.Writer
	stderr io.Writer
}

func NewMockLogger(level Level) Logger {
	return &MockLogger{level: level}
}

// NewMockLoggerWithWriters returns a MockLogger that prints to out, and to errOut for ERROR and above.
func NewMockLoggerWithWriters(level Level, out, errOut io.Writer) Logger {
	return &MockLogger{level: level, stdout: out, stderr: errOut}
}

func (m *MockLogger) writer(level Level) io.Writer {
	if level >= ERROR {
		if m.stderr != nil {
			return m.stderr
		}

		return os.Stderr
	}

	if m.stdout != nil {
		return m.stdout
	}

	return os.Stdout
}

func (m *MockLogger) log(level Level, args ...any) {
	if level < m.level {
		return
	}

	_, rest := splitTrace(args)

	fmt.Fprintln(m.writer(level), messageOf(rest))
}

func (m *MockLogger) logf(level Level, format string, args ...any) {
	if level < m.level {
		return
	}

	_, rest := splitTrace(args)

	fmt.Fprintln(m.writer(level), fmt.Sprintf(format, rest...))
}

func (m *MockLogger) Debug(args ...any)                  { m.log(DEBUG, args...) }
func (m *MockLogger) Debugf(format string, args ...any)  { m.logf(DEBUG, format, args...) }
func (m *MockLogger) Log(args ...any)                    { m.log(INFO, args...) }
func (m *MockLogger) Logf(format string, args ...any)    { m.logf(INFO, format, args...) }
func (m *MockLogger) Info(args ...any)                   { m.log(INFO, args...) }
func (m *MockLogger) Infof(format string, args ...any)   { m.logf(INFO, format, args...) }
func (m *MockLogger) Notice(args ...any)                 { m.log(NOTICE, args...) }
func (m *MockLogger) Noticef(format string, args ...any) { m.logf(NOTICE, format, args...) }
func (m *MockLogger) Warn(args ...any)                   { m.log(WARN, args...) }
func (m *MockLogger) Warnf(format string, args ...any)   { m.logf(WARN, format, args...) }
func (m *MockLogger) Error(args ...any)                  { m.log(ERROR, args...) }
func (m *MockLogger) Errorf(format string, args ...any)  { m.logf(ERROR, format, args...) }

// Fatal and Fatalf only print; a mock never exits the test binary.
func (m *MockLogger) Fatal(args ...any)                 { m.log(FATAL, args...) }
func (m *MockLogger) Fatalf(format string, args ...any) { m.logf(FATAL, format, args...) }

func (m *MockLogger) ChangeLevel(level Level) {
	m.level = level
}
