package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"

	"github.com/staffdesk/employee-api/pkg/testutil"
)

func TestLogger_Log(t *testing.T) {
	testLogStatement := "hello info log!"

	f := func() {
		logger := NewLogger(DEBUG)
		logger.Log(testLogStatement)
	}

	output := testutil.StdoutOutputForFunc(f)
	assertMessageInJSONLog(t, output, testLogStatement)
}

func TestLogger_Logf(t *testing.T) {
	testLogStatement := "hello info logf!"

	f := func() {
		logger := NewLogger(DEBUG)
		logger.Logf("%s", testLogStatement)
	}

	output := testutil.StdoutOutputForFunc(f)
	assertMessageInJSONLog(t, output, testLogStatement)
}

func TestLogger_Error(t *testing.T) {
	testLogStatement := "hello error log!"

	f := func() {
		logger := NewLogger(DEBUG)
		logger.Error(testLogStatement)
	}

	output := testutil.StderrOutputForFunc(f)
	assertMessageInJSONLog(t, output, testLogStatement)
}

func TestLogger_LevelFiltering(t *testing.T) {
	f := func() {
		logger := NewLogger(WARN)
		logger.Info("should not be logged")
		logger.Debugf("%s", "nor this")
	}

	output := testutil.StdoutOutputForFunc(f)

	assert.Empty(t, output)
}

func TestLogger_ChangeLevel(t *testing.T) {
	f := func() {
		logger := NewLogger(ERROR)
		logger.ChangeLevel(DEBUG)
		logger.Debug("visible after level change")
	}

	output := testutil.StdoutOutputForFunc(f)
	assertMessageInJSONLog(t, output, "visible after level change")
}

func TestLogger_Fatal(t *testing.T) {
	var code int

	output := testutil.StderrOutputForFunc(func() {
		l := NewLogger(INFO).(*logger)
		l.exit = func(c int) { code = c }

		l.Fatalf("cannot start: %v", "port in use")
	})

	assert.Equal(t, 1, code)
	assertMessageInJSONLog(t, output, "cannot start: port in use")
}

func TestContextLogger_TraceID(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")

	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	output := testutil.StdoutOutputForFunc(func() {
		NewContextLogger(ctx, NewLogger(INFO)).Infof("employee %s fetched", "42")
	})

	var l entry

	_ = json.Unmarshal([]byte(output), &l)

	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", l.TraceID)
	assert.Equal(t, "employee 42 fetched", l.Message)
}

func TestContextLogger_NoSpan(t *testing.T) {
	output := testutil.StdoutOutputForFunc(func() {
		NewContextLogger(context.Background(), NewLogger(INFO)).Info("no span", 7)
	})

	var l entry

	_ = json.Unmarshal([]byte(output), &l)

	assert.Empty(t, l.TraceID)
	assert.Equal(t, []any{"no span", float64(7)}, l.Message)
}

func TestMockLogger(t *testing.T) {
	tests := []struct {
		desc   string
		log    func(l Logger)
		expOut string
		expErr string
	}{
		{"single value", func(l Logger) { l.Info("ready") }, "ready\n", ""},
		{"several values", func(l Logger) { l.Warn("a", 1) }, "[a 1]\n", ""},
		{"formatted", func(l Logger) { l.Noticef("id=%s", "42") }, "id=42\n", ""},
		{"literal percent", func(l Logger) { l.Info("100%") }, "100%\n", ""},
		{"error to stderr", func(l Logger) { l.Errorf("failed: %v", "boom") }, "", "failed: boom\n"},
		{"below level", func(l Logger) { l.Debug("hidden") }, "", ""},
		{"trace tag dropped", func(l Logger) { l.Info("tagged", traceTag("abc")) }, "tagged\n", ""},
	}

	for i, tc := range tests {
		var out, errOut bytes.Buffer

		tc.log(NewMockLoggerWithWriters(INFO, &out, &errOut))

		assert.Equal(t, tc.expOut, out.String(), "TEST[%d], Failed.\n%s", i, tc.desc)
		assert.Equal(t, tc.expErr, errOut.String(), "TEST[%d], Failed.\n%s", i, tc.desc)
	}
}

// A MockLogger built before stderr is redirected still writes to the redirected stream.
func TestMockLogger_WritesToCurrentStderr(t *testing.T) {
	l := NewMockLogger(ERROR)

	output := testutil.StderrOutputForFunc(func() {
		l.Error("metric does not exist")
	})

	assert.Equal(t, "metric does not exist\n", output)
}

func TestGetLogLevelForError(t *testing.T) {
	assert.Equal(t, ERROR, GetLogLevelForError(assert.AnError))
	assert.Equal(t, INFO, GetLogLevelForError(infoErr{}))
}

type infoErr struct{}

func (infoErr) Error() string   { return "info level error" }
func (infoErr) LogLevel() Level { return INFO }

func assertMessageInJSONLog(t *testing.T, logLine, expectation string) {
	t.Helper()

	var l entry

	_ = json.Unmarshal([]byte(logLine), &l)

	if l.Message != expectation {
		t.Errorf("Log mismatch. Expected: %s Got: %s", expectation, l.Message)
	}
}
