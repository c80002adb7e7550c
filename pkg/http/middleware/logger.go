// Package middleware provides the HTTP middlewares wrapped around every route: request logging with panic
// recovery, response metrics, CORS headers and tracing.
package middleware

import (
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	apihttp "github.com/staffdesk/employee-api/pkg/http"
)

// StatusResponseWriter records the status code written by the inner handler, which http.ResponseWriter
// does not expose.
type StatusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *StatusResponseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}

	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *StatusResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}

	return w.ResponseWriter.Write(b)
}

// RequestLog represents a log entry for HTTP requests.
type RequestLog struct {
	TraceID      string `json:"trace_id,omitempty"`
	SpanID       string `json:"span_id,omitempty"`
	StartTime    string `json:"start_time,omitempty"`
	ResponseTime int64  `json:"response_time,omitempty"`
	Method       string `json:"method,omitempty"`
	UserAgent    string `json:"user_agent,omitempty"`
	IP           string `json:"ip,omitempty"`
	URI          string `json:"uri,omitempty"`
	Response     int    `json:"response,omitempty"`
}

func (rl *RequestLog) PrettyPrint(writer io.Writer) {
	fmt.Fprintf(writer, "\u001B[38;5;8m%s \u001B[38;5;%dm%-6d\u001B[0m "+
		"%8d\u001B[38;5;8mµs\u001B[0m %s %s \n", rl.TraceID, colorForStatusCode(rl.Response), rl.Response,
		rl.ResponseTime, rl.Method, rl.URI)
}

func colorForStatusCode(status int) int {
	const (
		blue   = 34
		red    = 202
		yellow = 220
	)

	switch {
	case status >= 200 && status < 300:
		return blue
	case status >= 400 && status < 500:
		return yellow
	case status >= 500 && status < 600:
		return red
	}

	return 0
}

type logger interface {
	Log(...any)
	Error(...any)
}

// Logging logs every request once the response is written, along with its status and latency in
// microseconds. Server errors are logged at ERROR level. A panic escaping the inner handler is logged
// with its stack trace and answered with a 500.
func Logging(logger logger) func(inner http.Handler) http.Handler {
	return func(inner http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			srw := &StatusResponseWriter{ResponseWriter: w}
			spanContext := trace.SpanFromContext(r.Context()).SpanContext()
			traceID := spanContext.TraceID().String()
			spanID := spanContext.SpanID().String()

			srw.Header().Set("X-Correlation-ID", traceID)

			defer func(res *StatusResponseWriter, req *http.Request) {
				l := &RequestLog{
					TraceID:      traceID,
					SpanID:       spanID,
					StartTime:    start.Format("2006-01-02T15:04:05.999999999-07:00"),
					ResponseTime: time.Since(start).Microseconds(),
					Method:       req.Method,
					UserAgent:    req.UserAgent(),
					IP:           getIPAddress(req),
					URI:          req.RequestURI,
					Response:     res.status,
				}

				if logger == nil {
					return
				}

				if res.status >= http.StatusInternalServerError {
					logger.Error(l)
				} else {
					logger.Log(l)
				}
			}(srw, r)

			defer func() {
				panicRecovery(recover(), srw, r, logger)
			}()

			inner.ServeHTTP(srw, r)
		})
	}
}

func getIPAddress(r *http.Request) string {
	ips := strings.Split(r.Header.Get("X-Forwarded-For"), ",")

	// the left-most entry is the originating client.
	ipAddress := ips[0]

	if ipAddress == "" {
		ipAddress = r.RemoteAddr
	}

	return strings.TrimSpace(ipAddress)
}

type panicLog struct {
	Error      string `json:"error,omitempty"`
	StackTrace string `json:"stack_trace,omitempty"`
}

func panicRecovery(re any, w http.ResponseWriter, r *http.Request, logger logger) {
	if re == nil {
		return
	}

	var e string

	switch t := re.(type) {
	case string:
		e = t
	case error:
		e = t.Error()
	default:
		e = "Unknown panic type"
	}

	if logger != nil {
		logger.Error(panicLog{
			Error:      e,
			StackTrace: string(debug.Stack()),
		})
	}

	apihttp.NewResponder(w, r.Method).Respond(nil, apihttp.ErrorPanicRecovery{})
}
