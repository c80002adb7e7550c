package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/staffdesk/employee-api/pkg/container"
	apihttp "github.com/staffdesk/employee-api/pkg/http"
	"github.com/staffdesk/employee-api/pkg/logging"
)

// Handler returns the response data or an error. The data is written as JSON; the error decides the status
// code through its StatusCode method.
type Handler func(c *Context) (any, error)

type handler struct {
	function       Handler
	container      *container.Container
	requestTimeout time.Duration
}

type handlerResult struct {
	data any
	err  error
}

type panicLog struct {
	Error      string `json:"error,omitempty"`
	StackTrace string `json:"stack_trace,omitempty"`
}

func (h handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.requestTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, h.requestTimeout)
		defer cancel()
	}

	c := NewContext(ctx, apihttp.NewRequest(r.WithContext(ctx)), h.container)
	responder := apihttp.NewResponder(w, r.Method)

	// buffered so the handler goroutine never blocks after a timeout
	done := make(chan handlerResult, 1)
	panicked := make(chan struct{})

	go func() {
		defer panicRecoveryHandler(c.ContextLogger, panicked)

		data, err := h.function(c)

		done <- handlerResult{data: data, err: err}
	}()

	var result handlerResult

	select {
	case <-ctx.Done():
		result.err = ctx.Err()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			result.err = apihttp.ErrorRequestTimeout{}
		}
	case result = <-done:
	case <-panicked:
		result.err = apihttp.ErrorPanicRecovery{}
	}

	if result.err != nil {
		logError(c.ContextLogger, result.err)
	}

	responder.Respond(result.data, result.err)
}

func logError(logger *logging.ContextLogger, err error) {
	switch logging.GetLogLevelForError(err) {
	case logging.DEBUG:
		logger.Debug(err.Error())
	case logging.INFO:
		logger.Info(err.Error())
	case logging.NOTICE:
		logger.Notice(err.Error())
	case logging.WARN:
		logger.Warn(err.Error())
	default:
		logger.Error(err.Error())
	}
}

func panicRecoveryHandler(logger *logging.ContextLogger, panicked chan struct{}) {
	re := recover()
	if re == nil {
		return
	}

	close(panicked)

	logger.Error(panicLog{
		Error:      fmt.Sprint(re),
		StackTrace: string(debug.Stack()),
	})
}

func healthHandler(c *Context) (any, error) {
	return c.Health(c), nil
}

func liveHandler(*Context) (any, error) {
	return struct {
		Status string `json:"status"`
	}{Status: "UP"}, nil
}

func catchAllHandler(*Context) (any, error) {
	return nil, apihttp.ErrorInvalidRoute{}
}
