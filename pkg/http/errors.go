// Package http holds the transport pieces shared by all handlers: routing, request binding, the responder
// that turns handler results into HTTP responses, and the typed errors that carry their own status code.
package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/staffdesk/employee-api/pkg/logging"
)

// ErrorEntityNotFound represents an error for when an entity is not found in the store.
type ErrorEntityNotFound struct {
	Name  string
	Value string
}

func (e ErrorEntityNotFound) Error() string {
	// For ex: "No entity found with id: 2"
	return fmt.Sprintf("No entity found with %s: %s", e.Name, e.Value)
}

func (ErrorEntityNotFound) StatusCode() int {
	return http.StatusNotFound
}

func (ErrorEntityNotFound) LogLevel() logging.Level {
	return logging.INFO
}

// ErrorInvalidParam represents an error for invalid parameter values.
type ErrorInvalidParam struct {
	Params []string `json:"param,omitempty"`
}

func (e ErrorInvalidParam) Error() string {
	return fmt.Sprintf("'%d' invalid parameter(s): %s", len(e.Params), strings.Join(e.Params, ", "))
}

func (ErrorInvalidParam) StatusCode() int {
	return http.StatusBadRequest
}

func (ErrorInvalidParam) LogLevel() logging.Level {
	return logging.INFO
}

// ErrorDB wraps a failure reported by the document store.
type ErrorDB struct {
	Err     error
	Message string
}

func (e ErrorDB) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return fmt.Sprintf("DB Error: %v", e.Err)
	default:
		return "DB Error"
	}
}

func (e ErrorDB) Unwrap() error {
	return e.Err
}

func (ErrorDB) StatusCode() int {
	return http.StatusInternalServerError
}

// ErrorInvalidBody is returned when the request body cannot be decoded into the expected shape.
type ErrorInvalidBody struct {
	Err error
}

func (e ErrorInvalidBody) Error() string {
	return fmt.Sprintf("invalid request body: %v", e.Err)
}

func (e ErrorInvalidBody) Unwrap() error {
	return e.Err
}

func (ErrorInvalidBody) StatusCode() int {
	return http.StatusBadRequest
}

func (ErrorInvalidBody) LogLevel() logging.Level {
	return logging.INFO
}

// ErrorInvalidRoute represents an error for invalid route in a request.
type ErrorInvalidRoute struct{}

func (ErrorInvalidRoute) Error() string {
	return "route not registered"
}

func (ErrorInvalidRoute) StatusCode() int {
	return http.StatusNotFound
}

func (ErrorInvalidRoute) LogLevel() logging.Level {
	return logging.INFO
}

// ErrorRequestTimeout represents an error for request which timed out.
type ErrorRequestTimeout struct{}

func (ErrorRequestTimeout) Error() string {
	return "request timed out"
}

func (ErrorRequestTimeout) StatusCode() int {
	return http.StatusRequestTimeout
}

// ErrorPanicRecovery represents an error for request which panicked.
type ErrorPanicRecovery struct{}

func (ErrorPanicRecovery) Error() string {
	return http.StatusText(http.StatusInternalServerError)
}

func (ErrorPanicRecovery) StatusCode() int {
	return http.StatusInternalServerError
}
