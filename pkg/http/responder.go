package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// NewResponder creates a new Responder instance from the given http.ResponseWriter.
func NewResponder(w http.ResponseWriter, method string) *Responder {
	return &Responder{w: w, method: method}
}

// Responder encapsulates a http.ResponseWriter and is responsible for crafting structured responses.
type Responder struct {
	w      http.ResponseWriter
	method string
}

type errorBody struct {
	Error errResponse `json:"error"`
}

type errResponse struct {
	Message  string    `json:"message"`
	DateTime time.Time `json:"datetime"`
}

type statusCodeResponder interface {
	StatusCode() int
	Error() string
}

// Respond writes data as a bare JSON body on success. On failure it writes an error body and the status
// code reported by the error, falling back to 500.
func (r Responder) Respond(data any, err error) {
	statusCode := getStatusCode(r.method, data, err)

	if statusCode == http.StatusNoContent {
		r.w.WriteHeader(statusCode)

		return
	}

	var resp any = data
	if err != nil {
		resp = errorBody{Error: errResponse{Message: err.Error(), DateTime: time.Now()}}
	}

	r.w.Header().Set("Content-Type", "application/json")

	r.w.WriteHeader(statusCode)

	_ = json.NewEncoder(r.w).Encode(resp)
}

// getStatusCode returns corresponding HTTP status codes.
func getStatusCode(method string, data any, err error) int {
	if err == nil {
		switch method {
		case http.MethodPost:
			if data != nil {
				return http.StatusCreated
			}

			return http.StatusAccepted
		case http.MethodDelete:
			return http.StatusNoContent
		default:
			return http.StatusOK
		}
	}

	var e statusCodeResponder
	if errors.As(err, &e) && e.StatusCode() != 0 {
		return e.StatusCode()
	}

	return http.StatusInternalServerError
}
