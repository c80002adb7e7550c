package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
)

// Request is an abstraction over the underlying http.Request, so handlers never touch net/http directly.
type Request struct {
	req        *http.Request
	pathParams map[string]string
}

func NewRequest(r *http.Request) *Request {
	return &Request{
		req:        r,
		pathParams: mux.Vars(r),
	}
}

func (r *Request) Param(key string) string {
	return r.req.URL.Query().Get(key)
}

func (r *Request) Context() context.Context {
	return r.req.Context()
}

func (r *Request) PathParam(key string) string {
	return r.pathParams[key]
}

// Bind decodes the JSON request body into i. Decoding failures are reported as ErrorInvalidBody.
func (r *Request) Bind(i any) error {
	body, err := r.body()
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, i); err != nil {
		return ErrorInvalidBody{Err: err}
	}

	return nil
}

func (r *Request) HostName() string {
	proto := r.req.Header.Get("X-Forwarded-Proto")
	if proto == "" {
		proto = "http"
	}

	return proto + "://" + r.req.Host
}

func (r *Request) body() ([]byte, error) {
	bodyBytes, err := io.ReadAll(r.req.Body)
	if err != nil {
		return nil, err
	}

	r.req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	return bodyBytes, nil
}
