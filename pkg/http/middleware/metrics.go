package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

type metrics interface {
	RecordHistogram(ctx context.Context, name string, value float64, labels ...string)
}

// Metrics records the response time of every request in the app_http_response histogram. Requests are
// labelled by route template rather than raw path, so /api/v1/employee/{id} is one series.
func Metrics(metrics metrics) func(inner http.Handler) http.Handler {
	return func(inner http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			srw := &StatusResponseWriter{ResponseWriter: w}

			path := r.URL.Path

			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					path = tpl
				}
			}

			if path != "/" {
				path = strings.TrimSuffix(path, "/")
			}

			// deferred so that the status code is populated
			defer func(res *StatusResponseWriter, req *http.Request) {
				status := res.status
				if status == 0 {
					status = http.StatusOK
				}

				metrics.RecordHistogram(context.Background(), "app_http_response", time.Since(start).Seconds(),
					"path", path, "method", req.Method, "status", strconv.Itoa(status))
			}(srw, r)

			inner.ServeHTTP(srw, r)
		})
	}
}
