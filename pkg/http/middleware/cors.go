package middleware

import (
	"net/http"
	"strings"
)

const defaultAllowedHeaders = "Authorization, Content-Type, x-requested-with, origin, true-client-ip, X-Correlation-ID"

// CORS adds Cross-Origin Resource Sharing headers to every response. Entries in overrides replace the
// defaults for the header of the same name. Preflight requests are answered directly with 200.
func CORS(overrides map[string]string, registeredMethods []string) func(inner http.Handler) http.Handler {
	return func(inner http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			setMiddlewareHeaders(overrides, registeredMethods, w)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			inner.ServeHTTP(w, r)
		})
	}
}

func setMiddlewareHeaders(overrides map[string]string, registeredMethods []string, w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", defaultAllowedHeaders)

	methods := append([]string{http.MethodOptions}, registeredMethods...)
	w.Header().Set("Access-Control-Allow-Methods", strings.Join(dedupe(methods), ", "))

	for header, value := range overrides {
		if value == "" {
			continue
		}

		if header == "Access-Control-Allow-Headers" {
			value = defaultAllowedHeaders + ", " + value
		}

		w.Header().Set(header, value)
	}
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))

	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}

		out = append(out, v)
	}

	return out
}
