package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"
)

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) RecordHistogram(ctx context.Context, name string, value float64, labels ...string) {
	m.Called(ctx, name, value, labels)
}

func TestMetrics(t *testing.T) {
	tests := []struct {
		desc   string
		target string
		status int
		labels []string
	}{
		{"path template is used", "/api/v1/employee/64b7f0c2a1", http.StatusOK,
			[]string{"path", "/api/v1/employee/{id}", "method", "GET", "status", "200"}},
		{"handler status is recorded", "/api/v1/employee/missing", http.StatusNotFound,
			[]string{"path", "/api/v1/employee/{id}", "method", "GET", "status", "404"}},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			mockMetrics := &mockMetrics{}

			mockMetrics.On("RecordHistogram", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

			router := mux.NewRouter()
			router.HandleFunc("/api/v1/employee/{id}", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}).Methods(http.MethodGet)

			router.Use(Metrics(mockMetrics))

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tc.target, http.NoBody))

			mockMetrics.AssertCalled(t, "RecordHistogram", mock.Anything, "app_http_response", mock.Anything, tc.labels)
		})
	}
}

func TestMetrics_ImplicitStatus(t *testing.T) {
	mockMetrics := &mockMetrics{}

	mockMetrics.On("RecordHistogram", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	handler := Metrics(mockMetrics)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/.well-known/alive/", http.NoBody))

	mockMetrics.AssertCalled(t, "RecordHistogram", mock.Anything, "app_http_response", mock.Anything,
		[]string{"path", "/.well-known/alive", "method", "GET", "status", "200"})
}
