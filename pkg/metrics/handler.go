package metrics

import (
	"net/http"
	"runtime"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GetHandler returns a router that exposes the manager's registry on GET /metrics. Runtime gauges are
// refreshed on every scrape.
func GetHandler(m Manager) http.Handler {
	var (
		router   = mux.NewRouter()
		gatherer = prometheus.DefaultGatherer
	)

	if mm, ok := m.(*metricsManager); ok {
		gatherer = mm.registry
	}

	h := systemMetricsHandler(m, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	router.NewRoute().Methods(http.MethodGet).Path("/metrics").Handler(h)

	return router
}

// RegisterSystemMetrics declares the runtime gauges refreshed by the /metrics handler.
func RegisterSystemMetrics(m Manager) {
	m.NewGauge("app_go_routines", "Number of Go routines running.")
	m.NewGauge("app_sys_memory_alloc", "Number of bytes allocated for heap objects.")
	m.NewGauge("app_sys_total_alloc", "Number of cumulative bytes allocated for heap objects.")
	m.NewGauge("app_go_numGC", "Number of completed Garbage Collector cycles.")
	m.NewGauge("app_go_sys", "Number of total bytes of memory.")
}

func systemMetricsHandler(m Manager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var stats runtime.MemStats

		runtime.ReadMemStats(&stats)

		m.SetGauge("app_go_routines", float64(runtime.NumGoroutine()))
		m.SetGauge("app_sys_memory_alloc", float64(stats.Alloc))
		m.SetGauge("app_sys_total_alloc", float64(stats.TotalAlloc))
		m.SetGauge("app_go_numGC", float64(stats.NumGC))
		m.SetGauge("app_go_sys", float64(stats.Sys))

		next.ServeHTTP(w, r)
	})
}
