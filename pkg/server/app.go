// Package server runs the HTTP API: it owns route registration, adapts Handlers to net/http, serves
// metrics on a separate port and shuts everything down gracefully.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	"github.com/staffdesk/employee-api/pkg/config"
	"github.com/staffdesk/employee-api/pkg/container"
	"github.com/staffdesk/employee-api/pkg/http/middleware"
)

const (
	defaultHTTPPort       = 8000
	defaultMetricPort     = 2121
	defaultRequestTimeout = 5 * time.Second
)

// App is the HTTP application. Routes must be registered before Run.
type App struct {
	container *container.Container
	config    config.Config

	httpServer   *httpServer
	metricServer *metricServer

	requestTimeout  time.Duration
	shutdownTimeout time.Duration

	tracerProvider *sdktrace.TracerProvider
}

// New creates an App serving on HTTP_PORT with metrics on METRICS_PORT. The health and liveness routes are
// registered here.
func New(conf config.Config, c *container.Container) *App {
	a := &App{
		container: c,
		config:    conf,
	}

	a.tracerProvider = InitTracer(conf, c.Logger, c.GetAppName(), c.GetAppVersion())

	a.httpServer = newHTTPServer(a.port("HTTP_PORT", defaultHTTPPort), middleware.GetConfigs(conf))
	a.metricServer = newMetricServer(c, a.port("METRICS_PORT", defaultMetricPort))

	a.requestTimeout = a.getRequestTimeout()

	shutdownTimeout, err := getShutdownTimeoutFromConfig(conf)
	if err != nil {
		c.Errorf("invalid value for SHUTDOWN_GRACE_PERIOD, using default of %v: %v", shutDownTimeout, err)
	}

	a.shutdownTimeout = shutdownTimeout

	a.add(http.MethodGet, "/.well-known/health", healthHandler)
	a.add(http.MethodGet, "/.well-known/alive", liveHandler)

	return a
}

func (a *App) port(key string, def int) int {
	value := a.config.GetOrDefault(key, strconv.Itoa(def))

	port, err := strconv.Atoi(value)
	if err != nil || port <= 0 {
		a.container.Errorf("invalid value for %s: %q, using default of %d", key, value, def)

		return def
	}

	return port
}

func (a *App) getRequestTimeout() time.Duration {
	value := a.config.GetOrDefault("REQUEST_TIMEOUT", "5")

	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		a.container.Error("invalid value of config REQUEST_TIMEOUT. setting default value to 5 seconds.")

		return defaultRequestTimeout
	}

	return time.Duration(seconds) * time.Second
}

// GET adds a Handler for HTTP GET method for a route pattern.
func (a *App) GET(pattern string, h Handler) {
	a.add(http.MethodGet, pattern, h)
}

// PUT adds a Handler for HTTP PUT method for a route pattern.
func (a *App) PUT(pattern string, h Handler) {
	a.add(http.MethodPut, pattern, h)
}

// POST adds a Handler for HTTP POST method for a route pattern.
func (a *App) POST(pattern string, h Handler) {
	a.add(http.MethodPost, pattern, h)
}

// DELETE adds a Handler for HTTP DELETE method for a route pattern.
func (a *App) DELETE(pattern string, h Handler) {
	a.add(http.MethodDelete, pattern, h)
}

// Routes lists every registered route as "METHOD pattern".
func (a *App) Routes() []string {
	return *a.httpServer.router.RegisteredRoutes
}

func (a *App) add(method, pattern string, h Handler) {
	a.httpServer.router.Add(method, pattern, handler{
		function:       h,
		container:      a.container,
		requestTimeout: a.requestTimeout,
	})
}

// Run serves until SIGINT or SIGTERM is received, then shuts down gracefully.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.RunContext(ctx)
}

// RunContext serves until ctx is cancelled or a server fails, then shuts down within the configured grace
// period.
func (a *App) RunContext(ctx context.Context) error {
	a.httpServer.setupMiddlewares(a.container)

	// unmatched paths answer with a JSON 404
	a.httpServer.router.PathPrefix("/").Handler(handler{
		function:       catchAllHandler,
		container:      a.container,
		requestTimeout: a.requestTimeout,
	})

	g, gctx := errgroup.WithContext(ctx)

	// metrics server starts first so that the first requests are observed
	g.Go(func() error {
		return a.metricServer.run(a.container)
	})

	g.Go(func() error {
		return a.httpServer.run(a.container)
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, done := context.WithTimeout(context.WithoutCancel(ctx), a.shutdownTimeout)
		defer done()

		return a.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Shutdown stops both servers, closes the store connection and flushes pending spans.
func (a *App) Shutdown(ctx context.Context) error {
	err := errors.Join(
		a.httpServer.Shutdown(ctx),
		a.metricServer.Shutdown(ctx),
		a.container.Close(),
		a.tracerProvider.Shutdown(ctx),
	)

	if err != nil {
		a.container.Errorf("error while shutting down: %v", err)

		return err
	}

	a.container.Info("Application shutdown complete")

	return nil
}
