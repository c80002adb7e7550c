package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/staffdesk/employee-api/pkg/container"
	"github.com/staffdesk/employee-api/pkg/metrics"
)

type metricServer struct {
	port int
	srv  *http.Server
}

func newMetricServer(c *container.Container, port int) *metricServer {
	return &metricServer{
		port: port,
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           metrics.GetHandler(c.Metrics()),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func (m *metricServer) run(c *container.Container) error {
	c.Logf("Starting metrics server on port: %d", m.port)

	if err := m.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		c.Errorf("error while listening to metrics server, err: %v", err)

		return err
	}

	return nil
}

func (m *metricServer) Shutdown(ctx context.Context) error {
	return ShutdownWithContext(ctx, m.srv.Shutdown, m.srv.Close)
}
