package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/staffdesk/employee-api/pkg/container"
	apihttp "github.com/staffdesk/employee-api/pkg/http"
	"github.com/staffdesk/employee-api/pkg/http/middleware"
)

type httpServer struct {
	router      *apihttp.Router
	port        int
	srv         *http.Server
	corsHeaders map[string]string
}

func newHTTPServer(port int, corsHeaders map[string]string) *httpServer {
	r := apihttp.NewRouter()

	return &httpServer{
		router:      r,
		port:        port,
		corsHeaders: corsHeaders,
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// registeredMethods lists the method of every route added so far.
func registeredMethods(r *apihttp.Router) []string {
	methods := make([]string, 0, len(*r.RegisteredRoutes))

	for _, route := range *r.RegisteredRoutes {
		if method, _, ok := strings.Cut(route, " "); ok {
			methods = append(methods, method)
		}
	}

	return methods
}

// setupMiddlewares attaches the middleware chain. It runs once every route is registered so that CORS
// advertises the right methods.
func (s *httpServer) setupMiddlewares(c *container.Container) {
	s.router.UseMiddleware(
		middleware.Tracer,
		middleware.Logging(c.Logger),
		middleware.CORS(s.corsHeaders, registeredMethods(s.router)),
		middleware.Metrics(c.Metrics()),
	)
}

func (s *httpServer) run(c *container.Container) error {
	c.Logf("Starting server on port: %d", s.port)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		c.Errorf("error while listening to http server, err: %v", err)

		return err
	}

	return nil
}

func (s *httpServer) Shutdown(ctx context.Context) error {
	return ShutdownWithContext(ctx, s.srv.Shutdown, s.srv.Close)
}
