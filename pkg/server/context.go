package server

import (
	"context"

	"github.com/staffdesk/employee-api/pkg/container"
	apihttp "github.com/staffdesk/employee-api/pkg/http"
	"github.com/staffdesk/employee-api/pkg/logging"
)

// Context is what every Handler receives: the request scoped context.Context, the request itself, the
// container and a logger that stamps each line with the request's trace id.
type Context struct {
	context.Context

	*apihttp.Request

	*container.Container

	*logging.ContextLogger
}

// NewContext builds the Context a Handler runs with.
func NewContext(ctx context.Context, r *apihttp.Request, c *container.Container) *Context {
	return &Context{
		Context:       ctx,
		Request:       r,
		Container:     c,
		ContextLogger: logging.NewContextLogger(ctx, c.Logger),
	}
}
