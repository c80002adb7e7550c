package employee

import (
	"github.com/staffdesk/employee-api/internal/models"
	"github.com/staffdesk/employee-api/internal/services"
	"github.com/staffdesk/employee-api/pkg/server"
)

type handler struct {
	service services.Employee
}

// New is factory function for handler layer
//
//nolint:revive // handler should not be used without proper initialization with required dependency
func New(s services.Employee) handler {
	return handler{service: s}
}

// Register mounts the employee routes on app under /api/v1/employee.
func (h handler) Register(app *server.App) {
	app.POST("/api/v1/employee", h.Create)
	app.GET("/api/v1/employee", h.GetAll)
	app.GET("/api/v1/employee/{id}", h.Get)
	app.PUT("/api/v1/employee/{id}", h.Update)
	app.DELETE("/api/v1/employee/{id}", h.Delete)
}

func (h handler) Create(ctx *server.Context) (any, error) {
	var dto models.EmployeeDTO

	if err := ctx.Bind(&dto); err != nil {
		return nil, err
	}

	// ids are assigned by the store; a POST never targets an existing record.
	dto.ID = ""

	resp, err := h.service.Save(ctx, dto)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (h handler) Get(ctx *server.Context) (any, error) {
	resp, err := h.service.FindByID(ctx, ctx.PathParam("id"))
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (h handler) GetAll(ctx *server.Context) (any, error) {
	resp, err := h.service.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (h handler) Update(ctx *server.Context) (any, error) {
	var dto models.EmployeeDTO

	if err := ctx.Bind(&dto); err != nil {
		return nil, err
	}

	resp, err := h.service.Update(ctx, dto, ctx.PathParam("id"))
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (h handler) Delete(ctx *server.Context) (any, error) {
	if err := h.service.Delete(ctx, ctx.PathParam("id")); err != nil {
		return nil, err
	}

	return nil, nil
}
