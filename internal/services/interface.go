//go:generate go run go.uber.org/mock/mockgen -source=interface.go -destination=mock_interface.go -package=services

package services

import (
	"context"

	"github.com/staffdesk/employee-api/internal/models"
)

type Employee interface {
	Save(ctx context.Context, dto models.EmployeeDTO) (models.EmployeeDTO, error)
	FindAll(ctx context.Context) ([]models.EmployeeDTO, error)
	FindByID(ctx context.Context, id string) (models.EmployeeDTO, error)
	Update(ctx context.Context, dto models.EmployeeDTO, id string) (models.EmployeeDTO, error)
	Delete(ctx context.Context, id string) error
}
