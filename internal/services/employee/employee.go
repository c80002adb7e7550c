package employee

import (
	"context"

	"github.com/staffdesk/employee-api/internal/mapper"
	"github.com/staffdesk/employee-api/internal/models"
	"github.com/staffdesk/employee-api/internal/stores"
	apihttp "github.com/staffdesk/employee-api/pkg/http"
)

type service struct {
	store stores.Employee
}

// New is factory function for service layer
//
//nolint:revive // service should not be used without proper initialization with required dependency
func New(s stores.Employee) service {
	return service{store: s}
}

func notFound(id string) error {
	return apihttp.ErrorEntityNotFound{Name: "id", Value: id}
}

func (s service) Save(ctx context.Context, dto models.EmployeeDTO) (models.EmployeeDTO, error) {
	e, err := s.store.Save(ctx, mapper.ToEntity(dto))
	if err != nil {
		return models.EmployeeDTO{}, err
	}

	return mapper.ToDTO(e), nil
}

func (s service) FindAll(ctx context.Context) ([]models.EmployeeDTO, error) {
	employees, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return mapper.ToDTOs(employees), nil
}

func (s service) FindByID(ctx context.Context, id string) (models.EmployeeDTO, error) {
	e, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.EmployeeDTO{}, err
	}

	if e == nil {
		return models.EmployeeDTO{}, notFound(id)
	}

	return mapper.ToDTO(*e), nil
}

// Update overwrites the name and email of the employee with the given id. Any id carried by dto is
// ignored. Concurrent updates are not detected: the last write wins.
func (s service) Update(ctx context.Context, dto models.EmployeeDTO, id string) (models.EmployeeDTO, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.EmployeeDTO{}, err
	}

	if existing == nil {
		return models.EmployeeDTO{}, notFound(id)
	}

	existing.FirstName = dto.FirstName
	existing.LastName = dto.LastName
	existing.Email = dto.Email

	e, err := s.store.Save(ctx, *existing)
	if err != nil {
		return models.EmployeeDTO{}, err
	}

	return mapper.ToDTO(e), nil
}

// Delete does not check that the employee exists.
func (s service) Delete(ctx context.Context, id string) error {
	return s.store.DeleteByID(ctx, id)
}
