// Package mapper converts between the stored employee record and its HTTP representation.
package mapper

import "github.com/staffdesk/employee-api/internal/models"

func ToDTO(e models.Employee) models.EmployeeDTO {
	return models.EmployeeDTO{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
	}
}

// ToEntity copies every field, an empty ID included.
func ToEntity(dto models.EmployeeDTO) models.Employee {
	return models.Employee{
		ID:        dto.ID,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
	}
}

// ToDTOs keeps the order of employees. The result is never nil.
func ToDTOs(employees []models.Employee) []models.EmployeeDTO {
	dtos := make([]models.EmployeeDTO, 0, len(employees))

	for _, e := range employees {
		dtos = append(dtos, ToDTO(e))
	}

	return dtos
}
