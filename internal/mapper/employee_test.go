package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/staffdesk/employee-api/internal/models"
)

func TestToDTO_ToEntity(t *testing.T) {
	tests := []struct {
		desc   string
		entity models.Employee
		dto    models.EmployeeDTO
	}{
		{"all fields set",
			models.Employee{ID: "64b7f0c2a1", FirstName: "Jane", LastName: "Doe", Email: "jane@x.io"},
			models.EmployeeDTO{ID: "64b7f0c2a1", FirstName: "Jane", LastName: "Doe", Email: "jane@x.io"}},
		{"empty id", models.Employee{FirstName: "Jim", LastName: "Beam"},
			models.EmployeeDTO{FirstName: "Jim", LastName: "Beam"}},
		{"zero value", models.Employee{}, models.EmployeeDTO{}},
	}

	for i, tc := range tests {
		assert.Equal(t, tc.dto, ToDTO(tc.entity), "TEST[%d], Failed.\n%s", i, tc.desc)
		assert.Equal(t, tc.entity, ToEntity(tc.dto), "TEST[%d], Failed.\n%s", i, tc.desc)
		assert.Equal(t, tc.entity, ToEntity(ToDTO(tc.entity)), "TEST[%d], Failed.\n%s", i, tc.desc)
	}
}

func TestToDTOs(t *testing.T) {
	tests := []struct {
		desc     string
		input    []models.Employee
		expected []models.EmployeeDTO
	}{
		{"nil input", nil, []models.EmployeeDTO{}},
		{"empty input", []models.Employee{}, []models.EmployeeDTO{}},
		{"order is kept", []models.Employee{{ID: "2", FirstName: "B"}, {ID: "1", FirstName: "A"}},
			[]models.EmployeeDTO{{ID: "2", FirstName: "B"}, {ID: "1", FirstName: "A"}}},
	}

	for i, tc := range tests {
		out := ToDTOs(tc.input)

		assert.NotNil(t, out, "TEST[%d], Failed.\n%s", i, tc.desc)
		assert.Equal(t, tc.expected, out, "TEST[%d], Failed.\n%s", i, tc.desc)
	}
}
