package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/staffdesk/employee-api/pkg/config"
)

func TestGetConfigs(t *testing.T) {
	mockConfig := config.NewMockConfig(map[string]string{
		"ACCESS_CONTROL_ALLOW_ORIGIN":  "https://hr.example.com",
		"ACCESS_CONTROL_MAX_AGE":       "600",
		"ACCESS_CONTROL_ALLOW_HEADERS": "",
		"HTTP_PORT":                    "8000",
	})

	assert.Equal(t, map[string]string{
		"Access-Control-Allow-Origin": "https://hr.example.com",
		"Access-Control-Max-Age":      "600",
	}, GetConfigs(mockConfig))
}

func Test_convertHeaderNames(t *testing.T) {
	assert.Equal(t, "Access-Control-Expose-Headers", convertHeaderNames("ACCESS_CONTROL_EXPOSE_HEADERS"))
}
