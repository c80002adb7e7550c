package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	employeestore "github.com/staffdesk/employee-api/internal/stores/employee"
	"github.com/staffdesk/employee-api/pkg/config"
	"github.com/staffdesk/employee-api/pkg/container"
)

func TestNewStore(t *testing.T) {
	tests := []struct {
		desc    string
		backend string
	}{
		{"embedded store", container.BackendBadger},
		{"document database", container.BackendMongo},
	}

	for i, tc := range tests {
		c, err := container.NewContainer(config.NewMockConfig(map[string]string{
			"STORE_BACKEND":  tc.backend,
			"MONGO_URI":      "mongodb://localhost:27017",
			"MONGO_DATABASE": "staff",
			"LOG_LEVEL":      "ERROR",
		}))
		require.NoError(t, err, "TEST[%d], Failed.\n%s", i, tc.desc)

		expected := any(employeestore.NewMongo(c.Mongo))
		if tc.backend == container.BackendBadger {
			expected = employeestore.NewBadger(c.Badger)
		}

		assert.Equal(t, expected, newStore(c), "TEST[%d], Failed.\n%s", i, tc.desc)
	}
}
