//go:generate go run go.uber.org/mock/mockgen -source=interface.go -destination=mock_interface.go -package=stores

package stores

import (
	"context"

	"github.com/staffdesk/employee-api/internal/models"
)

// Employee persists employee records.
type Employee interface {
	// Save inserts e when its ID is blank, letting the store assign one, and replaces the record
	// with that ID otherwise. The stored record is returned.
	Save(ctx context.Context, e models.Employee) (models.Employee, error)
	// FindByID returns nil and no error when no record has the ID.
	FindByID(ctx context.Context, id string) (*models.Employee, error)
	FindAll(ctx context.Context) ([]models.Employee, error)
	// DeleteByID succeeds when no record has the ID.
	DeleteByID(ctx context.Context, id string) error
}
