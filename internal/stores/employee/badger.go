package employee

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/staffdesk/employee-api/internal/models"
	"github.com/staffdesk/employee-api/pkg/datasource/badger"
	apihttp "github.com/staffdesk/employee-api/pkg/http"
)

const keyPrefix = "employee:"

type badgerStore struct {
	client *badger.Client
}

// NewBadger returns an Employee store keeping each record as JSON under "employee:<id>".
//
//nolint:revive // badgerStore should not be used without a connected client
func NewBadger(client *badger.Client) badgerStore {
	return badgerStore{client: client}
}

func key(id string) string {
	return keyPrefix + id
}

// Save generates a random UUID for employees without one.
func (s badgerStore) Save(ctx context.Context, e models.Employee) (models.Employee, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	value, err := json.Marshal(e)
	if err != nil {
		return models.Employee{}, err
	}

	if err = s.client.Set(ctx, key(e.ID), string(value)); err != nil {
		return models.Employee{}, apihttp.ErrorDB{Err: err, Message: "error while saving employee"}
	}

	return e, nil
}

func (s badgerStore) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	value, err := s.client.Get(ctx, key(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil //nolint:nilnil // an absent employee is not an error
	}

	if err != nil {
		return nil, apihttp.ErrorDB{Err: err, Message: "error while fetching employee"}
	}

	var e models.Employee

	if err = json.Unmarshal([]byte(value), &e); err != nil {
		return nil, apihttp.ErrorDB{Err: err, Message: "stored employee is corrupt"}
	}

	return &e, nil
}

func (s badgerStore) FindAll(ctx context.Context) ([]models.Employee, error) {
	values, err := s.client.Scan(ctx, keyPrefix)
	if err != nil {
		return nil, apihttp.ErrorDB{Err: err, Message: "error while fetching employees"}
	}

	employees := make([]models.Employee, 0, len(values))

	for _, v := range values {
		var e models.Employee

		if err = json.Unmarshal([]byte(v), &e); err != nil {
			return nil, apihttp.ErrorDB{Err: err, Message: "stored employee is corrupt"}
		}

		employees = append(employees, e)
	}

	return employees, nil
}

func (s badgerStore) DeleteByID(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, key(id)); err != nil {
		return apihttp.ErrorDB{Err: err, Message: "error while deleting employee"}
	}

	return nil
}
