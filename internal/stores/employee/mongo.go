package employee

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/staffdesk/employee-api/internal/models"
	"github.com/staffdesk/employee-api/pkg/datasource/mongo"
	apihttp "github.com/staffdesk/employee-api/pkg/http"
)

const collection = "employees"

// document is an employee as stored in mongo, with the id kept as an ObjectID.
type document struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	models.Employee `bson:",inline"`
}

func (d document) toEntity() models.Employee {
	e := d.Employee
	e.ID = d.ID.Hex()

	return e
}

type mongoStore struct {
	client *mongo.Client
}

// NewMongo returns an Employee store backed by the employees collection.
//
//nolint:revive // mongoStore should not be used without a connected client
func NewMongo(client *mongo.Client) mongoStore {
	return mongoStore{client: client}
}

func (s mongoStore) Save(ctx context.Context, e models.Employee) (models.Employee, error) {
	if e.ID == "" {
		insertedID, err := s.client.InsertOne(ctx, collection, document{Employee: e})
		if err != nil {
			return models.Employee{}, apihttp.ErrorDB{Err: err, Message: "error while inserting employee"}
		}

		oid, ok := insertedID.(primitive.ObjectID)
		if !ok {
			return models.Employee{}, apihttp.ErrorDB{Message: "store returned a non ObjectID id"}
		}

		e.ID = oid.Hex()

		return e, nil
	}

	oid, err := primitive.ObjectIDFromHex(e.ID)
	if err != nil {
		return models.Employee{}, apihttp.ErrorInvalidParam{Params: []string{"id"}}
	}

	if _, err = s.client.UpsertOne(ctx, collection, bson.M{"_id": oid}, document{ID: oid, Employee: e}); err != nil {
		return models.Employee{}, apihttp.ErrorDB{Err: err, Message: "error while saving employee"}
	}

	return e, nil
}

// FindByID treats an id that is not a valid ObjectID as absent, since no stored record can carry it.
func (s mongoStore) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil //nolint:nilnil // an absent employee is not an error
	}

	var doc document

	err = s.client.FindOne(ctx, collection, bson.M{"_id": oid}, &doc)
	if errors.Is(err, mongodriver.ErrNoDocuments) {
		return nil, nil //nolint:nilnil // an absent employee is not an error
	}

	if err != nil {
		return nil, apihttp.ErrorDB{Err: err, Message: "error while fetching employee"}
	}

	e := doc.toEntity()

	return &e, nil
}

func (s mongoStore) FindAll(ctx context.Context) ([]models.Employee, error) {
	var docs []document

	if err := s.client.Find(ctx, collection, bson.D{}, &docs); err != nil {
		return nil, apihttp.ErrorDB{Err: err, Message: "error while fetching employees"}
	}

	employees := make([]models.Employee, 0, len(docs))

	for _, d := range docs {
		employees = append(employees, d.toEntity())
	}

	return employees, nil
}

func (s mongoStore) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	if _, err = s.client.DeleteOne(ctx, collection, bson.M{"_id": oid}); err != nil {
		return apihttp.ErrorDB{Err: err, Message: "error while deleting employee"}
	}

	return nil
}
