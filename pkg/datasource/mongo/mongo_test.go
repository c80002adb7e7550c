package mongo

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"

	"github.com/staffdesk/employee-api/pkg/logging"
)

func newTestClient(t *testing.T, metrics Metrics) *Client {
	t.Helper()

	cl := New(Config{URI: "mongodb://localhost:27017", Database: "staff"})
	cl.UseLogger(logging.NewMockLogger(logging.DEBUG))
	cl.UseMetrics(metrics)

	return cl
}

func Test_ConnectErrors(t *testing.T) {
	tests := []struct {
		desc   string
		config Config
	}{
		{"missing uri", Config{Database: "staff"}},
		{"missing database", Config{URI: "mongodb://localhost:27017"}},
		{"unparsable uri", Config{URI: "mongo", Database: "staff"}},
		{"unreachable server", Config{URI: "mongodb://127.0.0.1:1", Database: "staff",
			ConnectTimeout: 100 * time.Millisecond}},
	}

	for i, tc := range tests {
		ctrl := gomock.NewController(t)
		metrics := NewMockMetrics(ctrl)
		logger := NewMockLogger(ctrl)

		metrics.EXPECT().NewHistogram("app_mongo_stats", "Response time of MONGO queries in milliseconds.",
			gomock.Any()).AnyTimes()
		logger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()
		logger.EXPECT().Errorf(gomock.Any(), gomock.Any()).Times(1)

		cl := New(tc.config)
		cl.UseLogger(logger)
		cl.UseMetrics(metrics)

		err := cl.Connect(context.Background())

		require.Error(t, err, "TEST[%d], Failed.\n%s", i, tc.desc)
		assert.Nil(t, cl.Database, "TEST[%d], Failed.\n%s", i, tc.desc)
		require.NoError(t, cl.Close(context.Background()), "TEST[%d], Failed.\n%s", i, tc.desc)
	}
}

func Test_InsertOne(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	metrics := NewMockMetrics(gomock.NewController(t))
	metrics.EXPECT().RecordHistogram(context.Background(), "app_mongo_stats", gomock.Any(), "database", "staff",
		"type", "insertOne").Times(2)

	cl := newTestClient(t, metrics)

	mt.Run("insertOneSuccess", func(mt *mtest.T) {
		cl.Database = mt.DB
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id := primitive.NewObjectID()

		resp, err := cl.InsertOne(context.Background(), mt.Coll.Name(), bson.M{"_id": id, "firstName": "John"})

		require.NoError(t, err)
		assert.Equal(t, id, resp)
	})

	mt.Run("insertOneError", func(mt *mtest.T) {
		cl.Database = mt.DB
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   1,
			Code:    11000,
			Message: "duplicate key error",
		}))

		resp, err := cl.InsertOne(context.Background(), mt.Coll.Name(), bson.M{"firstName": "John"})

		assert.Nil(t, resp)
		require.ErrorContains(t, err, "duplicate key error")
	})
}

func Test_FindOne(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	metrics := NewMockMetrics(gomock.NewController(t))
	metrics.EXPECT().RecordHistogram(context.Background(), "app_mongo_stats", gomock.Any(), "database", "staff",
		"type", "findOne").Times(2)

	cl := newTestClient(t, metrics)

	mt.Run("findOneSuccess", func(mt *mtest.T) {
		cl.Database = mt.DB

		id := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "staff.employees", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "firstName", Value: "John"},
			{Key: "email", Value: "john.doe@gmail.com"},
		}))

		var result struct {
			ID        primitive.ObjectID `bson:"_id"`
			FirstName string             `bson:"firstName"`
			Email     string             `bson:"email"`
		}

		err := cl.FindOne(context.Background(), mt.Coll.Name(), bson.M{"_id": id}, &result)

		require.NoError(t, err)
		assert.Equal(t, id, result.ID)
		assert.Equal(t, "John", result.FirstName)
		assert.Equal(t, "john.doe@gmail.com", result.Email)
	})

	mt.Run("findOneNoDocuments", func(mt *mtest.T) {
		cl.Database = mt.DB
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "staff.employees", mtest.FirstBatch))

		var result bson.M

		err := cl.FindOne(context.Background(), mt.Coll.Name(), bson.M{"_id": primitive.NewObjectID()}, &result)

		require.ErrorIs(t, err, mongo.ErrNoDocuments)
	})
}

func Test_Find(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	metrics := NewMockMetrics(gomock.NewController(t))
	metrics.EXPECT().RecordHistogram(context.Background(), "app_mongo_stats", gomock.Any(), "database", "staff",
		"type", "find").Times(3)

	cl := newTestClient(t, metrics)

	mt.Run("findSuccess", func(mt *mtest.T) {
		cl.Database = mt.DB

		first := mtest.CreateCursorResponse(1, "staff.employees", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "firstName", Value: "John"}})
		second := mtest.CreateCursorResponse(1, "staff.employees", mtest.NextBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "firstName", Value: "Jane"}})
		killCursors := mtest.CreateCursorResponse(0, "staff.employees", mtest.NextBatch)

		mt.AddMockResponses(first, second, killCursors)

		var results []bson.M

		err := cl.Find(context.Background(), mt.Coll.Name(), bson.D{}, &results)

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "John", results[0]["firstName"])
		assert.Equal(t, "Jane", results[1]["firstName"])
	})

	mt.Run("findEmpty", func(mt *mtest.T) {
		cl.Database = mt.DB
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "staff.employees", mtest.FirstBatch))

		results := make([]bson.M, 0)

		err := cl.Find(context.Background(), mt.Coll.Name(), bson.D{}, &results)

		require.NoError(t, err)
		assert.Empty(t, results)
	})

	mt.Run("findCursorError", func(mt *mtest.T) {
		cl.Database = mt.DB
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		var results []bson.M

		err := cl.Find(context.Background(), mt.Coll.Name(), bson.D{}, &results)

		require.ErrorContains(t, err, "database response does not contain a cursor")
	})
}

func Test_UpsertAndDelete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	metrics := NewMockMetrics(gomock.NewController(t))
	metrics.EXPECT().RecordHistogram(context.Background(), "app_mongo_stats", gomock.Any(), "database", "staff",
		"type", gomock.Any()).Times(4)

	cl := newTestClient(t, metrics)

	mt.Run("upsertOneReplaced", func(mt *mtest.T) {
		cl.Database = mt.DB
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		n, err := cl.UpsertOne(context.Background(), mt.Coll.Name(), bson.M{"_id": "X"}, bson.M{"firstName": "Jim"})

		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	mt.Run("upsertOneError", func(mt *mtest.T) {
		cl.Database = mt.DB
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad value"}))

		n, err := cl.UpsertOne(context.Background(), mt.Coll.Name(), bson.M{"_id": "X"}, bson.M{"firstName": "Jim"})

		require.ErrorContains(t, err, "bad value")
		assert.Zero(t, n)
	})

	mt.Run("deleteOneSuccess", func(mt *mtest.T) {
		cl.Database = mt.DB
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		n, err := cl.DeleteOne(context.Background(), mt.Coll.Name(), bson.M{"_id": "X"})

		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	mt.Run("deleteOneNothingMatched", func(mt *mtest.T) {
		cl.Database = mt.DB
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		n, err := cl.DeleteOne(context.Background(), mt.Coll.Name(), bson.M{"_id": "X"})

		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func Test_Tracing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	metrics := NewMockMetrics(gomock.NewController(t))
	metrics.EXPECT().RecordHistogram(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	cl := newTestClient(t, metrics)
	cl.UseTracer(tp.Tracer("mongo-test"))

	mt.Run("spansPerOperation", func(mt *mtest.T) {
		cl.Database = mt.DB

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "staff.employees", mtest.FirstBatch))

		var result bson.M

		err := cl.FindOne(context.Background(), mt.Coll.Name(), bson.M{"_id": "missing"}, &result)
		require.ErrorIs(t, err, mongo.ErrNoDocuments)

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad value"}))

		_, err = cl.DeleteOne(context.Background(), mt.Coll.Name(), bson.M{"_id": "X"})
		require.Error(t, err)
	})

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "mongo-findOne", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, "mongo-deleteOne", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}

func Test_HealthCheck(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	cl := newTestClient(t, NewMockMetrics(gomock.NewController(t)))

	h, err := cl.HealthCheck(context.Background())

	require.ErrorIs(t, err, errNotConnected)
	assert.Equal(t, "DOWN", h.(*Health).Status)

	mt.Run("healthUp", func(mt *mtest.T) {
		cl.Database = mt.DB
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		h, err := cl.HealthCheck(context.Background())

		require.NoError(t, err)
		assert.Equal(t, &Health{Status: "UP", Details: map[string]any{"database": "staff"}}, h)
	})

	mt.Run("healthDown", func(mt *mtest.T) {
		cl.Database = mt.DB
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Message: "unauthorized"}))

		h, err := cl.HealthCheck(context.Background())

		require.ErrorIs(t, err, errStatusDown)
		assert.Contains(t, fmt.Sprint(h), "DOWN")
	})
}

func TestQueryLog_PrettyPrint(t *testing.T) {
	tests := []struct {
		desc     string
		queryLog QueryLog
		expected string
	}{
		{
			desc: "all fields present",
			queryLog: QueryLog{
				Query:      "upsertOne",
				Duration:   12345,
				Collection: "employees",
				Filter:     map[string]string{"_id": "X"},
				Update:     map[string]string{"firstName": "Jim"},
			},
			expected: `employees {"_id":"X"}  {"firstName":"Jim"}`,
		},
		{
			desc:     "missing optional fields",
			queryLog: QueryLog{Query: "find", Duration: 6789},
			expected: "MONGO",
		},
	}

	for i, tc := range tests {
		var buf bytes.Buffer

		tc.queryLog.PrettyPrint(&buf)

		assert.Contains(t, buf.String(), tc.expected, "TEST[%d], Failed.\n%s", i, tc.desc)
	}
}
