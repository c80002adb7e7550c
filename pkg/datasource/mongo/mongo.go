// Package mongo wraps the official MongoDB driver with query logging, response time metrics, tracing
// and a health check.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultConnectTimeout = 3 * time.Second

var (
	errStatusDown    = errors.New("status down")
	errNotConnected  = errors.New("mongo client is not connected")
	errMissingConfig = errors.New("MONGO_URI and MONGO_DATABASE must be set")
)

type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type Client struct {
	*mongo.Database

	config  Config
	logger  Logger
	metrics Metrics
	tracer  trace.Tracer
}

func New(c Config) *Client {
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}

	return &Client{config: c}
}

// UseLogger sets the logger for the MongoDB client.
func (c *Client) UseLogger(logger any) {
	if l, ok := logger.(Logger); ok {
		c.logger = l
	}
}

// UseMetrics sets the metrics for the MongoDB client.
func (c *Client) UseMetrics(metrics any) {
	if m, ok := metrics.(Metrics); ok {
		c.metrics = m
	}
}

// UseTracer sets the tracer for the MongoDB client.
func (c *Client) UseTracer(tracer any) {
	if t, ok := tracer.(trace.Tracer); ok {
		c.tracer = t
	}
}

// Connect opens the connection and pings the primary so that an unreachable server is reported at
// startup rather than on the first request.
func (c *Client) Connect(ctx context.Context) error {
	if c.config.URI == "" || c.config.Database == "" {
		c.logger.Errorf("error connecting to MongoDB, err: %v", errMissingConfig)

		return errMissingConfig
	}

	c.logger.Debugf("connecting to MongoDB at %v to database %v", c.config.URI, c.config.Database)

	mongoBuckets := []float64{.05, .075, .1, .125, .15, .2, .3, .5, .75, 1, 2, 3, 4, 5, 7.5, 10}
	c.metrics.NewHistogram("app_mongo_stats", "Response time of MONGO queries in milliseconds.", mongoBuckets...)

	opts := options.Client().
		ApplyURI(c.config.URI).
		SetConnectTimeout(c.config.ConnectTimeout).
		SetServerSelectionTimeout(c.config.ConnectTimeout)

	m, err := mongo.Connect(ctx, opts)
	if err != nil {
		c.logger.Errorf("error connecting to MongoDB, err: %v", err)

		return err
	}

	pingCtx, cancel := context.WithTimeout(ctx, c.config.ConnectTimeout)
	defer cancel()

	if err = m.Ping(pingCtx, readpref.Primary()); err != nil {
		c.logger.Errorf("could not reach MongoDB at %v, err: %v", c.config.URI, err)

		_ = m.Disconnect(ctx)

		return err
	}

	c.Database = m.Database(c.config.Database)

	c.logger.Logf("connected to MongoDB at %v to database %v", c.config.URI, c.config.Database)

	return nil
}

// Close disconnects the underlying client. Closing an unconnected client is a no-op.
func (c *Client) Close(ctx context.Context) error {
	if c.Database == nil {
		return nil
	}

	return c.Database.Client().Disconnect(ctx)
}

// InsertOne inserts a single document and returns the id the server stored it under.
func (c *Client) InsertOne(ctx context.Context, collection string, document any) (any, error) {
	start := time.Now()
	tracerCtx, span := c.addTrace(ctx, "insertOne", collection)

	res, err := c.Database.Collection(collection).InsertOne(tracerCtx, document)

	c.sendOperationStats(&QueryLog{Query: "insertOne", Collection: collection, Filter: document}, start,
		span, err)

	if err != nil {
		return nil, err
	}

	return res.InsertedID, nil
}

// Find decodes every document matching filter into results, which must be a pointer to a slice.
func (c *Client) Find(ctx context.Context, collection string, filter, results any) error {
	start := time.Now()
	tracerCtx, span := c.addTrace(ctx, "find", collection)

	err := c.find(tracerCtx, collection, filter, results)

	c.sendOperationStats(&QueryLog{Query: "find", Collection: collection, Filter: filter}, start, span, err)

	return err
}

func (c *Client) find(ctx context.Context, collection string, filter, results any) error {
	cur, err := c.Database.Collection(collection).Find(ctx, filter)
	if err != nil {
		return err
	}

	defer cur.Close(ctx)

	return cur.All(ctx, results)
}

// FindOne decodes the first document matching filter into result. When nothing matches it returns
// mongo.ErrNoDocuments.
func (c *Client) FindOne(ctx context.Context, collection string, filter, result any) error {
	start := time.Now()
	tracerCtx, span := c.addTrace(ctx, "findOne", collection)

	b, err := c.Database.Collection(collection).FindOne(tracerCtx, filter).Raw()
	if err == nil {
		err = bson.Unmarshal(b, result)
	}

	c.sendOperationStats(&QueryLog{Query: "findOne", Collection: collection, Filter: filter}, start,
		span, err)

	return err
}

// UpsertOne replaces the document matching filter, inserting it when nothing matches.
func (c *Client) UpsertOne(ctx context.Context, collection string, filter, replacement any) (int64, error) {
	start := time.Now()
	tracerCtx, span := c.addTrace(ctx, "upsertOne", collection)

	res, err := c.Database.Collection(collection).ReplaceOne(tracerCtx, filter, replacement,
		options.Replace().SetUpsert(true))

	c.sendOperationStats(&QueryLog{Query: "upsertOne", Collection: collection, Filter: filter,
		Update: replacement}, start, span, err)

	if err != nil {
		return 0, err
	}

	return res.MatchedCount + res.UpsertedCount, nil
}

func (c *Client) DeleteOne(ctx context.Context, collection string, filter any) (int64, error) {
	start := time.Now()
	tracerCtx, span := c.addTrace(ctx, "deleteOne", collection)

	res, err := c.Database.Collection(collection).DeleteOne(tracerCtx, filter)

	c.sendOperationStats(&QueryLog{Query: "deleteOne", Collection: collection, Filter: filter}, start,
		span, err)

	if err != nil {
		return 0, err
	}

	return res.DeletedCount, nil
}

func (c *Client) sendOperationStats(ql *QueryLog, startTime time.Time, span trace.Span, err error) {
	duration := time.Since(startTime).Microseconds()

	ql.Duration = duration

	c.logger.Debug(ql)

	if span != nil {
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		span.SetAttributes(attribute.Int64(fmt.Sprintf("mongo.%v.duration", ql.Query), duration))
		span.End()
	}

	c.metrics.RecordHistogram(context.Background(), "app_mongo_stats", float64(duration)/1000,
		"database", c.config.Database, "type", ql.Query)
}

func (c *Client) addTrace(ctx context.Context, method, collection string) (context.Context, trace.Span) {
	if c.tracer == nil {
		return ctx, nil
	}

	return c.tracer.Start(ctx, "mongo-"+method, trace.WithAttributes(
		attribute.String("db.system", "mongodb"),
		attribute.String("db.name", c.config.Database),
		attribute.String("db.collection", collection),
	))
}

type Health struct {
	Status  string         `json:"status,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthCheck pings the primary and reports UP or DOWN. A DOWN status is always accompanied by an error.
func (c *Client) HealthCheck(ctx context.Context) (any, error) {
	h := Health{
		Details: make(map[string]any),
	}

	h.Details["database"] = c.config.Database

	if c.Database == nil {
		h.Status = "DOWN"

		return &h, errNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	if err := c.Database.Client().Ping(ctx, readpref.Primary()); err != nil {
		h.Status = "DOWN"
		h.Details["error"] = err.Error()

		return &h, errStatusDown
	}

	h.Status = "UP"

	return &h, nil
}
