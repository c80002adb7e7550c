// Package badger wraps an embedded BadgerDB key-value store with the same logging, metrics, tracing and
// health surface as the other datasources.
package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrKeyNotFound is returned by Get when the key does not exist.
	ErrKeyNotFound = badger.ErrKeyNotFound

	errStatusDown   = errors.New("status down")
	errNotConnected = errors.New("badger client is not connected")
)

type Configs struct {
	DirPath string
	// InMemory keeps all data in memory; DirPath is ignored.
	InMemory bool
}

type Client struct {
	db      *badger.DB
	configs Configs
	logger  Logger
	metrics Metrics
	tracer  trace.Tracer
}

func New(configs Configs) *Client {
	return &Client{configs: configs}
}

// UseLogger sets the logger for the BadgerDB client which asserts the Logger interface.
func (c *Client) UseLogger(logger any) {
	if l, ok := logger.(Logger); ok {
		c.logger = l
	}
}

// UseMetrics sets the metrics for the BadgerDB client which asserts the Metrics interface.
func (c *Client) UseMetrics(metrics any) {
	if m, ok := metrics.(Metrics); ok {
		c.metrics = m
	}
}

// UseTracer sets the tracer for BadgerDB client.
func (c *Client) UseTracer(tracer any) {
	if t, ok := tracer.(trace.Tracer); ok {
		c.tracer = t
	}
}

// Connect opens the database and registers the badger histogram.
func (c *Client) Connect() error {
	c.logger.Debugf("connecting to BadgerDB at %v", c.location())

	badgerBuckets := []float64{.05, .075, .1, .125, .15, .2, .3, .5, .75, 1, 2, 3, 4, 5, 7.5, 10}
	c.metrics.NewHistogram("app_badger_stats", "Response time of Badger queries in milliseconds.", badgerBuckets...)

	opts := badger.DefaultOptions(c.configs.DirPath).WithLogger(nil)
	if c.configs.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		c.logger.Errorf("error while connecting to BadgerDB: %v", err)

		return err
	}

	c.db = db

	c.logger.Infof("connected to BadgerDB at %v", c.location())

	return nil
}

// Close closes the database. Closing an unconnected client is a no-op.
func (c *Client) Close() error {
	if c.db == nil || c.db.IsClosed() {
		return nil
	}

	return c.db.Close()
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	start := time.Now()
	span := c.addTrace(ctx, "get", key)

	var value []byte

	// read-only transaction
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}

		value, err = item.ValueCopy(nil)

		return err
	})

	c.sendOperationStats(start, "GET", "get", span, err, key)

	if err != nil {
		c.logger.Debugf("error while fetching data for key: %v, error: %v", key, err)

		return "", err
	}

	return string(value), nil
}

func (c *Client) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	span := c.addTrace(ctx, "set", key)

	err := c.useTransaction(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})

	c.sendOperationStats(start, "SET", "set", span, err, key)

	return err
}

// Delete removes key. Deleting a key that does not exist succeeds.
func (c *Client) Delete(ctx context.Context, key string) error {
	start := time.Now()
	span := c.addTrace(ctx, "delete", key)

	err := c.useTransaction(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})

	c.sendOperationStats(start, "DELETE", "delete", span, err, key)

	return err
}

// Scan returns the values of every key starting with prefix, in key order.
func (c *Client) Scan(ctx context.Context, prefix string) ([]string, error) {
	start := time.Now()
	span := c.addTrace(ctx, "scan", prefix)

	values := make([]string, 0)

	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			v, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}

			values = append(values, string(v))
		}

		return nil
	})

	c.sendOperationStats(start, "SCAN", "scan", span, err, prefix)

	if err != nil {
		return nil, err
	}

	return values, nil
}

func (c *Client) useTransaction(f func(txn *badger.Txn) error) error {
	txn := c.db.NewTransaction(true)
	defer txn.Discard()

	err := f(txn)
	if err != nil {
		c.logger.Debugf("error while executing transaction: %v", err)

		return err
	}

	err = txn.Commit()
	if err != nil {
		c.logger.Debugf("error while committing transaction: %v", err)

		return err
	}

	return nil
}

func (c *Client) sendOperationStats(start time.Time, methodType, method string, span trace.Span, err error,
	key string) {
	duration := time.Since(start).Microseconds()

	c.logger.Debug(&Log{
		Type:     methodType,
		Duration: duration,
		Key:      key,
	})

	if span != nil {
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		span.SetAttributes(attribute.Int64(fmt.Sprintf("badger.%v.duration(μs)", method), duration))
		span.End()
	}

	c.metrics.RecordHistogram(context.Background(), "app_badger_stats", float64(duration)/1000,
		"database", c.location(), "type", methodType)
}

func (c *Client) addTrace(ctx context.Context, method, key string) trace.Span {
	if c.tracer == nil {
		return nil
	}

	_, span := c.tracer.Start(ctx, fmt.Sprintf("badger-%v", method))

	span.SetAttributes(
		attribute.String("badger.key", key),
	)

	return span
}

func (c *Client) location() string {
	if c.configs.InMemory {
		return "memory"
	}

	return c.configs.DirPath
}

type Health struct {
	Status  string         `json:"status,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func (c *Client) HealthCheck(context.Context) (any, error) {
	h := Health{
		Details: make(map[string]any),
	}

	h.Details["location"] = c.location()

	if c.db == nil {
		h.Status = "DOWN"

		return &h, errNotConnected
	}

	if c.db.IsClosed() {
		h.Status = "DOWN"

		return &h, errStatusDown
	}

	h.Status = "UP"

	return &h, nil
}
