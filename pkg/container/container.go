/*
Package container holds the application level concerns shared by every request: the logger, the metrics
manager and the document store the employee records live in.

Supported stores:
  - MongoDB (STORE_BACKEND=mongo, the default)
  - BadgerDB, embedded (STORE_BACKEND=badger)
*/
package container

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/staffdesk/employee-api/pkg/config"
	"github.com/staffdesk/employee-api/pkg/datasource/badger"
	"github.com/staffdesk/employee-api/pkg/datasource/mongo"
	"github.com/staffdesk/employee-api/pkg/logging"
	"github.com/staffdesk/employee-api/pkg/metrics"
)

const (
	BackendMongo  = "mongo"
	BackendBadger = "badger"

	defaultMongoConnectTimeout = 3 * time.Second
)

var errUnknownBackend = errors.New("unknown STORE_BACKEND")

// Container is a collection of all common application level concerns. Exactly one of Mongo and Badger is
// set, depending on STORE_BACKEND.
type Container struct {
	logging.Logger

	appName    string
	appVersion string
	backend    string

	metricsManager metrics.Manager

	Mongo  *mongo.Client
	Badger *badger.Client
}

// NewContainer builds the logger, the metrics manager and the configured store client. The store is not
// contacted until Connect is called.
func NewContainer(conf config.Config) (*Container, error) {
	c := &Container{
		appName:    conf.GetOrDefault("APP_NAME", "employee-api"),
		appVersion: conf.GetOrDefault("APP_VERSION", "dev"),
		backend:    strings.ToLower(conf.GetOrDefault("STORE_BACKEND", BackendMongo)),
	}

	c.Logger = logging.NewLogger(logging.GetLevelFromString(conf.Get("LOG_LEVEL")))

	c.Debug("Container is being created")

	c.metricsManager = metrics.NewMetricsManager(c.Logger)

	c.registerFrameworkMetrics()

	// one instance of the app is running with these details
	c.Metrics().SetGauge("app_info", 1, "app_name", c.GetAppName(), "app_version", c.GetAppVersion())

	tracer := otel.GetTracerProvider().Tracer(c.GetAppName())

	switch c.backend {
	case BackendMongo:
		c.Mongo = mongo.New(mongo.Config{
			URI:            conf.Get("MONGO_URI"),
			Database:       conf.Get("MONGO_DATABASE"),
			ConnectTimeout: c.mongoConnectTimeout(conf),
		})
		c.Mongo.UseLogger(c.Logger)
		c.Mongo.UseMetrics(c.Metrics())
		c.Mongo.UseTracer(tracer)
	case BackendBadger:
		dir := conf.Get("BADGER_DIR")

		c.Badger = badger.New(badger.Configs{DirPath: dir, InMemory: dir == ""})
		c.Badger.UseLogger(c.Logger)
		c.Badger.UseMetrics(c.Metrics())
		c.Badger.UseTracer(tracer)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownBackend, c.backend)
	}

	return c, nil
}

func (c *Container) mongoConnectTimeout(conf config.Config) time.Duration {
	v := conf.Get("MONGO_CONNECT_TIMEOUT")
	if v == "" {
		return defaultMongoConnectTimeout
	}

	timeout, err := time.ParseDuration(v)
	if err != nil || timeout <= 0 {
		c.Errorf("invalid value %q for MONGO_CONNECT_TIMEOUT, using default of %v", v, defaultMongoConnectTimeout)

		return defaultMongoConnectTimeout
	}

	return timeout
}

// Connect opens the configured store. An unreachable store is an error, so the application never starts
// serving without its data.
func (c *Container) Connect(ctx context.Context) error {
	switch {
	case c.Mongo != nil:
		return c.Mongo.Connect(ctx)
	case c.Badger != nil:
		return c.Badger.Connect()
	}

	return nil
}

// Close releases the store connection.
func (c *Container) Close() error {
	var err error

	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = errors.Join(err, c.Mongo.Close(ctx))
	}

	if c.Badger != nil {
		err = errors.Join(err, c.Badger.Close())
	}

	return err
}

func (c *Container) Metrics() metrics.Manager {
	return c.metricsManager
}

func (c *Container) Backend() string {
	return c.backend
}

func (c *Container) GetAppName() string {
	return c.appName
}

func (c *Container) GetAppVersion() string {
	return c.appVersion
}

func (c *Container) registerFrameworkMetrics() {
	c.Metrics().NewGauge("app_info", "Info for app_name and app_version.")

	metrics.RegisterSystemMetrics(c.Metrics())

	httpBuckets := []float64{.001, .003, .005, .01, .02, .03, .05, .1, .2, .3, .5, .75, 1, 2, 3, 5, 10, 30}
	c.Metrics().NewHistogram("app_http_response", "Response time of HTTP requests in seconds.", httpBuckets...)
}
