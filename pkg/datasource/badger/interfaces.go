package badger

import "context"

type Logger interface {
	Debug(args ...any)
	Debugf(pattern string, args ...any)
	Infof(pattern string, args ...any)
	Errorf(pattern string, args ...any)
}

type Metrics interface {
	NewHistogram(name, desc string, buckets ...float64)

	RecordHistogram(ctx context.Context, name string, value float64, labels ...string)
}
