package server

import (
	"context"
	"errors"
	"time"

	"github.com/staffdesk/employee-api/pkg/config"
)

const shutDownTimeout = 30 * time.Second

// ShutdownWithContext runs shutdownFunc and waits for it until ctx is done. If ctx expires first,
// forceCloseFunc is called and its error joined with the context error.
func ShutdownWithContext(ctx context.Context, shutdownFunc func(ctx context.Context) error, forceCloseFunc func() error) error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- shutdownFunc(ctx)
	}()

	select {
	case <-ctx.Done():
		err := ctx.Err()

		if forceCloseFunc != nil {
			err = errors.Join(err, forceCloseFunc())
		}

		return err
	case err := <-errCh:
		return err
	}
}

func getShutdownTimeoutFromConfig(cfg config.Config) (time.Duration, error) {
	value := cfg.GetOrDefault("SHUTDOWN_GRACE_PERIOD", "30s")
	if value == "" {
		return shutDownTimeout, nil
	}

	timeout, err := time.ParseDuration(value)
	if err != nil {
		return shutDownTimeout, err
	}

	return timeout, nil
}
