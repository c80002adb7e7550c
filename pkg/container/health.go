package container

import "context"

const (
	statusUp       = "UP"
	statusDegraded = "DEGRADED"
)

type healthChecker interface {
	HealthCheck(ctx context.Context) (any, error)
}

// Health reports the health of every configured datasource next to the app name and version. The app is
// DEGRADED when any datasource is down.
func (c *Container) Health(ctx context.Context) any {
	var (
		healthMap = make(map[string]any)
		downCount int
	)

	checkers := map[string]healthChecker{}

	if c.Mongo != nil {
		checkers["mongo"] = c.Mongo
	}

	if c.Badger != nil {
		checkers["badger"] = c.Badger
	}

	for name, checker := range checkers {
		health, err := checker.HealthCheck(ctx)
		if err != nil {
			downCount++
		}

		healthMap[name] = health
	}

	healthMap["name"] = c.GetAppName()
	healthMap["version"] = c.GetAppVersion()

	if downCount > 0 {
		healthMap["status"] = statusDegraded
	} else {
		healthMap["status"] = statusUp
	}

	return healthMap
}
