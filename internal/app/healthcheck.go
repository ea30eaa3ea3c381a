package app

import (
	"context"
)

type SystemInfo struct {
	Version     string
	Environment string
}

type Health struct {
	Status     string
	SystemInfo SystemInfo
	Components map[string]string
}

// Health reports whether the application and the Redis inventory it
// reserves seats against are reachable.
func (app *Application) Health(ctx context.Context) Health {
	health := Health{
		Status: "UP",
		SystemInfo: SystemInfo{
			Version:     version,
			Environment: app.config.Env,
		},
		Components: map[string]string{},
	}

	if app.redis == nil {
		return health
	}

	err := app.redis.Ping(ctx).Err()
	if err != nil {
		app.logger.Error("redis health check failed", "error", err)
		health.Status = "DOWN"
		health.Components["redis"] = "DOWN"
		return health
	}

	health.Components["redis"] = "UP"

	return health
}
