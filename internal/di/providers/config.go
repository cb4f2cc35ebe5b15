// Package providers contains dependency injection providers for the competition server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/config"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting competition server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"database", cfg.Database.Path,
		"search_index", cfg.Search.IndexPath,
	)

	return log, nil
}
