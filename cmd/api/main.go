package main

import (
	"fmt"
	"os"

	"roboadvisor/internal/config"
	"roboadvisor/internal/logger"
	"roboadvisor/internal/server"
	"roboadvisor/internal/validator"
)

// @title           Robo-Advisor Order API
// @version         1.0
// @description     Splits model portfolio orders into per-stock line items and records them in an in-process ledger.

// @host      localhost:8080
// @BasePath  /

func main() {
	logger.Init(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	validator.Register()

	app, err := server.New(appConfig)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warnw("failed to close ledger", "error", err)
		}
	}()

	log.Infow("starting order engine",
		"port", appConfig.Port,
		"env", appConfig.Env,
		"ledger", appConfig.LedgerBackend,
		"precision", appConfig.DefaultPrecision,
		"currency", appConfig.Currency,
	)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return app.Router.Run(":" + appConfig.Port)
}
