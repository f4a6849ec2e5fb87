// Package server assembles the order engine and its HTTP routes.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"roboadvisor/internal/calendar"
	"roboadvisor/internal/config"
	"roboadvisor/internal/database"
	_ "roboadvisor/internal/docs" // swagger spec
	"roboadvisor/internal/handlers"
	"roboadvisor/internal/logger"
	"roboadvisor/internal/middleware"
	"roboadvisor/internal/services"
	"roboadvisor/internal/settings"
	"roboadvisor/internal/store"
	"roboadvisor/internal/uuid"
)

// App is a fully wired order engine.
type App struct {
	Router    *gin.Engine
	Precision *settings.Precision
	Ledger    store.Ledger

	db *database.Manager
}

// Option customises New.
type Option func(*services.OrderOptions)

// WithClock replaces the wall clock used to stamp orders.
func WithClock(clock func() time.Time) Option {
	return func(o *services.OrderOptions) { o.Clock = clock }
}

// WithItemIDs replaces the line item id generator.
func WithItemIDs(next func() string) Option {
	return func(o *services.OrderOptions) { o.NewItemID = next }
}

// New builds the ledger, services and router described by cfg.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	log := logger.Get()

	policy, err := calendar.LoadPolicy(cfg.MarketTimezone)
	if err != nil {
		return nil, err
	}

	precision, err := settings.NewPrecision(cfg.DefaultPrecision)
	if err != nil {
		return nil, fmt.Errorf("invalid default precision %d: %w", cfg.DefaultPrecision, err)
	}

	nextID, err := uuid.ForVersion(cfg.ItemIDVersion)
	if err != nil {
		return nil, err
	}

	app := &App{Precision: precision}

	switch cfg.LedgerBackend {
	case config.LedgerSQLite:
		app.db, err = database.NewManager(cfg.SQLiteDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open ledger database: %w", err)
		}
		if err := app.db.Migrate(); err != nil {
			_ = app.db.Close()
			return nil, fmt.Errorf("failed to migrate ledger database: %w", err)
		}
		app.Ledger = store.NewSQLLedger(app.db.DB())
	default:
		app.Ledger = store.NewMemoryLedger()
	}
	log.Infow("ledger ready", "backend", cfg.LedgerBackend, "market_timezone", cfg.MarketTimezone)

	orderOpts := services.OrderOptions{
		DefaultPrice: cfg.DefaultPrice,
		Currency:     cfg.Currency,
		NewItemID:    nextID,
	}
	for _, opt := range opts {
		opt(&orderOpts)
	}

	orderService := services.NewOrderService(app.Ledger, precision, policy, orderOpts)
	settingsService := services.NewSettingsService(precision)

	app.Router = NewRouter(
		handlers.NewOrderHandler(orderService),
		handlers.NewConfigHandler(settingsService),
	)
	return app, nil
}

// Close releases the ledger database, if any.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// NewRouter registers every route on a new Gin engine.
func NewRouter(orderHandler *handlers.OrderHandler, configHandler *handlers.ConfigHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/order", orderHandler.SubmitOrder)
	router.GET("/orders", orderHandler.ListOrders)

	router.GET("/config/precision", configHandler.GetPrecision)
	router.POST("/config/precision", configHandler.SetPrecision)

	router.NoRoute(middleware.NotFound())

	return router
}
