package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"roboadvisor/internal/logger"
	"roboadvisor/internal/models"
)

// ledgerModels lists the tables backing the SQL ledger.
var ledgerModels = []interface{}{
	&models.Order{},
	&models.IdempotencyRecord{},
}

// Manager handles database operations
type Manager struct {
	db *gorm.DB
}

// NewManager opens the SQLite database at dsn. In-memory DSNs must use a
// shared cache so that every pooled connection sees the same data.
func NewManager(dsn string) (*Manager, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	// A single connection keeps SQLite's shared-cache table locks out of the way;
	// writers are already serialized by the order service.
	sqlDB.SetMaxOpenConns(1)

	return &Manager{db: db}, nil
}

// Migrate creates the ledger tables.
func (m *Manager) Migrate() error {
	logger.Get().Info("Migrating ledger schema...")
	if err := m.db.AutoMigrate(ledgerModels...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close releases the underlying connection pool. For in-memory databases
// this discards the ledger.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
