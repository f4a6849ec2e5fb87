package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"roboadvisor/internal/models"
)

// SQLLedger keeps both ledgers in a GORM database. It is used with an
// in-memory SQLite database, so contents still end with the process.
type SQLLedger struct {
	db *gorm.DB
}

// NewSQLLedger returns a ledger over db. The schema must already be migrated.
func NewSQLLedger(db *gorm.DB) *SQLLedger {
	return &SQLLedger{db: db}
}

func (l *SQLLedger) NextOrderID() (int64, error) {
	var last int64
	row := l.db.Model(&models.Order{}).Select("COALESCE(MAX(order_id), 0)").Row()
	if err := row.Scan(&last); err != nil {
		return 0, fmt.Errorf("reading last order id: %w", err)
	}
	return last + 1, nil
}

func (l *SQLLedger) LookupResponse(key string) (*models.OrderResponse, bool, error) {
	var rec models.IdempotencyRecord
	err := l.db.Where("idempotency_key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("looking up idempotency key: %w", err)
	}

	var resp models.OrderResponse
	if err := json.Unmarshal([]byte(rec.Response), &resp); err != nil {
		return nil, false, fmt.Errorf("decoding stored response for %q: %w", key, err)
	}
	return &resp, true, nil
}

func (l *SQLLedger) Commit(key string, resp *models.OrderResponse, orders []models.Order) error {
	if len(orders) == 0 {
		return ErrEmptyBatch
	}

	encoded, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}

	rows := append([]models.Order(nil), orders...)
	return l.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.IdempotencyRecord{}).Where("idempotency_key = ?", key).Count(&count).Error; err != nil {
			return fmt.Errorf("checking idempotency key: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("appending orders: %w", err)
		}
		rec := &models.IdempotencyRecord{Key: key, Response: string(encoded)}
		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("storing idempotency record: %w", err)
		}
		return nil
	})
}

func (l *SQLLedger) ListOrders(filter OrderFilter) (int64, []models.Order, error) {
	var total int64
	matched := make([]models.Order, 0)

	// Count and match in one transaction so both see the same ledger.
	err := l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).Count(&total).Error; err != nil {
			return fmt.Errorf("counting orders: %w", err)
		}
		if err := tx.Scopes(filterScope(filter)).Order("seq ASC").Find(&matched).Error; err != nil {
			return fmt.Errorf("querying orders: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return total, matched, nil
}

// filterScope translates an OrderFilter into WHERE clauses.
func filterScope(f OrderFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Stock != "" {
			db = db.Where("stock = ?", f.Stock)
		}
		if f.UserID != "" {
			db = db.Where("user_id = ?", f.UserID)
		}
		if f.IdempotencyKey != "" {
			db = db.Where("idempotency_key = ?", f.IdempotencyKey)
		}
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if f.Type != "" {
			db = db.Where("LOWER(type) = ?", strings.ToLower(f.Type))
		}
		if f.OrderID != nil {
			db = db.Where("order_id = ?", *f.OrderID)
		}
		return db
	}
}

var _ Ledger = (*SQLLedger)(nil)
