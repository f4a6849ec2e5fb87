// Package store holds the order ledger and the idempotency ledger.
//
// Both ledgers live for the lifetime of the process. The order ledger is
// append-only and keeps insertion order; the idempotency ledger maps a
// client key to the response first returned for it. Entries are never
// evicted, so both grow without bound.
package store

import (
	"errors"
	"strings"

	"roboadvisor/internal/models"
)

// ErrDuplicateKey is returned by Commit when the idempotency key is already
// recorded. Callers serialize lookup and commit, so this signals a defect.
var ErrDuplicateKey = errors.New("idempotency key already committed")

// ErrEmptyBatch is returned by Commit when there are no line items to record.
var ErrEmptyBatch = errors.New("order batch has no line items")

// OrderFilter selects ledger entries. Empty fields are ignored; the rest are
// combined with logical AND.
type OrderFilter struct {
	Stock          string
	UserID         string
	IdempotencyKey string
	Status         string
	Type           string
	OrderID        *int64
}

// Matches reports whether o satisfies every set field of the filter.
// Type compares case-insensitively since it is stored as submitted.
func (f OrderFilter) Matches(o *models.Order) bool {
	if f.Stock != "" && o.Stock != f.Stock {
		return false
	}
	if f.UserID != "" && o.UserID != f.UserID {
		return false
	}
	if f.IdempotencyKey != "" && o.IdempotencyKey != f.IdempotencyKey {
		return false
	}
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.Type != "" && !strings.EqualFold(o.Type, f.Type) {
		return false
	}
	if f.OrderID != nil && o.OrderID != *f.OrderID {
		return false
	}
	return true
}

// Ledger is the storage contract of the order engine.
type Ledger interface {
	// NextOrderID returns the id the next committed batch must carry.
	// It does not reserve the id; only Commit advances the sequence.
	NextOrderID() (int64, error)
	// LookupResponse returns the response stored under key, if any.
	LookupResponse(key string) (*models.OrderResponse, bool, error)
	// Commit appends the line items and records resp under key as one step:
	// readers observe either none or all of it.
	Commit(key string, resp *models.OrderResponse, orders []models.Order) error
	// ListOrders returns the ledger size and the entries matching filter in
	// insertion order.
	ListOrders(filter OrderFilter) (total int64, matched []models.Order, err error)
}
