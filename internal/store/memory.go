package store

import (
	"fmt"
	"sync"

	"roboadvisor/internal/models"
)

// MemoryLedger keeps both ledgers in process memory.
type MemoryLedger struct {
	mu        sync.RWMutex
	orders    []models.Order
	responses map[string]*models.OrderResponse
	lastID    int64
}

// NewMemoryLedger returns an empty ledger whose first order id is 1.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{responses: make(map[string]*models.OrderResponse)}
}

func (l *MemoryLedger) NextOrderID() (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastID + 1, nil
}

func (l *MemoryLedger) LookupResponse(key string) (*models.OrderResponse, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	resp, ok := l.responses[key]
	if !ok {
		return nil, false, nil
	}
	return resp.Clone(), true, nil
}

func (l *MemoryLedger) Commit(key string, resp *models.OrderResponse, orders []models.Order) error {
	if len(orders) == 0 {
		return ErrEmptyBatch
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.responses[key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	if resp.OrderID <= l.lastID {
		return fmt.Errorf("order id %d is not above last committed id %d", resp.OrderID, l.lastID)
	}

	l.orders = append(l.orders, orders...)
	l.responses[key] = resp.Clone()
	l.lastID = resp.OrderID
	return nil
}

func (l *MemoryLedger) ListOrders(filter OrderFilter) (int64, []models.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	matched := make([]models.Order, 0)
	for i := range l.orders {
		if filter.Matches(&l.orders[i]) {
			matched = append(matched, l.orders[i])
		}
	}
	return int64(len(l.orders)), matched, nil
}

var _ Ledger = (*MemoryLedger)(nil)
