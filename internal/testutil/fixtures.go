package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"roboadvisor/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Fixed instants for calendar-dependent tests.
var (
	Monday   = time.Date(2026, 2, 2, 14, 30, 0, 0, time.UTC)
	Saturday = time.Date(2026, 1, 31, 8, 47, 46, 357000000, time.UTC)
	Sunday   = time.Date(2026, 2, 1, 8, 47, 46, 357000000, time.UTC)
)

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// SequentialIDs returns an id generator yielding item-1, item-2, ...
func SequentialIDs() func() string {
	var n atomic.Int64
	return func() string { return fmt.Sprintf("item-%d", n.Add(1)) }
}

// Float returns a pointer to v, for optional numeric fields.
func Float(v float64) *float64 {
	return &v
}

// Stock builds a portfolio entry with an explicit price.
func Stock(symbol string, weight, price float64) models.PortfolioStock {
	return models.PortfolioStock{Stock: symbol, Weight: Float(weight), Price: Float(price)}
}

// StockDefaultPrice builds a portfolio entry relying on the default price.
func StockDefaultPrice(symbol string, weight float64) models.PortfolioStock {
	return models.PortfolioStock{Stock: symbol, Weight: Float(weight)}
}

// UniqueKey returns an idempotency key not used elsewhere in the test run.
func UniqueKey() string {
	return fmt.Sprintf("key-%d", nextID())
}

// NewTestOrder builds a ledger line item for store tests.
func NewTestOrder(orderID int64, key, stock, userID, status string) models.Order {
	return models.Order{
		OrderID:        orderID,
		ItemID:         fmt.Sprintf("item-%d", nextID()),
		Type:           "buy",
		UserID:         userID,
		Stock:          stock,
		Currency:       "USD",
		Amount:         100,
		Shares:         1,
		Price:          100,
		Timestamp:      Monday.Format(models.TimestampFormat),
		ExecutionDate:  "2026-02-02",
		Status:         status,
		IdempotencyKey: key,
	}
}

// NewTestResponse builds the response matching a batch of line items.
func NewTestResponse(orders []models.Order) *models.OrderResponse {
	first := orders[0]
	resp := &models.OrderResponse{
		OrderID:        first.OrderID,
		UserID:         first.UserID,
		Status:         first.Status,
		ExecutionDate:  first.ExecutionDate,
		IdempotencyKey: first.IdempotencyKey,
	}
	for i := range orders {
		resp.Orders = append(resp.Orders, orders[i].Item())
	}
	return resp
}
