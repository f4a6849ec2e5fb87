package models

import (
	"encoding/json"
	"strings"
)

// TimestampFormat is the layout of line item timestamps: ISO 8601 in UTC
// with millisecond precision.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// OrderType is the side of a portfolio order.
type OrderType string

const (
	OrderTypeBuy  OrderType = "buy"
	OrderTypeSell OrderType = "sell"
)

// ParseOrderType matches s case-insensitively against the known order types.
func ParseOrderType(s string) (OrderType, bool) {
	switch t := OrderType(strings.ToLower(s)); t {
	case OrderTypeBuy, OrderTypeSell:
		return t, true
	}
	return "", false
}

// PortfolioStock is one constituent of a model portfolio in an order request.
// Weight is a percentage of the order amount. A nil Price means the
// configured default price applies.
type PortfolioStock struct {
	Stock  string   `json:"stock"`
	Weight *float64 `json:"weight"`
	Price  *float64 `json:"price,omitempty"`
}

// UnmarshalJSON decodes leniently: fields of the wrong JSON type are left
// unset instead of failing the whole request, so that validation can report
// them with a specific reason.
func (p *PortfolioStock) UnmarshalJSON(data []byte) error {
	*p = PortfolioStock{}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	if v, ok := raw["stock"]; ok {
		_ = json.Unmarshal(v, &p.Stock)
	}
	if v, ok := raw["weight"]; ok {
		var w float64
		if json.Unmarshal(v, &w) == nil && string(v) != "null" {
			p.Weight = &w
		}
	}
	if v, ok := raw["price"]; ok {
		var price float64
		if json.Unmarshal(v, &price) == nil && string(v) != "null" {
			p.Price = &price
		}
	}
	return nil
}

// Order is one per-stock line item of a split portfolio order. All line
// items generated from one request share OrderID, IdempotencyKey, Status
// and ExecutionDate.
type Order struct {
	Record         `json:"-"`
	OrderID        int64   `gorm:"not null;index" json:"orderId"`
	ItemID         string  `gorm:"not null;uniqueIndex" json:"itemId"`
	Type           string  `gorm:"not null" json:"type"`
	UserID         string  `gorm:"index" json:"userId,omitempty"`
	Stock          string  `gorm:"not null;index" json:"stock"`
	Currency       string  `gorm:"not null" json:"currency"`
	Amount         float64 `gorm:"not null" json:"amount"`
	Shares         float64 `gorm:"not null" json:"shares"`
	Price          float64 `gorm:"not null" json:"price"`
	Timestamp      string  `gorm:"not null" json:"timestamp"`
	ExecutionDate  string  `gorm:"not null" json:"executionDate"`
	Status         string  `gorm:"not null;index" json:"status"`
	IdempotencyKey string  `gorm:"not null;index" json:"idempotencyKey"`
}

// Item returns the response view of the line item.
func (o *Order) Item() OrderItem {
	return OrderItem{
		ItemID:    o.ItemID,
		Stock:     o.Stock,
		Currency:  o.Currency,
		Amount:    o.Amount,
		Shares:    o.Shares,
		Price:     o.Price,
		Timestamp: o.Timestamp,
	}
}

// OrderItem is a line item as returned to the submitter.
type OrderItem struct {
	ItemID    string  `json:"itemId"`
	Stock     string  `json:"stock"`
	Currency  string  `json:"currency"`
	Amount    float64 `json:"amount"`
	Shares    float64 `json:"shares"`
	Price     float64 `json:"price"`
	Timestamp string  `json:"timestamp"`
}

// OrderResponse is the result of a successful order submission. It is stored
// under the request's idempotency key and replayed verbatim on resubmission.
type OrderResponse struct {
	OrderID        int64       `json:"orderId"`
	UserID         string      `json:"userId,omitempty"`
	Status         string      `json:"status"`
	ExecutionDate  string      `json:"executionDate"`
	IdempotencyKey string      `json:"idempotencyKey"`
	Orders         []OrderItem `json:"orders"`
}

// Clone returns a deep copy so cached responses cannot be mutated by callers.
func (r *OrderResponse) Clone() *OrderResponse {
	c := *r
	c.Orders = append([]OrderItem(nil), r.Orders...)
	return &c
}

// IdempotencyRecord maps an idempotency key to the JSON encoding of the
// response first returned for it.
type IdempotencyRecord struct {
	Record
	Key      string `gorm:"column:idempotency_key;not null;uniqueIndex"`
	Response string `gorm:"type:text;not null"`
}
