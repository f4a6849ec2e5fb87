package services

import (
	"roboadvisor/internal/models"
	"roboadvisor/internal/pagination"
	"roboadvisor/internal/store"
)

// OrderRequest is a portfolio order after transport decoding. Fields the
// client omitted or sent with the wrong JSON type hold their zero value.
type OrderRequest struct {
	Type           string
	Amount         float64
	Portfolio      []models.PortfolioStock
	IdempotencyKey string
	UserID         string
}

// OrderListResult is the answer to an order query.
type OrderListResult struct {
	TotalCount  int64          `json:"totalCount"`
	ResultCount int64          `json:"resultCount"`
	Page        int            `json:"page,omitempty"`
	PageSize    int            `json:"pageSize,omitempty"`
	Result      []models.Order `json:"result"`
}

// OrderServicer defines the contract for splitting and querying portfolio orders.
type OrderServicer interface {
	SubmitOrder(req OrderRequest) (*models.OrderResponse, error)
	ListOrders(filter store.OrderFilter, page pagination.PageRequest) (*OrderListResult, error)
}

// SettingsServicer defines the contract for operator settings.
type SettingsServicer interface {
	GetPrecision() int
	SetPrecision(decimals int) error
}

// PrecisionReader supplies the number of decimals at the moment of rounding.
type PrecisionReader interface {
	Get() int
}
