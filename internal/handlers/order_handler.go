package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "roboadvisor/internal/errors"
	"roboadvisor/internal/models"
	"roboadvisor/internal/pagination"
	"roboadvisor/internal/services"
	"roboadvisor/internal/store"
)

// OrderHandler handles portfolio order requests.
type OrderHandler struct {
	orderService services.OrderServicer
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService services.OrderServicer) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// SubmitOrderRequest documents the order payload. UserName is accepted as an
// alias of UserID; UserID wins when both are present.
type SubmitOrderRequest struct {
	Type           string                  `json:"type" example:"buy" enums:"buy,sell"`
	Amount         float64                 `json:"amount" example:"2300.543"`
	Portfolio      []models.PortfolioStock `json:"portfolio"`
	IdempotencyKey string                  `json:"idempotencyKey" example:"5382519-5"`
	UserID         string                  `json:"userId,omitempty" example:"saikrishna"`
	UserName       string                  `json:"userName,omitempty"`
}

// rawOrderRequest defers decoding of each field so that a field of the wrong
// JSON type fails its own validation step instead of the whole request.
type rawOrderRequest struct {
	Type           json.RawMessage `json:"type"`
	Amount         json.RawMessage `json:"amount"`
	Portfolio      json.RawMessage `json:"portfolio"`
	IdempotencyKey json.RawMessage `json:"idempotencyKey"`
	UserID         json.RawMessage `json:"userId"`
	UserName       json.RawMessage `json:"userName"`
}

// OrderQuery holds the optional filters of the order listing.
type OrderQuery struct {
	Stock          string `form:"stock"`
	UserID         string `form:"userId"`
	UserName       string `form:"userName"`
	IdempotencyKey string `form:"idempotencyKey"`
	Status         string `form:"status" binding:"omitempty,order_status"`
	Type           string `form:"type" binding:"omitempty,order_type"`
	OrderID        *int64 `form:"orderId" binding:"omitempty,gt=0"`
}

// decodeOrderRequest resolves the loosely typed body into a service request.
func decodeOrderRequest(body []byte) (services.OrderRequest, error) {
	var raw rawOrderRequest
	if err := json.Unmarshal(body, &raw); err != nil {
		return services.OrderRequest{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Request body must be a JSON object")
	}

	var req services.OrderRequest
	decodeLoose(raw.Type, &req.Type)
	decodeLoose(raw.Amount, &req.Amount)
	decodeLoose(raw.Portfolio, &req.Portfolio)
	decodeLoose(raw.IdempotencyKey, &req.IdempotencyKey)
	decodeLoose(raw.UserID, &req.UserID)
	if req.UserID == "" {
		decodeLoose(raw.UserName, &req.UserID)
	}
	return req, nil
}

// decodeLoose unmarshals data into dst, leaving dst at its zero value when
// the field is absent or of another JSON type.
func decodeLoose[T any](data json.RawMessage, dst *T) {
	if len(data) == 0 {
		return
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return
	}
	*dst = v
}

// SubmitOrder handles placing a buy or sell order for a model portfolio.
// @Summary     Place a portfolio order
// @Description Splits the amount across the portfolio by weight and computes shares per stock. Orders placed on a weekend are accepted and scheduled for the next Monday. Resubmitting an idempotency key returns the original response.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       request body SubmitOrderRequest true "Order details"
// @Success     200 {object} models.OrderResponse "Order processed or replayed"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /order [post]
func (h *OrderHandler) SubmitOrder(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unable to read request body"))
		return
	}

	req, err := decodeOrderRequest(body)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp, err := h.orderService.SubmitOrder(req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListOrders handles querying historic orders.
// @Summary     List orders
// @Description Returns recorded line items in creation order. All filters are optional and combine with AND.
// @Tags        orders
// @Produce     json
// @Param       stock          query string false "Stock symbol"
// @Param       userId         query string false "User identifier"
// @Param       userName       query string false "Alias of userId"
// @Param       idempotencyKey query string false "Idempotency key"
// @Param       status         query string false "accepted or executed"
// @Param       type           query string false "buy or sell"
// @Param       orderId        query int    false "Order ID"
// @Param       page           query int    false "Page number"
// @Param       pageSize       query int    false "Items per page (max 1000)"
// @Success     200 {object} services.OrderListResult "Matching orders"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var query OrderQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := store.OrderFilter{
		Stock:          query.Stock,
		UserID:         query.UserID,
		IdempotencyKey: query.IdempotencyKey,
		Status:         query.Status,
		Type:           query.Type,
		OrderID:        query.OrderID,
	}
	if filter.UserID == "" {
		filter.UserID = query.UserName
	}

	result, err := h.orderService.ListOrders(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
