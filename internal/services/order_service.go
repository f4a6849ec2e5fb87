package services

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"roboadvisor/internal/calendar"
	apperrors "roboadvisor/internal/errors"
	"roboadvisor/internal/logger"
	"roboadvisor/internal/models"
	"roboadvisor/internal/pagination"
	"roboadvisor/internal/store"
	"roboadvisor/internal/uuid"
)

// OrderOptions configures an order service. Zero values fall back to
// DefaultPrice, "USD", time.Now and random UUIDs.
type OrderOptions struct {
	DefaultPrice float64
	Currency     string
	Clock        func() time.Time
	NewItemID    func() string
}

// orderService splits portfolio orders and records them in the ledger.
type orderService struct {
	// mu spans idempotency lookup through commit, so two requests with the
	// same new key cannot both allocate an order id.
	mu        sync.Mutex
	ledger    store.Ledger
	precision PrecisionReader
	policy    calendar.Policy
	opts      OrderOptions
	log       *zap.SugaredLogger
}

// NewOrderService creates a new OrderServicer.
func NewOrderService(ledger store.Ledger, precision PrecisionReader, policy calendar.Policy, opts OrderOptions) OrderServicer {
	if opts.DefaultPrice <= 0 {
		opts.DefaultPrice = DefaultPrice
	}
	if opts.Currency == "" {
		opts.Currency = "USD"
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.NewItemID == nil {
		opts.NewItemID = uuid.NewV4
	}
	return &orderService{
		ledger:    ledger,
		precision: precision,
		policy:    policy,
		opts:      opts,
		log:       logger.Named("orders"),
	}
}

// SubmitOrder validates req, replays the stored response if its idempotency
// key was already processed, and otherwise splits it into line items,
// commits them and returns the new response.
func (s *orderService) SubmitOrder(req OrderRequest) (*models.OrderResponse, error) {
	if err := validateShape(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cached, ok, err := s.ledger.LookupResponse(req.IdempotencyKey)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if ok {
		s.log.Infow("replaying order", "idempotency_key", req.IdempotencyKey, "order_id", cached.OrderID)
		return cached, nil
	}

	if err := validatePortfolio(req.Portfolio); err != nil {
		return nil, err
	}

	orderID, err := s.ledger.NextOrderID()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// One evaluation per request: every line item shares status and date.
	schedule := s.policy.Evaluate(s.opts.Clock())

	orders := Allocate(req, Allocation{
		OrderID:      orderID,
		Precision:    s.precision,
		DefaultPrice: s.opts.DefaultPrice,
		Currency:     s.opts.Currency,
		Schedule:     schedule,
		Now:          s.opts.Clock,
		NewItemID:    s.opts.NewItemID,
	})

	resp := &models.OrderResponse{
		OrderID:        orderID,
		UserID:         req.UserID,
		Status:         schedule.Status,
		ExecutionDate:  schedule.ExecutionDate,
		IdempotencyKey: req.IdempotencyKey,
		Orders:         make([]models.OrderItem, 0, len(orders)),
	}
	for i := range orders {
		resp.Orders = append(resp.Orders, orders[i].Item())
	}

	if err := s.ledger.Commit(req.IdempotencyKey, resp, orders); err != nil {
		s.log.Errorw("ledger commit failed", "idempotency_key", req.IdempotencyKey, "order_id", orderID, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.log.Infow("order split",
		"order_id", orderID,
		"idempotency_key", req.IdempotencyKey,
		"type", req.Type,
		"lines", len(orders),
		"status", schedule.Status,
		"execution_date", schedule.ExecutionDate,
	)
	return resp.Clone(), nil
}

// ListOrders returns ledger entries matching filter in creation order.
// ResultCount counts every match, even when only one page is returned.
func (s *orderService) ListOrders(filter store.OrderFilter, page pagination.PageRequest) (*OrderListResult, error) {
	total, matched, err := s.ledger.ListOrders(filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	page.Defaults()
	return &OrderListResult{
		TotalCount:  total,
		ResultCount: int64(len(matched)),
		Page:        page.Page,
		PageSize:    page.PageSize,
		Result:      pagination.Slice(matched, page),
	}, nil
}
