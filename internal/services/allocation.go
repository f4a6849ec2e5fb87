package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"roboadvisor/internal/calendar"
	apperrors "roboadvisor/internal/errors"
	"roboadvisor/internal/models"
)

// DefaultPrice is the per-share price assumed when a portfolio entry has none.
const DefaultPrice = 100

// WeightTolerance is the allowed distance of the weight sum from 100.
var WeightTolerance = decimal.RequireFromString("0.01")

var hundred = decimal.NewFromInt(100)

// maxWeight is the largest single weight a portfolio within tolerance can hold.
var maxWeight = hundred.Add(WeightTolerance)

// Allocation carries everything Allocate needs besides the request.
type Allocation struct {
	OrderID      int64
	Precision    PrecisionReader
	DefaultPrice float64
	Currency     string
	Schedule     calendar.Schedule
	Now          func() time.Time
	NewItemID    func() string
}

// Allocate splits req across its portfolio in input order. For each entry
// the amount is rounded first and the share count is derived from the
// rounded amount, then rounded again. The precision is read once per line
// item. The request must already be validated.
func Allocate(req OrderRequest, a Allocation) []models.Order {
	total := decimal.NewFromFloat(req.Amount)
	orders := make([]models.Order, 0, len(req.Portfolio))

	for _, entry := range req.Portfolio {
		price := a.DefaultPrice
		if entry.Price != nil {
			price = *entry.Price
		}

		places := int32(a.Precision.Get())
		amount := total.Mul(decimal.NewFromFloat(*entry.Weight)).Div(hundred).Round(places)
		shares := amount.Div(decimal.NewFromFloat(price)).Round(places)

		orders = append(orders, models.Order{
			OrderID:        a.OrderID,
			ItemID:         a.NewItemID(),
			Type:           req.Type,
			UserID:         req.UserID,
			Stock:          entry.Stock,
			Currency:       a.Currency,
			Amount:         amount.InexactFloat64(),
			Shares:         shares.InexactFloat64(),
			Price:          price,
			Timestamp:      a.Now().UTC().Format(models.TimestampFormat),
			ExecutionDate:  a.Schedule.ExecutionDate,
			Status:         a.Schedule.Status,
			IdempotencyKey: req.IdempotencyKey,
		})
	}
	return orders
}

// validateShape runs the checks that precede the idempotency lookup.
func validateShape(req OrderRequest) error {
	if _, ok := models.ParseOrderType(req.Type); !ok {
		return apperrors.ErrInvalidOrderType
	}
	if !(req.Amount > 0) || math.IsInf(req.Amount, 0) {
		return apperrors.ErrInvalidAmount
	}
	if len(req.Portfolio) == 0 {
		return apperrors.ErrInvalidPortfolio
	}
	if req.IdempotencyKey == "" {
		return apperrors.ErrInvalidIdempotencyKey
	}
	return nil
}

// validatePortfolio checks every entry and the weight sum. It runs only for
// keys not seen before.
func validatePortfolio(portfolio []models.PortfolioStock) error {
	sum := decimal.Zero
	for i, entry := range portfolio {
		if strings.TrimSpace(entry.Stock) == "" {
			return entryError(i, "stock symbol is required")
		}
		if entry.Weight == nil || !finite(*entry.Weight) {
			return entryError(i, "weight must be a number")
		}
		if *entry.Weight < 0 || decimal.NewFromFloat(*entry.Weight).GreaterThan(maxWeight) {
			return entryError(i, "weight must be between 0 and 100")
		}
		if entry.Price != nil && (!finite(*entry.Price) || *entry.Price <= 0) {
			return entryError(i, "price must be greater than 0")
		}
		sum = sum.Add(decimal.NewFromFloat(*entry.Weight))
	}

	if sum.Sub(hundred).Abs().GreaterThan(WeightTolerance) {
		return apperrors.ErrInvalidPortfolioWeight
	}
	return nil
}

func entryError(index int, reason string) error {
	return apperrors.WithMessage(apperrors.ErrInvalidPortfolioEntry,
		fmt.Sprintf("portfolio[%d]: %s", index, reason))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
