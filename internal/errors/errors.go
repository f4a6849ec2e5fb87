// Package errors provides custom error types for the robo-advisor API.
// Every rejection the order engine produces is an AppError so the transport
// layer can map it to a stable code and status without inspecting messages.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError carrying the same code, so that
// errors.Is(err, ErrInvalidPortfolioWeight) holds for copies made by Wrap and WithMessage.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Order request errors, in the order the splitter checks them.
var (
	ErrInvalidOrderType       = &AppError{Code: "INVALID_ORDER_TYPE", Message: "Invalid type. Must be 'buy' or 'sell'", StatusCode: http.StatusBadRequest}
	ErrInvalidAmount          = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be greater than 0", StatusCode: http.StatusBadRequest}
	ErrInvalidPortfolio       = &AppError{Code: "INVALID_PORTFOLIO", Message: "Portfolio must be a non-empty array", StatusCode: http.StatusBadRequest}
	ErrInvalidIdempotencyKey  = &AppError{Code: "INVALID_IDEMPOTENCY_KEY", Message: "idempotencyKey is required and must be a string", StatusCode: http.StatusBadRequest}
	ErrInvalidPortfolioEntry  = &AppError{Code: "INVALID_PORTFOLIO_ENTRY", Message: "Each portfolio entry needs a stock symbol, a weight between 0 and 100 and a positive price when given", StatusCode: http.StatusBadRequest}
	ErrInvalidPortfolioWeight = &AppError{Code: "INVALID_WEIGHTS", Message: "Total portfolio weights must sum to 100%", StatusCode: http.StatusBadRequest}
)

// Configuration errors.
var (
	ErrInvalidPrecision = &AppError{Code: "INVALID_PRECISION", Message: "Invalid 'decimals'. Must be an integer between 0 and 15.", StatusCode: http.StatusBadRequest}
)
