// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerAll(v)
	}
}

// New returns a standalone validator with the custom validations registered,
// for structs that never pass through Gin binding.
func New() *validator.Validate {
	v := validator.New()
	registerAll(v)
	return v
}

func registerAll(v *validator.Validate) {
	_ = v.RegisterValidation("iso4217", validateISO4217)
	_ = v.RegisterValidation("order_type", validateOrderType)
	_ = v.RegisterValidation("order_status", validateOrderStatus)
}

// validateISO4217 accepts any currency code known to go-money.
func validateISO4217(fl validator.FieldLevel) bool {
	return money.GetCurrency(fl.Field().String()) != nil
}

func validateOrderType(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "buy", "sell":
		return true
	}
	return false
}

func validateOrderStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "accepted", "executed":
		return true
	}
	return false
}
