package handlers

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "roboadvisor/internal/errors"
	"roboadvisor/internal/services"
)

// ConfigHandler handles operator configuration requests.
type ConfigHandler struct {
	settingsService services.SettingsServicer
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(settingsService services.SettingsServicer) *ConfigHandler {
	return &ConfigHandler{settingsService: settingsService}
}

// PrecisionRequest represents the request payload for changing the precision.
type PrecisionRequest struct {
	Decimals json.Number `json:"decimals" swaggertype:"integer" example:"6"`
}

// PrecisionResponse reports the current precision.
type PrecisionResponse struct {
	Success  bool `json:"success,omitempty"`
	Decimals int  `json:"decimals"`
}

// GetPrecision handles reading the decimal precision.
// @Summary     Get decimal precision
// @Description Returns the number of decimals used when rounding amounts and shares
// @Tags        config
// @Produce     json
// @Success     200 {object} PrecisionResponse "Current precision"
// @Router      /config/precision [get]
func (h *ConfigHandler) GetPrecision(c *gin.Context) {
	c.JSON(http.StatusOK, PrecisionResponse{Decimals: h.settingsService.GetPrecision()})
}

// SetPrecision handles changing the decimal precision.
// @Summary     Update decimal precision
// @Description Sets how many decimal places are used when rounding amounts and shares
// @Tags        config
// @Accept      json
// @Produce     json
// @Param       request body PrecisionRequest true "New precision"
// @Success     200 {object} PrecisionResponse "Precision updated"
// @Failure     400 {object} ErrorResponse "Invalid decimals"
// @Router      /config/precision [post]
func (h *ConfigHandler) SetPrecision(c *gin.Context) {
	decimals, err := parseDecimals(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.settingsService.SetPrecision(decimals); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, PrecisionResponse{Success: true, Decimals: decimals})
}

// parseDecimals accepts a JSON number with no fractional part.
func parseDecimals(c *gin.Context) (int, error) {
	var raw struct {
		Decimals json.RawMessage `json:"decimals"`
	}
	if err := c.ShouldBindJSON(&raw); err != nil || len(raw.Decimals) == 0 || string(raw.Decimals) == "null" {
		return 0, apperrors.ErrInvalidPrecision
	}

	var f float64
	if err := json.Unmarshal(raw.Decimals, &f); err != nil {
		return 0, apperrors.ErrInvalidPrecision
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, apperrors.ErrInvalidPrecision
	}
	return int(f), nil
}
