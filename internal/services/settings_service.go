package services

import (
	"go.uber.org/zap"

	"roboadvisor/internal/logger"
	"roboadvisor/internal/settings"
)

// settingsService exposes operator settings to the transport layer.
type settingsService struct {
	precision *settings.Precision
	log       *zap.SugaredLogger
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(precision *settings.Precision) SettingsServicer {
	return &settingsService{precision: precision, log: logger.Named("settings")}
}

func (s *settingsService) GetPrecision() int {
	return s.precision.Get()
}

// SetPrecision changes the decimals used by subsequent roundings.
func (s *settingsService) SetPrecision(decimals int) error {
	previous := s.precision.Get()
	if err := s.precision.Set(decimals); err != nil {
		return err
	}
	s.log.Infow("precision changed", "from", previous, "to", decimals)
	return nil
}
