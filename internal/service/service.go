package service

import (
	"context"

	"go.uber.org/zap"

	"blueorgreen/internal/domain"
)

// ColorService liefert die aktive Farbe aus der Startkonfiguration.
type ColorService struct {
	configured string
	logger     *zap.Logger
}

// NewColorService gibt einen einsatzbereiten ColorService zurück.
// Unbekannte Werte werden einmalig gemeldet und fallen auf Green zurück.
func NewColorService(configured string, logger *zap.Logger) *ColorService {
	if configured != "" && !domain.IsKnownColor(configured) {
		logger.Warn("unbekannte farbe konfiguriert, verwende green",
			zap.String("farbe", configured),
		)
	}
	return &ColorService{configured: configured, logger: logger}
}

// Current gibt die für jede Anfrage neu aufgelöste Farbe zurück.
func (s *ColorService) Current(_ context.Context) domain.Color {
	return domain.ResolveColor(s.configured)
}
