package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New erstellt einen Produktions-Logger mit dem angegebenen Level.
// Unbekannte Level fallen auf info zurück.
func New(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
