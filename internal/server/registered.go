package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"blueorgreen/internal/discovery"
	"blueorgreen/internal/domain"
)

// RunRegistered startet srv wie Run, trägt inst nach erfolgreichem Listen
// in registrar ein und meldet sie nach dem Herunterfahren wieder ab.
// Ohne registrar verhält sich RunRegistered wie Run. Eine fehlgeschlagene
// Registrierung wird protokolliert, der Server läuft trotzdem weiter.
func RunRegistered(ctx context.Context, srv *http.Server, logger *zap.Logger, registrar discovery.Registrar, inst domain.Instance) error {
	if registrar == nil {
		return Run(ctx, srv, logger, nil)
	}

	var registered domain.Instance
	ready := func(net.Addr) {
		var err error
		registered, err = registrar.Register(ctx, inst)
		if err != nil {
			logger.Error("registrierung fehlgeschlagen",
				zap.String("service", inst.Service),
				zap.String("url", inst.URL),
				zap.Error(err),
			)
		}
	}

	srvErr := Run(ctx, srv, logger, ready)

	if registered.ID != "" {
		deregCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := registrar.Deregister(deregCtx, registered.ID); err != nil {
			logger.Warn("abmeldung fehlgeschlagen", zap.String("id", registered.ID), zap.Error(err))
		}
	}
	return srvErr
}
