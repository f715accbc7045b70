// Package discovery beschreibt, wie logische Service-Namen in Instanzen
// aufgelöst werden. Die Implementierungen liegen in den Unterpaketen csv
// (statischer Katalog) und sqlite (gemeinsamer Katalog mit Registrierung).
package discovery

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"blueorgreen/internal/domain"
)

// Resolver löst einen logischen Service-Namen in seine Instanzen auf.
type Resolver interface {
	Instances(ctx context.Context, service string) ([]domain.Instance, error)
}

// Registrar meldet Instanzen im Katalog an und ab.
type Registrar interface {
	Register(ctx context.Context, inst domain.Instance) (domain.Instance, error)
	Deregister(ctx context.Context, id string) error
}

// NormalizeService vereinheitlicht Service-Namen für den Vergleich.
func NormalizeService(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Validate prüft eine Instanz vor der Aufnahme in einen Katalog und
// setzt fehlende Standardwerte.
func Validate(inst domain.Instance) (domain.Instance, error) {
	inst.Service = NormalizeService(inst.Service)
	inst.URL = strings.TrimSpace(inst.URL)
	if inst.Service == "" || inst.URL == "" {
		return domain.Instance{}, fmt.Errorf("service und url sind erforderlich: %w", domain.ErrInvalidInput)
	}
	u, err := url.Parse(inst.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return domain.Instance{}, fmt.Errorf("ungültige url %q: %w", inst.URL, domain.ErrInvalidInput)
	}
	inst.Status = strings.ToUpper(strings.TrimSpace(inst.Status))
	switch inst.Status {
	case "":
		inst.Status = domain.StatusUp
	case domain.StatusUp, domain.StatusDown:
	default:
		return domain.Instance{}, fmt.Errorf("ungültiger status %q: %w", inst.Status, domain.ErrInvalidInput)
	}
	return inst, nil
}
