package domain

import "errors"

var (
	ErrNotFound     = errors.New("nicht gefunden")
	ErrInvalidInput = errors.New("ungültige eingabe")
	ErrNoInstances  = errors.New("keine verfügbare instanz")
	ErrUpstream     = errors.New("fehlerhafte antwort vom upstream")
)

const (
	StatusUp   = "UP"
	StatusDown = "DOWN"
)

// Instance ist eine registrierte Adresse eines logischen Service.
type Instance struct {
	ID      string `json:"id"`
	Service string `json:"service"`
	URL     string `json:"url"`
	Zone    string `json:"zone"`
	Status  string `json:"status"`
}

// Up meldet, ob die Instanz Anfragen annehmen darf.
func (i Instance) Up() bool {
	return i.Status == StatusUp
}

// FilterUp gibt nur die Instanzen mit Status UP zurück.
func FilterUp(instances []Instance) []Instance {
	out := make([]Instance, 0, len(instances))
	for _, inst := range instances {
		if inst.Up() {
			out = append(out, inst)
		}
	}
	return out
}
