// Package loadbalancer verteilt Aufrufe an logische Service-Namen auf die
// im Katalog registrierten Instanzen.
package loadbalancer

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"

	"blueorgreen/internal/domain"
)

const (
	StrategyRoundRobin = "round_robin"
	StrategyRandom     = "random"
)

// Balancer wählt eine Instanz aus einer Liste gesunder Instanzen.
type Balancer interface {
	Pick(instances []domain.Instance) (domain.Instance, error)
}

// NewBalancer erstellt die Strategie mit dem angegebenen Namen.
func NewBalancer(strategy string) (Balancer, error) {
	switch strategy {
	case "", StrategyRoundRobin:
		return &RoundRobin{}, nil
	case StrategyRandom:
		return Random{}, nil
	default:
		return nil, fmt.Errorf("unbekannte strategie %q: %w", strategy, domain.ErrInvalidInput)
	}
}

// RoundRobin verteilt der Reihe nach über alle Instanzen.
type RoundRobin struct {
	next atomic.Uint64
}

func (b *RoundRobin) Pick(instances []domain.Instance) (domain.Instance, error) {
	if len(instances) == 0 {
		return domain.Instance{}, domain.ErrNoInstances
	}
	n := b.next.Add(1) - 1
	return instances[n%uint64(len(instances))], nil
}

// Random wählt gleichverteilt zufällig.
type Random struct{}

func (Random) Pick(instances []domain.Instance) (domain.Instance, error) {
	if len(instances) == 0 {
		return domain.Instance{}, domain.ErrNoInstances
	}
	return instances[rand.IntN(len(instances))], nil
}
