package upgrade

import (
	"time"
)

// MakerTakerFee activates separate taker fee rates on the matching engine.
const MakerTakerFee = "MakerTakerFee"

// Gate answers whether a named upgrade is active at a given block time.
// Activation is inclusive: a block whose time equals the activation time is already upgraded.
type Gate struct {
	activations map[string]time.Time
}

func NewGate(makerTakerFee time.Time) *Gate {
	g := &Gate{activations: make(map[string]time.Time)}
	g.SetActivation(MakerTakerFee, makerTakerFee)
	return g
}

func (g *Gate) SetActivation(name string, at time.Time) {
	g.activations[name] = at
}

func (g *Gate) ActivationTime(name string) (time.Time, bool) {
	at, ok := g.activations[name]
	return at, ok
}

// IsUpgrade reports false for upgrades the gate does not know.
func (g *Gate) IsUpgrade(name string, now time.Time) bool {
	at, ok := g.activations[name]
	if !ok {
		return false
	}
	return !now.Before(at)
}

func (g *Gate) IsPostActivation(now time.Time) bool {
	return g.IsUpgrade(MakerTakerFee, now)
}

// FromUnix converts a configured activation in unix seconds. Zero activates from genesis.
func FromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
