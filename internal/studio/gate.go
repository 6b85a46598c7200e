package studio

import "errors"

// returned when a second turn is submitted while one is in flight
var ErrTurnInFlight = errors.New("a generation turn is already in progress")

// Gate is a single-slot turn gate: the service itself enforces the
// one-turn-at-a-time discipline instead of relying on the UI disabling
// its submit affordance.
type Gate struct {
	slot chan struct{}
}

func NewGate() *Gate {
	return &Gate{slot: make(chan struct{}, 1)}
}

// Acquire claims the slot, failing immediately if a turn is in flight.
func (g *Gate) Acquire() error {
	select {
	case g.slot <- struct{}{}:
		return nil
	default:
		return ErrTurnInFlight
	}
}

// Release frees the slot. Releasing an idle gate is a no-op.
func (g *Gate) Release() {
	select {
	case <-g.slot:
	default:
	}
}
