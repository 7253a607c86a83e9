package game

import "sync"

// CombatGate is the rendezvous between the engine and the external combat
// resolver. The engine resets the gate, announces the encounter, then blocks
// on Wait until the resolver calls Signal (via NotifyCombatFinished). There
// is no timeout: a resolver that never signals stalls the turn.
type CombatGate struct {
	mu       sync.Mutex
	ch       chan struct{}
	signaled bool
}

func NewCombatGate() *CombatGate {
	g := &CombatGate{}
	g.Reset()
	return g
}

// Reset arms the gate for the next encounter.
func (g *CombatGate) Reset() {
	g.mu.Lock()
	g.ch = make(chan struct{})
	g.signaled = false
	g.mu.Unlock()
}

// Signal releases the current Wait. Extra signals for the same encounter are
// ignored.
func (g *CombatGate) Signal() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.signaled {
		return
	}
	g.signaled = true
	close(g.ch)
}

// Wait blocks until Signal.
func (g *CombatGate) Wait() {
	g.mu.Lock()
	ch := g.ch
	g.mu.Unlock()
	<-ch
}
