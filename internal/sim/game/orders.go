package game

// OrderKind tags the closed set of fleet orders the engine understands.
type OrderKind int

const (
	OrderAvoid OrderKind = iota
	OrderEngage
	OrderAssault
)

// FleetOrder is a fleet's standing instruction. Order internals (AI target
// selection, combat behavior) live outside the engine; the engine only
// drives the lifecycle hooks and the complete/valid checks.
type FleetOrder interface {
	Kind() OrderKind
	// IsComplete reports whether the order has finished its work.
	IsComplete() bool
	// IsValid reports whether the order still applies to the fleet's state.
	IsValid(f *Fleet) bool

	OnTurnBeginning(g *GameContext, f *Fleet)
	OnTurnEnding(g *GameContext, f *Fleet)
	OnCompleted(g *GameContext, f *Fleet)
	OnCancelled(g *GameContext, f *Fleet)
}

// DefaultOrder is what a fleet falls back to when its order completes or is
// cancelled without a replacement.
func DefaultOrder() FleetOrder { return &AvoidOrder{} }

// baseOrder provides no-op lifecycle hooks.
type baseOrder struct{}

func (baseOrder) OnTurnBeginning(*GameContext, *Fleet) {}
func (baseOrder) OnTurnEnding(*GameContext, *Fleet)    {}
func (baseOrder) OnCompleted(*GameContext, *Fleet)     {}
func (baseOrder) OnCancelled(*GameContext, *Fleet)     {}

// AvoidOrder keeps the fleet out of engagements. Never completes, always
// valid.
type AvoidOrder struct{ baseOrder }

func (*AvoidOrder) Kind() OrderKind     { return OrderAvoid }
func (*AvoidOrder) IsComplete() bool    { return false }
func (*AvoidOrder) IsValid(*Fleet) bool { return true }

// EngageOrder seeks combat at the fleet's location. Never completes on its
// own; only valid while the fleet has combat-capable ships.
type EngageOrder struct{ baseOrder }

func (*EngageOrder) Kind() OrderKind       { return OrderEngage }
func (*EngageOrder) IsComplete() bool      { return false }
func (*EngageOrder) IsValid(f *Fleet) bool { return f.IsCombatant() }

// AssaultOrder directs the fleet to invade a colony at its target location.
type AssaultOrder struct {
	baseOrder
	TargetColonyID GameID
	// done is set by the invasion resolver when the assault concludes.
	done bool
}

func (*AssaultOrder) Kind() OrderKind    { return OrderAssault }
func (o *AssaultOrder) IsComplete() bool { return o.done }

// IsValid requires transports in the fleet and a live target colony owned by
// someone else.
func (o *AssaultOrder) IsValid(f *Fleet) bool {
	if o.done {
		return false
	}
	hasTransport := false
	for _, s := range f.Ships {
		if s.Category == ShipTransport {
			hasTransport = true
			break
		}
	}
	if !hasTransport {
		return false
	}
	g := Current()
	col := g.Universe.Colony(o.TargetColonyID)
	return col != nil && col.OwnerID != f.OwnerID && col.Loc == f.Loc
}

// MarkResolved is called by the invasion resolver once the assault ends.
func (o *AssaultOrder) MarkResolved() { o.done = true }
