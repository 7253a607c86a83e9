package game

// ResourceType enumerates the stockpilable resources.
type ResourceType int

const (
	ResDeuterium ResourceType = iota
	ResDilithium
	ResRawMaterials

	ResourceTypeCount
)

var resourceNames = [ResourceTypeCount]string{"deuterium", "dilithium", "raw_materials"}

func (r ResourceType) String() string {
	if r < 0 || r >= ResourceTypeCount {
		return "unknown"
	}
	return resourceNames[r]
}

// ResourcePool is a civilization's shared stockpile. Colony outputs are
// banked here before any production consumption so one colony's surplus can
// cover another's shortfall the same turn.
type ResourcePool struct {
	meters [ResourceTypeCount]*Meter
}

func NewResourcePool() *ResourcePool {
	p := &ResourcePool{}
	p.meters[ResDeuterium] = NewMeter(100, 0, maxStockpile)
	p.meters[ResDilithium] = NewMeter(10, 0, maxStockpile)
	p.meters[ResRawMaterials] = NewMeter(1000, 0, maxStockpile)
	return p
}

const maxStockpile = 1 << 30

func (p *ResourcePool) Meter(r ResourceType) *Meter { return p.meters[r] }

func (p *ResourcePool) Available(r ResourceType) int { return p.meters[r].Current() }

// Add banks amount into the pool, clamped at the stockpile ceiling.
func (p *ResourcePool) Add(r ResourceType, amount int) {
	p.meters[r].AdjustCurrent(amount)
}

// Consume removes up to amount and returns what was actually taken.
func (p *ResourcePool) Consume(r ResourceType, amount int) int {
	if amount <= 0 {
		return 0
	}
	return p.meters[r].AdjustCurrent(-amount)
}

// UpdateAndReset commits every stockpile meter for the turn.
func (p *ResourcePool) UpdateAndReset() {
	for _, m := range p.meters {
		m.UpdateAndReset()
	}
}
