package game

import "fmt"

// Meter is a bounded per-turn value with three views: Base (committed at the
// end of last turn), Current (this turn's working value) and Last (the base
// value before the most recent commit). All mutation clamps to [Min, Max].
//
// The per-turn cycle is: phases adjust Current; UpdateAndReset commits
// Current into Base (pushing the old Base into Last) and resets Current to
// the new Base for the next turn.
type Meter struct {
	Min  int
	Max  int
	cur  int
	base int
	last int

	// OnChange fires after any change to the current value. Nil is fine.
	OnChange func()
}

// NewMeter returns a meter with Current, Base and Last all at value.
func NewMeter(value, min, max int) *Meter {
	m := &Meter{Min: min, Max: max}
	v := m.clamp(value)
	m.cur, m.base, m.last = v, v, v
	return m
}

// NewUnboundedMeter allows the full int range, including negative values
// (treasuries can go into debt).
func NewUnboundedMeter(value int) *Meter {
	const maxInt = int(^uint(0) >> 1)
	return NewMeter(value, -maxInt-1, maxInt)
}

func (m *Meter) clamp(v int) int {
	if v < m.Min {
		return m.Min
	}
	if v > m.Max {
		return m.Max
	}
	return v
}

func (m *Meter) Current() int { return m.cur }
func (m *Meter) Base() int    { return m.base }
func (m *Meter) Last() int    { return m.last }

// CurrentChange is the net change this turn: Current minus Base.
func (m *Meter) CurrentChange() int { return m.cur - m.base }

// SetCurrent clamps and assigns the current value.
func (m *Meter) SetCurrent(v int) {
	v = m.clamp(v)
	if v == m.cur {
		return
	}
	m.cur = v
	if m.OnChange != nil {
		m.OnChange()
	}
}

// AdjustCurrent applies delta to the current value and returns the magnitude
// of the change actually applied after clamping.
func (m *Meter) AdjustCurrent(delta int) int {
	before := m.cur
	m.SetCurrent(before + delta)
	applied := m.cur - before
	if applied < 0 {
		applied = -applied
	}
	return applied
}

// SetBase commits a new base value; the previous base becomes Last.
func (m *Meter) SetBase(v int) {
	m.last = m.base
	m.base = m.clamp(v)
}

// Reset snaps Current back to Base.
func (m *Meter) Reset() {
	m.SetCurrent(m.base)
}

// UpdateAndReset commits Current into Base and starts the next turn from it.
func (m *Meter) UpdateAndReset() {
	m.SetBase(m.cur)
	m.Reset()
}

// SaveCurrentAndResetToBase records Current into Last and discards the
// turn's working changes.
func (m *Meter) SaveCurrentAndResetToBase() {
	m.last = m.cur
	m.Reset()
}

func (m *Meter) String() string {
	return fmt.Sprintf("%d (base %d, last %d)", m.cur, m.base, m.last)
}
