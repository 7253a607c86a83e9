package game

import "sync"

// VisibilityFlags is a bitmask of what a civilization knows about a target
// object.
type VisibilityFlags uint8

const VisNone VisibilityFlags = 0

const (
	VisPresence VisibilityFlags = 1 << iota
	VisLocation
	VisOwner
	VisClass
	VisStrength
	VisInterior
)

const visFlagCount = 6

// PermanentDuration marks a flag that never decays.
const PermanentDuration byte = 255

// compositeVisibility keeps one remaining-duration byte per flag bit.
// 0 = absent, 1..254 = turns remaining, 255 = permanent.
type compositeVisibility [visFlagCount]byte

func (c *compositeVisibility) flags() VisibilityFlags {
	var f VisibilityFlags
	for i, d := range c {
		if d != 0 {
			f |= 1 << i
		}
	}
	return f
}

func (c *compositeVisibility) empty() bool {
	for _, d := range c {
		if d != 0 {
			return false
		}
	}
	return true
}

type visibilityKey struct {
	Civ    CivID
	Target GameID
}

// VisibilityLedger tracks per (civilization, target) decaying visibility.
// Readers and writers run concurrently from different civilization tasks;
// the backing map is guarded by a reader/writer lock.
type VisibilityLedger struct {
	mu      sync.RWMutex
	entries map[visibilityKey]*compositeVisibility
}

func NewVisibilityLedger() *VisibilityLedger {
	return &VisibilityLedger{entries: make(map[visibilityKey]*compositeVisibility)}
}

// Add merges flags into the entry for (civ, target). Each granted bit keeps
// the maximum of its current and the new duration; permanence is sticky.
func (v *VisibilityLedger) Add(civ CivID, target GameID, flags VisibilityFlags, duration byte) {
	if flags == VisNone || duration == 0 {
		return
	}
	key := visibilityKey{Civ: civ, Target: target}
	v.mu.Lock()
	defer v.mu.Unlock()
	e := v.entries[key]
	if e == nil {
		e = &compositeVisibility{}
		v.entries[key] = e
	}
	for i := 0; i < visFlagCount; i++ {
		if flags&(1<<i) == 0 {
			continue
		}
		if e[i] == PermanentDuration {
			continue
		}
		if duration == PermanentDuration || duration > e[i] {
			e[i] = duration
		}
	}
}

// Get returns the union of all flags with nonzero remaining duration.
func (v *VisibilityLedger) Get(civ CivID, target GameID) VisibilityFlags {
	v.mu.RLock()
	defer v.mu.RUnlock()
	e := v.entries[visibilityKey{Civ: civ, Target: target}]
	if e == nil {
		return VisNone
	}
	return e.flags()
}

// OnTurn decrements every nonzero, non-permanent duration and prunes fully
// decayed entries. Runs exactly once per turn, after all grants.
func (v *VisibilityLedger) OnTurn() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for key, e := range v.entries {
		for i := range e {
			if e[i] != 0 && e[i] != PermanentDuration {
				e[i]--
			}
		}
		if e.empty() {
			delete(v.entries, key)
		}
	}
}

// ClearForCivilization removes every entry held by civ. Matching keys are
// collected under the read lock, then removed under the write lock.
func (v *VisibilityLedger) ClearForCivilization(civ CivID) {
	v.mu.RLock()
	var keys []visibilityKey
	for key := range v.entries {
		if key.Civ == civ {
			keys = append(keys, key)
		}
	}
	v.mu.RUnlock()
	if len(keys) == 0 {
		return
	}
	v.mu.Lock()
	for _, key := range keys {
		delete(v.entries, key)
	}
	v.mu.Unlock()
}

// ClearForTarget removes every entry about target.
func (v *VisibilityLedger) ClearForTarget(target GameID) {
	v.mu.RLock()
	var keys []visibilityKey
	for key := range v.entries {
		if key.Target == target {
			keys = append(keys, key)
		}
	}
	v.mu.RUnlock()
	if len(keys) == 0 {
		return
	}
	v.mu.Lock()
	for _, key := range keys {
		delete(v.entries, key)
	}
	v.mu.Unlock()
}

// Len reports the live entry count.
func (v *VisibilityLedger) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.entries)
}
