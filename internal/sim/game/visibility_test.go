package game

import "testing"

func TestVisibilityDecay(t *testing.T) {
	v := NewVisibilityLedger()
	v.Add(1, 42, VisPresence|VisLocation, 2)
	v.Add(1, 42, VisOwner, PermanentDuration)

	if got := v.Get(1, 42); got != VisPresence|VisLocation|VisOwner {
		t.Fatalf("flags: got %b want %b", got, VisPresence|VisLocation|VisOwner)
	}
	v.OnTurn()
	if got := v.Get(1, 42); got != VisPresence|VisLocation|VisOwner {
		t.Fatalf("after 1 turn: got %b want all flags", got)
	}
	v.OnTurn()
	if got := v.Get(1, 42); got != VisOwner {
		t.Fatalf("after 2 turns: got %b want %b", got, VisOwner)
	}
	for i := 0; i < 300; i++ {
		v.OnTurn()
	}
	if got := v.Get(1, 42); got != VisOwner {
		t.Fatalf("permanent flag decayed: got %b want %b", got, VisOwner)
	}
}

func TestVisibilityMaxMergeAndStickyPermanence(t *testing.T) {
	v := NewVisibilityLedger()
	v.Add(1, 7, VisPresence, 5)
	v.Add(1, 7, VisPresence, 2) // shorter grant must not shorten
	v.OnTurn()
	v.OnTurn()
	v.OnTurn()
	if got := v.Get(1, 7); got != VisPresence {
		t.Fatalf("max-merge lost: got %b want %b", got, VisPresence)
	}

	v.Add(1, 7, VisPresence, PermanentDuration)
	v.Add(1, 7, VisPresence, 1)
	v.OnTurn()
	v.OnTurn()
	if got := v.Get(1, 7); got != VisPresence {
		t.Fatalf("permanence not sticky: got %b want %b", got, VisPresence)
	}
}

func TestVisibilityPrunesDecayedEntries(t *testing.T) {
	v := NewVisibilityLedger()
	v.Add(1, 10, VisPresence, 1)
	v.Add(2, 10, VisLocation, 3)
	v.OnTurn()
	if v.Len() != 1 {
		t.Fatalf("entries after decay: got %d want 1", v.Len())
	}
	if got := v.Get(1, 10); got != VisNone {
		t.Fatalf("decayed entry visible: got %b want none", got)
	}
}

func TestVisibilityClear(t *testing.T) {
	v := NewVisibilityLedger()
	v.Add(1, 10, VisPresence, PermanentDuration)
	v.Add(1, 11, VisPresence, PermanentDuration)
	v.Add(2, 10, VisPresence, PermanentDuration)

	v.ClearForCivilization(1)
	if v.Len() != 1 {
		t.Fatalf("after civ clear: got %d entries want 1", v.Len())
	}
	v.ClearForTarget(10)
	if v.Len() != 0 {
		t.Fatalf("after target clear: got %d entries want 0", v.Len())
	}
}
