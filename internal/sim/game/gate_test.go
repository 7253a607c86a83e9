package game

import (
	"testing"
	"time"
)

func TestGateBlocksUntilSignal(t *testing.T) {
	gate := NewCombatGate()
	gate.Reset()

	released := make(chan struct{})
	go func() {
		gate.Wait()
		close(released)
	}()

	select {
	case <-released:
		t.Fatalf("Wait returned before Signal")
	case <-time.After(20 * time.Millisecond):
	}

	gate.Signal()
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatalf("Wait did not return after Signal")
	}
}

func TestGateDoubleSignalAndReuse(t *testing.T) {
	gate := NewCombatGate()
	gate.Reset()
	gate.Signal()
	gate.Signal() // second signal for the same encounter is ignored
	gate.Wait()   // already released

	gate.Reset()
	done := make(chan struct{})
	go func() {
		gate.Wait()
		close(done)
	}()
	gate.Signal()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("gate not reusable after Reset")
	}
}
