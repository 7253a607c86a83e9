package game

import "sync"

// The ambient context stack lets deeply nested code (orders, sitrep
// construction, ranking lookups) resolve "the active game" without explicit
// parameter threading. Two layers exist:
//
//   - a global, cross-goroutine stack used only during construction and
//     bootstrap, guarded by a mutex;
//   - per-worker Scopes owned by the fan-out utility, one per goroutine, so
//     concurrent phase tasks resolve the correct context even when several
//     contexts coexist in memory.
//
// Explicit context passing is still preferred where the call graph allows
// it; the ambient lookup is the escape hatch, never the default.

var globalStack struct {
	mu    sync.Mutex
	items []*GameContext
}

// PushContext makes ctx the innermost global current. Never fails.
func PushContext(ctx *GameContext) {
	globalStack.mu.Lock()
	globalStack.items = append(globalStack.items, ctx)
	globalStack.mu.Unlock()
}

// PopContext removes and returns the innermost global entry, or nil when the
// stack is empty. Callers detecting top-of-stack mismatch must check for nil.
func PopContext() *GameContext {
	globalStack.mu.Lock()
	defer globalStack.mu.Unlock()
	n := len(globalStack.items)
	if n == 0 {
		return nil
	}
	ctx := globalStack.items[n-1]
	globalStack.items = globalStack.items[:n-1]
	return ctx
}

// PeekContext returns the innermost global entry without removing it.
func PeekContext() *GameContext {
	globalStack.mu.Lock()
	defer globalStack.mu.Unlock()
	if n := len(globalStack.items); n > 0 {
		return globalStack.items[n-1]
	}
	return nil
}

// GlobalStackDepth reports the global stack depth. Tests assert it returns
// to baseline after every turn.
func GlobalStackDepth() int {
	globalStack.mu.Lock()
	defer globalStack.mu.Unlock()
	return len(globalStack.items)
}

// Current resolves the ambient context: the global stack top if present,
// else a lazily built bootstrap context. The bootstrap fallback exists to
// keep headless evaluation and preview tooling functional; production turn
// processing always runs under a pushed context.
func Current() *GameContext {
	if ctx := PeekContext(); ctx != nil {
		return ctx
	}
	return bootstrapContext()
}

// Scope is one worker goroutine's private context stack. The fan-out utility
// creates one Scope per worker; each task pushes its context on entry and
// pops in a deferred block, so a panicking task cannot leak an entry.
type Scope struct {
	items []*GameContext
}

func (s *Scope) Push(ctx *GameContext) {
	s.items = append(s.items, ctx)
}

func (s *Scope) Pop() *GameContext {
	n := len(s.items)
	if n == 0 {
		return nil
	}
	ctx := s.items[n-1]
	s.items = s.items[:n-1]
	return ctx
}

// Current returns the scope's innermost context, falling back to the global
// resolution when the scope is empty.
func (s *Scope) Current() *GameContext {
	if n := len(s.items); n > 0 {
		return s.items[n-1]
	}
	return Current()
}

// Depth reports the scope's stack depth; it must return to its pre-task
// value after every task, including panic exits.
func (s *Scope) Depth() int { return len(s.items) }

// With runs fn with ctx pushed, guaranteeing the pop on every exit path.
func (s *Scope) With(ctx *GameContext, fn func()) {
	s.Push(ctx)
	defer s.Pop()
	fn()
}
