package game

import (
	"fmt"
	"runtime"
	"sync"
)

// fanOutWidth bounds parallelism for phase bodies: 4x logical cores unless
// the options override it.
func fanOutWidth(opts *GameOptions) int {
	if opts != nil && opts.FanOutWidth > 0 {
		return opts.FanOutWidth
	}
	return runtime.NumCPU() * 4
}

// forEach maps fn over items with bounded parallelism. Each worker goroutine
// owns a private Scope; every task runs with ctx pushed and is guaranteed
// the matching pop. A failing or panicking task is recorded and its siblings
// continue; the collected errors are returned after the fan-out drains.
func forEach[T any](ctx *GameContext, width int, items []T, fn func(sc *Scope, item T) error) []error {
	if len(items) == 0 {
		return nil
	}
	if width <= 0 {
		width = 1
	}
	if width > len(items) {
		width = len(items)
	}

	var (
		errMu sync.Mutex
		errs  []error
	)
	record := func(err error) {
		errMu.Lock()
		errs = append(errs, err)
		errMu.Unlock()
	}

	work := make(chan T)
	var wg sync.WaitGroup
	for i := 0; i < width; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sc := &Scope{}
			for item := range work {
				runTask(sc, ctx, item, fn, record)
				if d := sc.Depth(); d != 0 {
					record(fmt.Errorf("scope depth %d after task, want 0", d))
					sc.items = sc.items[:0]
				}
			}
		}()
	}
	for _, item := range items {
		work <- item
	}
	close(work)
	wg.Wait()
	return errs
}

func runTask[T any](sc *Scope, ctx *GameContext, item T, fn func(*Scope, T) error, record func(error)) {
	defer func() {
		if r := recover(); r != nil {
			record(fmt.Errorf("task panic: %v", r))
		}
	}()
	sc.With(ctx, func() {
		if err := fn(sc, item); err != nil {
			record(err)
		}
	})
}
