// Package batch analyses many portraits concurrently.
package batch

import (
	"context"
	"runtime"
	"sync"
	"time"
)

// Item is the outcome for one input.
type Item[T any] struct {
	Path    string
	Value   T
	Err     error
	Elapsed time.Duration
}

// Options controls Run.
type Options struct {
	// Workers is the number of concurrent workers. Zero means runtime.NumCPU().
	Workers int
	// OnDone, if set, is called once per finished item from a worker goroutine.
	OnDone func(path string, err error)
}

// Run calls fn for every path with a bounded worker pool. Results keep the
// input order. A failing item does not stop the others; cancelling ctx stops
// scheduling and marks unstarted items with ctx.Err().
func Run[T any](ctx context.Context, paths []string, opts Options, fn func(context.Context, string) (T, error)) []Item[T] {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, max(1, len(paths)))

	items := make([]Item[T], len(paths))
	for i, p := range paths {
		items[i].Path = p
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				start := time.Now()
				v, err := fn(ctx, items[i].Path)
				items[i].Value = v
				items[i].Err = err
				items[i].Elapsed = time.Since(start)
				if opts.OnDone != nil {
					opts.OnDone(items[i].Path, err)
				}
			}
		}()
	}

	next := 0
feed:
	for ; next < len(paths); next++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- next:
		}
	}
	close(jobs)
	wg.Wait()

	for i := next; i < len(items); i++ {
		items[i].Err = ctx.Err()
	}
	return items
}

// Failed counts the items with errors.
func Failed[T any](items []Item[T]) int {
	n := 0
	for _, it := range items {
		if it.Err != nil {
			n++
		}
	}
	return n
}
