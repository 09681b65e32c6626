// Package workers splits index ranges across a bounded set of goroutines.
package workers

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pool runs range jobs on at most numWorkers goroutines at a time.
type Pool struct {
	numWorkers int
}

// NewPool creates a pool with numWorkers workers, or one per CPU when
// numWorkers is not positive.
func NewPool(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Pool{numWorkers: numWorkers}
}

// Workers returns the worker count.
func (p *Pool) Workers() int {
	return p.numWorkers
}

// ParallelFor calls fn for every index in [start, end), in contiguous
// chunks, and returns once all chunks are done.
func (p *Pool) ParallelFor(start, end int, fn func(int)) {
	_ = p.ParallelForWithContext(context.Background(), start, end, fn)
}

// ParallelForWithContext is ParallelFor with cancellation. Chunks check ctx
// between indices and the context error is returned when it fires.
func (p *Pool) ParallelForWithContext(ctx context.Context, start, end int, fn func(int)) error {
	if start >= end {
		return nil
	}
	if p.numWorkers == 1 {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(i)
		}
		return nil
	}

	chunkSize := max(1, (end-start+p.numWorkers-1)/p.numWorkers)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.numWorkers)
	for i := start; i < end; i += chunkSize {
		chunkStart, chunkEnd := i, min(i+chunkSize, end)
		g.Go(func() error {
			for j := chunkStart; j < chunkEnd; j++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				fn(j)
			}
			return nil
		})
	}
	return g.Wait()
}
