// Package worker provides the shared pool of worker slots used for the
// data-parallel fan-out of the search and of the board evaluation.
package worker

import (
	"runtime"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Pool bounds how many extra goroutines fan-out may use at once. A task that
// can not get a slot runs inline on the goroutine that submitted it, so a
// full pool never blocks and nested fan-out can not deadlock.
type Pool struct {
	size int64
	sem  *semaphore.Weighted

	spawned atomic.Uint64
	inlined atomic.Uint64
}

func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{size: int64(size), sem: semaphore.NewWeighted(int64(size))}
}

var defaultPool atomic.Pointer[Pool]

func init() {
	defaultPool.Store(NewPool(runtime.GOMAXPROCS(0)))
}

// Default returns the process-wide pool.
func Default() *Pool {
	return defaultPool.Load()
}

// SetDefaultSize replaces the process-wide pool with one of the given size.
// Batches already running keep the pool they started with.
func SetDefaultSize(size int) {
	p := NewPool(size)
	defaultPool.Store(p)
	log.Debug().Int64("size", p.size).Msg("worker-pool-resized")
}

func (p *Pool) Size() int {
	if p == nil {
		return 0
	}
	return int(p.size)
}

// Stats returns how many tasks ran on their own goroutine and how many ran
// inline because the pool was busy.
func (p *Pool) Stats() (spawned, inlined uint64) {
	if p == nil {
		return 0, 0
	}
	return p.spawned.Load(), p.inlined.Load()
}

// Batch is a fork/join group of tasks submitted to a pool.
type Batch struct {
	pool *Pool
	g    errgroup.Group
}

// NewBatch starts an empty batch. A nil pool is valid and runs every task
// inline.
func (p *Pool) NewBatch() *Batch {
	return &Batch{pool: p}
}

// Go runs fn, on its own goroutine if a slot is free and inline otherwise.
func (b *Batch) Go(fn func() error) {
	p := b.pool
	if p != nil && p.sem.TryAcquire(1) {
		p.spawned.Add(1)
		b.g.Go(func() error {
			defer p.sem.Release(1)
			return fn()
		})
		return
	}
	if p != nil {
		p.inlined.Add(1)
	}
	if err := fn(); err != nil {
		// Hand the error to the group so Wait reports it.
		b.g.Go(func() error { return err })
	}
}

// Wait blocks until every task in the batch has finished and returns the
// first error any of them returned.
func (b *Batch) Wait() error {
	return b.g.Wait()
}
