package worker

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/matryer/is"
)

func TestBatchRunsAllTasks(t *testing.T) {
	is := is.New(t)
	p := NewPool(4)
	b := p.NewBatch()
	results := make([]int, 100)
	for i := 0; i < len(results); i++ {
		b.Go(func() error {
			results[i] = i * i
			return nil
		})
	}
	is.NoErr(b.Wait())
	for i, r := range results {
		is.Equal(r, i*i)
	}
	spawned, inlined := p.Stats()
	is.Equal(spawned+inlined, uint64(100))
}

func TestNilPoolRunsInline(t *testing.T) {
	is := is.New(t)
	var p *Pool
	b := p.NewBatch()
	order := []int{}
	for i := 0; i < 5; i++ {
		b.Go(func() error {
			order = append(order, i)
			return nil
		})
	}
	is.NoErr(b.Wait())
	is.Equal(order, []int{0, 1, 2, 3, 4})
	is.Equal(p.Size(), 0)
}

func TestBatchReportsErrors(t *testing.T) {
	is := is.New(t)
	errBoom := errors.New("boom")
	for _, p := range []*Pool{nil, NewPool(1), NewPool(8)} {
		b := p.NewBatch()
		for i := 0; i < 10; i++ {
			b.Go(func() error {
				if i == 7 {
					return errBoom
				}
				return nil
			})
		}
		is.True(errors.Is(b.Wait(), errBoom))
	}
}

// Nested fan-out deeper than the pool size must still complete.
func TestNestedBatchesDoNotDeadlock(t *testing.T) {
	is := is.New(t)
	p := NewPool(2)
	var leaves atomic.Int64

	var fan func(depth int) error
	fan = func(depth int) error {
		if depth == 0 {
			leaves.Add(1)
			return nil
		}
		b := p.NewBatch()
		for i := 0; i < 3; i++ {
			b.Go(func() error { return fan(depth - 1) })
		}
		return b.Wait()
	}
	is.NoErr(fan(5))
	is.Equal(leaves.Load(), int64(243))
}

func TestPoolBoundsConcurrency(t *testing.T) {
	is := is.New(t)
	p := NewPool(3)
	var running, peak atomic.Int64
	var mu sync.Mutex
	b := p.NewBatch()
	release := make(chan struct{})
	started := make(chan struct{}, 3)
	for i := 0; i < 3; i++ {
		b.Go(func() error {
			n := running.Add(1)
			mu.Lock()
			if n > peak.Load() {
				peak.Store(n)
			}
			mu.Unlock()
			started <- struct{}{}
			<-release
			running.Add(-1)
			return nil
		})
	}
	for i := 0; i < 3; i++ {
		<-started
	}
	// Every slot is taken, so this one runs inline right away.
	ranInline := false
	b.Go(func() error {
		ranInline = true
		return nil
	})
	is.True(ranInline)
	close(release)
	is.NoErr(b.Wait())
	is.True(peak.Load() <= 3)
	_, inlined := p.Stats()
	is.Equal(inlined, uint64(1))
}

func TestSetDefaultSize(t *testing.T) {
	is := is.New(t)
	old := Default()
	defer defaultPool.Store(old)
	SetDefaultSize(5)
	is.Equal(Default().Size(), 5)
	SetDefaultSize(0)
	is.Equal(Default().Size(), 1)
}
