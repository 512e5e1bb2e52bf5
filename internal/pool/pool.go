// Package pool wraps sync.Pool with typed accessors. The parser uses it to
// recycle its accumulation buckets between calls.
package pool

import (
	"sync"
	"sync/atomic"
)

// Pool provides a generic, type-safe object pool
type Pool[T any] struct {
	pool  sync.Pool
	reset func(*T)     // Optional reset function called before reuse
	keep  func(*T) bool // Optional filter deciding whether Put retains obj
	drops atomic.Int64
}

// NewPool creates a new generic pool with the given factory function
func NewPool[T any](factory func() *T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return factory()
			},
		},
	}
}

// NewPoolWithReset creates a pool with a reset function called before reuse
func NewPoolWithReset[T any](factory func() *T, reset func(*T)) *Pool[T] {
	p := NewPool(factory)
	p.reset = reset
	return p
}

// Get retrieves an object from the pool or creates a new one
func (p *Pool[T]) Get() *T {
	obj := p.pool.Get().(*T)
	if p.reset != nil {
		p.reset(obj)
	}
	return obj
}

// Put returns an object to the pool. Objects rejected by the keep filter
// are left to the garbage collector.
func (p *Pool[T]) Put(obj *T) {
	if obj == nil {
		return
	}
	if p.keep != nil && !p.keep(obj) {
		p.drops.Add(1)
		return
	}
	p.pool.Put(obj)
}

// Dropped reports how many objects Put refused to retain.
func (p *Pool[T]) Dropped() int64 {
	return p.drops.Load()
}

// SlicePool pools slices of E, truncated to length zero on Get.
type SlicePool[E any] struct {
	*Pool[[]E]
}

// NewSlicePool creates a slice pool. Slices whose capacity grew beyond
// maxCap are not retained; maxCap <= 0 keeps everything.
func NewSlicePool[E any](defaultCap, maxCap int) *SlicePool[E] {
	p := NewPoolWithReset(
		func() *[]E {
			s := make([]E, 0, defaultCap)
			return &s
		},
		func(s *[]E) {
			clear(*s)
			*s = (*s)[:0]
		},
	)
	if maxCap > 0 {
		p.keep = func(s *[]E) bool { return cap(*s) <= maxCap }
	}
	return &SlicePool[E]{Pool: p}
}
