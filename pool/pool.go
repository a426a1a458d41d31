// Package pool provides a bounded free-list for recycling objects.
package pool

// Pool is a bounded FIFO free-list. Shrinking the capacity never evicts
// entries already pooled, it only rejects later Puts.
type Pool[T any] struct {
	items    []T
	capacity int
}

func New[T any](capacity int) *Pool[T] {
	p := &Pool[T]{}
	p.SetCap(capacity)
	return p
}

func (p *Pool[T]) Len() int { return len(p.items) }
func (p *Pool[T]) Cap() int { return p.capacity }

// SetCap sets the capacity. Negative values are treated as zero.
func (p *Pool[T]) SetCap(n int) {
	p.capacity = max(n, 0)
}

// Put adds v to the pool. It reports false, leaving the pool unchanged, when
// the pool is at capacity.
func (p *Pool[T]) Put(v T) bool {
	if len(p.items) >= p.capacity {
		return false
	}
	p.items = append(p.items, v)
	return true
}

// Get removes and returns the oldest entry.
func (p *Pool[T]) Get() (T, bool) {
	return p.TakeFunc(nil)
}

// TakeFunc removes and returns the oldest entry for which ok returns true.
// A nil ok matches everything.
func (p *Pool[T]) TakeFunc(ok func(T) bool) (T, bool) {
	for i, v := range p.items {
		if ok != nil && !ok(v) {
			continue
		}
		var zero T
		copy(p.items[i:], p.items[i+1:])
		p.items[len(p.items)-1] = zero
		p.items = p.items[:len(p.items)-1]
		return v, true
	}
	var zero T
	return zero, false
}

// Drain empties the pool, calling fn on every entry.
func (p *Pool[T]) Drain(fn func(T)) {
	items := p.items
	p.items = nil
	if fn == nil {
		return
	}
	for _, v := range items {
		fn(v)
	}
}
