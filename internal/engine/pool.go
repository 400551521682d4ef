package engine

// pool is a private copy of catalog entries that items are drawn from
// without replacement.
type pool[T any] struct {
	items []T
}

// newPool copies items so drawing never touches the caller's slice.
func newPool[T any](items []T) *pool[T] {
	p := &pool[T]{items: make([]T, len(items))}
	copy(p.items, items)
	return p
}

// Draw removes and returns a uniformly chosen item. The pool must not be empty.
func (p *pool[T]) Draw(src IntSource) T {
	idx := src.IntN(len(p.items))
	item := p.items[idx]
	p.items = append(p.items[:idx], p.items[idx+1:]...)
	return item
}

// Pick returns a uniformly chosen item and leaves it in the pool.
func (p *pool[T]) Pick(src IntSource) T {
	return Pick(src, p.items)
}

// Len returns the number of items remaining.
func (p *pool[T]) Len() int {
	return len(p.items)
}
