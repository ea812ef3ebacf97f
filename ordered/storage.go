package ordered

import (
	"maps"
	"slices"

	"go.uber.org/atomic"
)

// storage is the backing state shared between a Dict and its clones.
// refs counts the handles pointing at it; a handle may only write to
// storage it holds exclusively (refs == 1).
type storage[K comparable, V any] struct {
	order  []K     // keys, in caller-specified order
	values map[K]V // value by key
	refs   atomic.Int32
}

func newStorage[K comparable, V any](capacity int) *storage[K, V] {
	s := &storage[K, V]{
		order:  make([]K, 0, capacity),
		values: make(map[K]V, capacity),
	}

	s.refs.Store(1)

	return s
}

// copy returns an exclusively owned duplicate. Values are copied shallowly.
func (s *storage[K, V]) copy() *storage[K, V] {
	cp := &storage[K, V]{
		order:  slices.Clone(s.order),
		values: maps.Clone(s.values),
	}

	if cp.values == nil {
		cp.values = make(map[K]V)
	}

	cp.refs.Store(1)

	return cp
}

func (s *storage[K, V]) indexOf(key K) int {
	if _, ok := s.values[key]; !ok {
		return -1
	}

	return slices.Index(s.order, key)
}

// mutable returns storage the handle may write to, detaching from any
// clones first. Only call it once the operation is known to succeed.
func (d *Dict[K, V]) mutable() *storage[K, V] {
	if d.s == nil {
		d.s = newStorage[K, V](0)

		return d.s
	}

	if d.s.refs.Load() > 1 {
		detached := d.s.copy()
		d.s.refs.Dec()
		d.s = detached
	}

	return d.s
}

// shared reports whether another handle still references this handle's storage.
func (d *Dict[K, V]) shared() bool {
	return d.s != nil && d.s.refs.Load() > 1
}
