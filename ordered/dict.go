// Package ordered provides Dict, a map that also remembers a caller-controlled
// order of its keys. Entries can be reached by key or by position.
//
// A Dict behaves like a value: Clone returns an independent snapshot, and
// changes to either copy are never visible through the other. Clones share
// their backing storage until one of them is modified (copy-on-write), so
// taking a snapshot is O(1).
//
// A single Dict handle is not safe for concurrent use. Distinct handles
// obtained through Clone may be used from different goroutines.
package ordered

import (
	"fmt"
	"iter"
	"slices"

	"github.com/amp-labs/searchhistory/errors"
	"github.com/amp-labs/searchhistory/optional"
)

// Entry is a key and its value.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Dict is an insertion-ordered dictionary. The zero value is an empty Dict
// ready to use.
//
// Copying a Dict value (d2 := *d1) makes both variables share storage
// without copy-on-write protection; use Clone instead.
type Dict[K comparable, V any] struct {
	s *storage[K, V]
}

// New creates an empty Dict with room for capacity entries.
func New[K comparable, V any](capacity int) *Dict[K, V] {
	return &Dict[K, V]{s: newStorage[K, V](capacity)}
}

// FromEntries builds a Dict holding entries in the given order. A key that
// repeats keeps its first position and takes its last value.
func FromEntries[K comparable, V any](entries ...Entry[K, V]) *Dict[K, V] {
	d := New[K, V](len(entries))

	for _, e := range entries {
		d.Set(e.Key, e.Value)
	}

	return d
}

// Count returns the number of entries.
func (d *Dict[K, V]) Count() int {
	if d.s == nil {
		return 0
	}

	return len(d.s.order)
}

// Insert places key at index with the given value and returns the value the
// key held before, if any.
//
// If the key is already present it is first taken out of the order. index is
// read in the coordinates from before that removal: when the old position was
// before index, index is shifted down by one so the key lands where the caller
// pointed. The resulting position must lie within [0, Count()] for a new key
// and [0, Count()-1] for an existing one, otherwise ErrOutOfBounds is returned
// and nothing changes.
func (d *Dict[K, V]) Insert(value V, key K, index int) (optional.Value[V], error) {
	count := d.Count()
	existing := -1

	if d.s != nil {
		existing = d.s.indexOf(key)
	}

	target := index
	limit := count

	if existing >= 0 {
		if existing < index {
			target--
		}

		limit--
	}

	if index < 0 || target > limit {
		return optional.None[V](), outOfBounds(index, count)
	}

	s := d.mutable()

	previous := optional.None[V]()

	if existing >= 0 {
		previous = optional.Some(s.values[key])
		s.order = slices.Delete(s.order, existing, existing+1)
	}

	s.order = slices.Insert(s.order, target, key)
	s.values[key] = value

	return previous, nil
}

// RemoveAt removes the entry at index and returns it.
func (d *Dict[K, V]) RemoveAt(index int) (K, V, error) {
	key, value, err := d.At(index)
	if err != nil {
		return key, value, err
	}

	s := d.mutable()
	s.order = slices.Delete(s.order, index, index+1)
	delete(s.values, key)

	return key, value, nil
}

// Get returns the value stored for key.
func (d *Dict[K, V]) Get(key K) optional.Value[V] {
	if d.s == nil {
		return optional.None[V]()
	}

	value, ok := d.s.values[key]

	return optional.Of(value, ok)
}

// Contains reports whether key is present.
func (d *Dict[K, V]) Contains(key K) bool {
	return d.Get(key).NonEmpty()
}

// IndexOf returns the position of key, or -1 when it is absent.
func (d *Dict[K, V]) IndexOf(key K) int {
	if d.s == nil {
		return -1
	}

	return d.s.indexOf(key)
}

// Set assigns value to key. A new key is appended to the end of the order;
// an existing key keeps its position. Unlike Insert, Set never moves a key.
func (d *Dict[K, V]) Set(key K, value V) {
	s := d.mutable()

	if _, ok := s.values[key]; !ok {
		s.order = append(s.order, key)
	}

	s.values[key] = value
}

// Delete removes key from the Dict and returns its value, if it was present.
func (d *Dict[K, V]) Delete(key K) optional.Value[V] {
	index := d.IndexOf(key)
	if index < 0 {
		return optional.None[V]()
	}

	s := d.mutable()
	value := s.values[key]

	s.order = slices.Delete(s.order, index, index+1)
	delete(s.values, key)

	return optional.Some(value)
}

// At returns the entry at index.
func (d *Dict[K, V]) At(index int) (K, V, error) {
	var (
		key   K
		value V
	)

	if index < 0 || index >= d.Count() {
		return key, value, outOfBounds(index, d.Count())
	}

	key = d.s.order[index]

	value, ok := d.s.values[key]
	if !ok {
		return key, value, fmt.Errorf("%w: key %v at index %d has no value",
			errors.ErrInternalInconsistency, key, index)
	}

	return key, value, nil
}

// EntryAt is At returning an Entry.
func (d *Dict[K, V]) EntryAt(index int) (Entry[K, V], error) {
	key, value, err := d.At(index)
	if err != nil {
		return Entry[K, V]{}, err
	}

	return Entry[K, V]{Key: key, Value: value}, nil
}

// SetAt overwrites the entry at index.
//
// If entry.Key is the key already at index only the value changes. If it is a
// key not present anywhere, it replaces the old key at that position and the
// old key's value is dropped. If it is present at another position,
// ErrDuplicateKey is returned and nothing changes.
func (d *Dict[K, V]) SetAt(index int, entry Entry[K, V]) error {
	current, _, err := d.At(index)
	if err != nil {
		return err
	}

	if current != entry.Key && d.Contains(entry.Key) {
		return fmt.Errorf("%w: key %v already at index %d, cannot place it at %d",
			errors.ErrDuplicateKey, entry.Key, d.IndexOf(entry.Key), index)
	}

	s := d.mutable()

	if current != entry.Key {
		delete(s.values, current)
		s.order[index] = entry.Key
	}

	s.values[entry.Key] = entry.Value

	return nil
}

// Clear removes every entry.
func (d *Dict[K, V]) Clear() {
	if d.shared() {
		d.s.refs.Dec()
	}

	d.s = nil
}

// Clone returns an independent snapshot of the Dict. It is O(1); the first
// write to either copy pays for the duplication. Keys and values themselves
// are not deep-copied.
func (d *Dict[K, V]) Clone() *Dict[K, V] {
	if d == nil {
		return nil
	}

	if d.s == nil {
		return &Dict[K, V]{}
	}

	d.s.refs.Inc()

	return &Dict[K, V]{s: d.s}
}

// Keys returns the keys in order. The slice is a copy.
func (d *Dict[K, V]) Keys() []K {
	if d.s == nil {
		return []K{}
	}

	return slices.Clone(d.s.order)
}

// Values returns the values in key order.
func (d *Dict[K, V]) Values() []V {
	out := make([]V, 0, d.Count())

	for _, value := range d.All() {
		out = append(out, value)
	}

	return out
}

// All iterates over key/value pairs in order.
// The Dict must not be modified while iterating.
func (d *Dict[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if d.s == nil {
			return
		}

		for _, key := range d.s.order {
			if !yield(key, d.s.values[key]) {
				return
			}
		}
	}
}

// Seq iterates over (index, Entry) pairs in order:
//
//	for i, entry := range dict.Seq() {
//	    fmt.Printf("%d: %v=%v\n", i, entry.Key, entry.Value)
//	}
func (d *Dict[K, V]) Seq() iter.Seq2[int, Entry[K, V]] {
	return func(yield func(int, Entry[K, V]) bool) {
		if d.s == nil {
			return
		}

		for i, key := range d.s.order {
			if !yield(i, Entry[K, V]{Key: key, Value: d.s.values[key]}) {
				return
			}
		}
	}
}

func (d *Dict[K, V]) String() string {
	if d == nil {
		return "<nil>"
	}

	out := make([]string, 0, d.Count())

	for key, value := range d.All() {
		out = append(out, fmt.Sprintf("%v:%v", key, value))
	}

	return fmt.Sprintf("%v", out)
}

func outOfBounds(index, count int) error {
	return fmt.Errorf("%w: index %d, count %d", errors.ErrOutOfBounds, index, count)
}
