package ordered

import (
	"fmt"

	"github.com/amp-labs/searchhistory/errors"
)

// Validate checks that the key order and the value table describe the same
// set of keys. Every violation found is reported, each wrapping
// ErrInternalInconsistency. A nil result means the Dict is consistent.
func (d *Dict[K, V]) Validate() error {
	if d == nil || d.s == nil {
		return nil
	}

	return validate(d.s)
}

func validate[K comparable, V any](s *storage[K, V]) error {
	var errs errors.Collection

	if len(s.order) != len(s.values) {
		errs.Add(fmt.Errorf("%w: %d ordered keys but %d values",
			errors.ErrInternalInconsistency, len(s.order), len(s.values)))
	}

	seen := make(map[K]int, len(s.order))

	for i, key := range s.order {
		if first, dup := seen[key]; dup {
			errs.Add(fmt.Errorf("%w: key %v at both index %d and %d",
				errors.ErrInternalInconsistency, key, first, i))

			continue
		}

		seen[key] = i

		if _, ok := s.values[key]; !ok {
			errs.Add(fmt.Errorf("%w: key %v at index %d has no value",
				errors.ErrInternalInconsistency, key, i))
		}
	}

	for key := range s.values {
		if _, ok := seen[key]; !ok {
			errs.Add(fmt.Errorf("%w: key %v has a value but no position",
				errors.ErrInternalInconsistency, key))
		}
	}

	return errs.GetError()
}
