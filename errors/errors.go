package errors

import "errors"

var (
	// ErrOutOfBounds is returned when a positional operation receives an index
	// outside the valid range for the container.
	ErrOutOfBounds = errors.New("index out of bounds")

	// ErrDuplicateKey is returned when a positional write would leave the same
	// key at two different positions.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInternalInconsistency signals a broken invariant between the key order
	// and the value table. It should never be observed; seeing it means a bug.
	ErrInternalInconsistency = errors.New("internal inconsistency")

	// ErrUnsupportedKey is returned when a key type cannot be written as, or
	// read from, the text form a serialization format requires.
	ErrUnsupportedKey = errors.New("unsupported key type")
)

// Collection is a thread-unsafe utility for accumulating multiple errors.
// Use this when several independent checks run and all failures should be
// reported together.
type Collection struct {
	errors []error
}

// Add appends an error to the collection. Nil errors are ignored.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// GetError returns nil for an empty collection, the lone error if there is
// exactly one, and an errors.Join of everything otherwise.
func (c *Collection) GetError() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}
