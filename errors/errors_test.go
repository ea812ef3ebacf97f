package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelsAreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{ErrOutOfBounds, ErrDuplicateKey, ErrInternalInconsistency, ErrUnsupportedKey}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}

			assert.NotErrorIs(t, a, b)
		}
	}
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("%w: index 4, count 2", ErrOutOfBounds)

	require.ErrorIs(t, err, ErrOutOfBounds)
	assert.Contains(t, err.Error(), "index out of bounds")
}

func TestCollection(t *testing.T) {
	t.Parallel()

	t.Run("empty collection has no error", func(t *testing.T) {
		t.Parallel()

		c := &Collection{}
		c.Add(nil)

		assert.NoError(t, c.GetError())
	})

	t.Run("single error is returned as is", func(t *testing.T) {
		t.Parallel()

		c := &Collection{}
		c.Add(ErrDuplicateKey)

		assert.Equal(t, ErrDuplicateKey, c.GetError())
	})

	t.Run("multiple errors are joined", func(t *testing.T) {
		t.Parallel()

		c := &Collection{}
		c.Add(ErrDuplicateKey)
		c.Add(nil)
		c.Add(ErrInternalInconsistency)

		err := c.GetError()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateKey)
		assert.ErrorIs(t, err, ErrInternalInconsistency)
		assert.Len(t, c.errors, 2)
	})
}
