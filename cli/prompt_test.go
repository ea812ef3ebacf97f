package cli

import (
	"fmt"
	"io"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "0", want: 0},
		{in: " 12 ", want: 12},
		{in: "-1", want: -1},
		{in: "one", wantErr: true},
		{in: "", wantErr: true},
		{in: "99999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseInt(tt.in)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsExit(t *testing.T) {
	t.Parallel()

	assert.True(t, IsExit(promptui.ErrInterrupt))
	assert.True(t, IsExit(fmt.Errorf("reading: %w", promptui.ErrEOF)))
	assert.True(t, IsExit(io.EOF))
	assert.False(t, IsExit(promptui.ErrAbort))
	assert.False(t, IsExit(nil))
}

func TestChoose_NoItems(t *testing.T) {
	t.Parallel()

	var p Prompter

	idx, err := p.Choose("Pick", nil)
	require.ErrorIs(t, err, ErrNoChoices)
	assert.Equal(t, -1, idx)
}
