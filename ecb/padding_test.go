package ecb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaddedLen(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{0, 16}, {1, 16}, {9, 16}, {15, 16}, {16, 32}, {17, 32}, {31, 32}, {32, 48},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PaddedLen(tt.n), "n=%d", tt.n)
	}
}

func TestPad(t *testing.T) {
	buf := Pad([]byte("small str"))
	require.Len(t, buf, 16)
	assert.Equal(t, []byte("small str"), buf[:9])
	assert.Equal(t, byte(Marker), buf[9])
	assert.Equal(t, make([]byte, 6), buf[10:])

	aligned := Pad(make([]byte, 16))
	require.Len(t, aligned, 32)
	assert.Equal(t, byte(Marker), aligned[16])
}

func TestUnpad(t *testing.T) {
	for _, msg := range [][]byte{{}, []byte("x"), []byte("ends with zero\x00"), []byte("ends with marker\x01"), make([]byte, 16)} {
		got, err := Unpad(Pad(msg))
		require.NoError(t, err)
		assert.Equal(t, msg, got)
	}
}

func TestUnpadErrors(t *testing.T) {
	_, err := Unpad(make([]byte, 16))
	assert.ErrorIs(t, err, ErrPadding)

	_, err = Unpad(nil)
	assert.ErrorIs(t, err, ErrPadding)

	bad := make([]byte, 16)
	bad[3] = 0x02
	_, err = Unpad(bad)
	assert.ErrorIs(t, err, ErrPadding)
}
