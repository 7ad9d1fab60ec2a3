package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFromCode(t *testing.T) {
	m := NewSliceMemory([]byte{1, 2, 3, 4}, make([]byte, 4))

	data, err := m.Load(1, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{2, 3}, data)
}

func TestLoadFromRAM(t *testing.T) {
	ram := make([]byte, 8)
	ram[2] = 0xAB
	m := NewSliceMemory(nil, ram)

	data, err := m.Load(RAMBase+2, 1)
	require.NoError(t, err)
	require.Equal(t, []byte{0xAB}, data)
}

func TestLoadOutOfBounds(t *testing.T) {
	m := NewSliceMemory([]byte{1, 2}, make([]byte, 2))

	_, err := m.Load(1, 4)
	require.ErrorAs(t, err, new(*ErrInvalidAddress))

	_, err = m.Load(RAMBase+1, 4)
	require.ErrorAs(t, err, new(*ErrInvalidAddress))
}

func TestStoreRejectsCodeRegion(t *testing.T) {
	m := NewSliceMemory([]byte{1, 2}, make([]byte, 2))

	err := m.Store(0, []byte{9})
	require.ErrorAs(t, err, new(*ErrInvalidAddress))
}

func TestStoreRoundTrip(t *testing.T) {
	ram := make([]byte, 4)
	m := NewSliceMemory(nil, ram)

	require.NoError(t, m.Store(RAMBase, []byte{1, 2, 3, 4}))
	data, err := m.Load(RAMBase, 4)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4}, data)
}

func TestMutBytesEnablesInPlaceUpdate(t *testing.T) {
	ram := make([]byte, 4)
	m := NewSliceMemory(nil, ram)
	require.NoError(t, m.Store(RAMBase, []byte{0, 0, 0, 14}))

	view, err := m.MutBytes(RAMBase, 4)
	require.NoError(t, err)
	view[3] = 16

	data, err := m.Load(RAMBase, 4)
	require.NoError(t, err)
	require.Equal(t, byte(16), data[3])
}

func TestLengthOverflow(t *testing.T) {
	m := NewSliceMemory([]byte{1}, make([]byte, 1))
	_, err := m.Load(0xFFFFFFFF, 2)
	require.ErrorAs(t, err, new(*ErrInvalidLength))
}
