package sufexpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocElemSize(t *testing.T) {
	p := New(4)
	require.Equal(t, 4, p.ElemSize())

	b, err := p.Alloc(10)
	require.NoError(t, err)
	assert.Len(t, b.Bytes, 40)
}

func TestReallocPreservesPrefix(t *testing.T) {
	p := New(1)
	b, err := p.Alloc(4)
	require.NoError(t, err)
	copy(b.Bytes, []byte{1, 2, 3, 4})

	grown, err := p.Realloc(b, 8)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, grown.Bytes[:4])
	assert.Len(t, grown.Bytes, 8)
}

func TestReallocUnknownBlockFails(t *testing.T) {
	p := New(1)
	_, err := p.Realloc(BlockPtr{}, 4)
	assert.Error(t, err)
}

func TestFreeThenClearAll(t *testing.T) {
	p := New(2)
	b1, _ := p.Alloc(2)
	_, _ = p.Alloc(3)
	p.Free(b1)
	p.ClearAll()

	_, err := p.Realloc(b1, 2)
	assert.Error(t, err, "a freed (or cleared) block must not be reallocatable")
}
