package relation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindingMapAddAndGet(t *testing.T) {
	bm := NewBindingMap()
	require.NoError(t, bm.Add("x", 1))
	require.NoError(t, bm.Add("y", 2))

	xr, ok := bm.Get("x")
	require.True(t, ok)
	assert.Equal(t, ColumnRange{0, 1}, xr)

	yr, ok := bm.Get("y")
	require.True(t, ok)
	assert.Equal(t, ColumnRange{1, 3}, yr)

	assert.Equal(t, 3, bm.Width())
	assert.Equal(t, 3, NextTupleSetIndex(bm))
}

func TestBindingMapAddCollision(t *testing.T) {
	bm := NewBindingMap()
	require.NoError(t, bm.Add("x", 1))
	err := bm.Add("x", 1)
	require.Error(t, err)
}

func TestShiftMergeBindingMap(t *testing.T) {
	left := NewBindingMap()
	require.NoError(t, left.Add("x", 1))

	right := NewBindingMap()
	require.NoError(t, right.Add("y", 1))
	require.NoError(t, right.Add("z", 2))

	require.NoError(t, ShiftMergeBindingMap(left, right))

	yr, ok := left.Get("y")
	require.True(t, ok)
	assert.Equal(t, ColumnRange{1, 2}, yr)

	zr, ok := left.Get("z")
	require.True(t, ok)
	assert.Equal(t, ColumnRange{2, 4}, zr)

	assert.Equal(t, 4, left.Width())
}

func TestShiftMergeBindingMapCollisionLeavesLeftUnmodified(t *testing.T) {
	left := NewBindingMap()
	require.NoError(t, left.Add("x", 1))

	right := NewBindingMap()
	require.NoError(t, right.Add("x", 1))

	err := ShiftMergeBindingMap(left, right)
	require.Error(t, err)
	assert.Equal(t, 1, left.Width())
}
