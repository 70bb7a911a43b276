package relation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kvgraph/tripledb"
)

func TestTupleSetMergeConcatenatesColumns(t *testing.T) {
	left := NewTupleSet(tripledb.NewInt(1), tripledb.NewInt(2))
	right := NewTupleSet(tripledb.NewInt(3))

	merged := left.Merge(right)
	assert.Equal(t, 3, merged.Width())

	i0, _ := merged.At(0).Int()
	i1, _ := merged.At(1).Int()
	i2, _ := merged.At(2).Int()
	assert.Equal(t, []int64{1, 2, 3}, []int64{i0, i1, i2})

	// Merge does not mutate either operand.
	assert.Equal(t, 2, left.Width())
	assert.Equal(t, 1, right.Width())
}

func TestTupleSetCloneIsIndependent(t *testing.T) {
	t1 := NewTupleSet(tripledb.NewInt(1))
	clone := t1.Clone()

	clone.values[0] = tripledb.NewInt(99)

	orig, _ := t1.At(0).Int()
	cloned, _ := clone.At(0).Int()
	assert.Equal(t, int64(1), orig)
	assert.Equal(t, int64(99), cloned)
}
