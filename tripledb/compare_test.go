package tripledb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareValuesOrdersByKindThenContent(t *testing.T) {
	assert.Equal(t, -1, CompareValues(Null, NewBool(false)))
	assert.Equal(t, -1, CompareValues(NewBool(false), NewBool(true)))
	assert.Equal(t, 0, CompareValues(NewInt(5), NewInt(5)))
	assert.Equal(t, -1, CompareValues(NewInt(1), NewInt(2)))
	assert.Equal(t, 1, CompareValues(NewFloat(2.5), NewFloat(1.5)))
	assert.Equal(t, -1, CompareValues(NewString("a"), NewString("b")))
	assert.Equal(t, 0, CompareValues(NewBytes([]byte{1, 2}), NewBytes([]byte{1, 2})))
}

func TestValuesEqual(t *testing.T) {
	assert.True(t, ValuesEqual(NewInt(5), NewInt(5)))
	assert.False(t, ValuesEqual(NewInt(5), NewFloat(5)))
}
