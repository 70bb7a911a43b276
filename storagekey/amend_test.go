package storagekey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvgraph/tripledb"
)

func TestAmendValidityPreservesOtherFields(t *testing.T) {
	a := mustAttr(t, 5)
	e := mustEntity(t, 7)
	val := tripledb.NewString("unchanged")
	key := EncodeAEVKey(a, e, val, tripledb.Validity(10))

	require.NoError(t, AmendValidity(key, tripledb.Validity(20)))

	gotA, gotE, gotVld, err := DecodeAEKey(key.Bytes())
	require.NoError(t, err)
	assert.Equal(t, a, gotA)
	assert.Equal(t, e, gotE)
	assert.Equal(t, tripledb.Validity(20), gotVld)

	gotVal, err := DecodeValueFromKey(key.Bytes())
	require.NoError(t, err)
	assert.True(t, tripledb.ValuesEqual(val, gotVal))
}

func TestAmendValidityRejectsWrongFamily(t *testing.T) {
	key := EncodeAttrByID(mustAttr(t, 1), mustTx(t, 1))
	err := AmendValidity(key, tripledb.ValidityMax)
	require.Error(t, err)
}

func TestAmendValidityToMinMax(t *testing.T) {
	key := EncodeAEVKey(mustAttr(t, 1), mustEntity(t, 1), tripledb.Null, tripledb.Validity(5))

	require.NoError(t, AmendValidityToMax(key))
	_, _, vld, err := DecodeAEKey(key.Bytes())
	require.NoError(t, err)
	assert.Equal(t, tripledb.ValidityMax, vld)

	require.NoError(t, AmendValidityToMin(key))
	_, _, vld, err = DecodeAEKey(key.Bytes())
	require.NoError(t, err)
	assert.Equal(t, tripledb.ValidityMin, vld)
}

func TestAmendValidityOnRawKey(t *testing.T) {
	orig := EncodeAEVKey(mustAttr(t, 2), mustEntity(t, 2), tripledb.NewInt(1), tripledb.Validity(1))
	raw := orig.Clone()

	wrapped := FromRawKey(raw)
	require.NoError(t, AmendValidity(wrapped, tripledb.Validity(99)))

	_, _, vld, err := DecodeAEKey(wrapped.Bytes())
	require.NoError(t, err)
	assert.Equal(t, tripledb.Validity(99), vld)
}
