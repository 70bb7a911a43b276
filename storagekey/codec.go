package storagekey

import (
	"github.com/kvgraph/tripledb"
)

// vecSize8/16/24/32 name the byte offsets the fixed-width prefixes of each
// record family occupy, mirroring the four SmallVec capacity tiers
// (8/16/32/60) for the given key family.
const (
	vecSize8  = 8
	vecSize16 = 16
	vecSize24 = 24
	vecSize32 = 32
)

// EncodeAEVKey builds an AEV-ordered triple key: tag(1) ‖ a[1:7] ‖ e[0:8] ‖
// vld[0:8] ‖ value.
func EncodeAEVKey(a tripledb.AttrId, e tripledb.EntityId, val tripledb.DataValue, vld tripledb.Validity) *EncodedVec {
	return encodeAEVOrAVE(tripledb.TagTripleAEV, a, e, val, vld)
}

// EncodeAVEKey builds an AVE-ordered triple key: tag(2) ‖ a[1:7] ‖ e[0:8] ‖
// vld[0:8] ‖ value. Byte-for-byte this is the same layout as EncodeAEVKey
// save for the tag; the two families are distinguished purely by tag byte,
// exactly as the persisted layout requires.
func EncodeAVEKey(a tripledb.AttrId, val tripledb.DataValue, e tripledb.EntityId, vld tripledb.Validity) *EncodedVec {
	return encodeAEVOrAVE(tripledb.TagTripleAVE, a, e, val, vld)
}

func encodeAEVOrAVE(tag tripledb.StorageTag, a tripledb.AttrId, e tripledb.EntityId, val tripledb.DataValue, vld tripledb.Validity) *EncodedVec {
	ev := &EncodedVec{}
	aTagged := a.TaggedBytes(tag)
	ev.appendBytes(aTagged[:])
	eBytes := e.Bytes()
	ev.appendBytes(eBytes[:])
	vldBytes := vld.Bytes()
	ev.appendBytes(vldBytes[:])
	ev.small[0] = byte(tag) // redundant with TaggedBytes but keeps intent obvious
	ev.appendValue(val)
	return ev
}

func (e *EncodedVec) appendValue(val tripledb.DataValue) {
	if e.big != nil {
		e.big = tripledb.SerializeValue(val, e.big)
		return
	}
	// Serialize into a temporary slice, then append it; appendBytes moves
	// the key onto the heap if the result won't fit inline.
	buf := tripledb.SerializeValue(val, nil)
	e.appendBytes(buf)
}

// DecodeAEKey decodes the (attr, entity, validity) prefix shared by AEV and
// AVE keys. Accepts either tag.
func DecodeAEKey(key []byte) (tripledb.AttrId, tripledb.EntityId, tripledb.Validity, error) {
	if len(key) < vecSize24 {
		return 0, 0, 0, truncated()
	}
	tag := tripledb.StorageTag(key[0])
	if tag != tripledb.TagTripleAEV && tag != tripledb.TagTripleAVE {
		return 0, 0, 0, badTag()
	}
	a, err := tripledb.AttrIdFromBytes(key[0:vecSize8])
	if err != nil {
		return 0, 0, 0, err
	}
	e, err := tripledb.EntityIdFromBytes(key[vecSize8:vecSize16])
	if err != nil {
		return 0, 0, 0, err
	}
	vld, err := tripledb.ValidityFromBytes(key[vecSize16:vecSize24])
	if err != nil {
		return 0, 0, 0, err
	}
	return a, e, vld, nil
}

// DecodeValueFromKey decodes the value tail of an AEV/AVE key (bytes
// [24:]).
func DecodeValueFromKey(key []byte) (tripledb.DataValue, error) {
	if len(key) < vecSize24 {
		return tripledb.DataValue{}, truncated()
	}
	v, _, err := tripledb.DeserializeValue(key[vecSize24:])
	if err != nil {
		return tripledb.DataValue{}, valueDeserError(err)
	}
	return v, nil
}

// DecodeValue deserializes a standalone self-delimiting value blob (no key
// prefix), e.g. a value retrieved from a KV store's value slot rather than
// its key.
func DecodeValue(raw []byte) (tripledb.DataValue, error) {
	v, _, err := tripledb.DeserializeValue(raw)
	if err != nil {
		return tripledb.DataValue{}, valueDeserError(err)
	}
	return v, nil
}

// DecodeValueFromVal decodes a value stored in a KV "value" blob that
// carries an 8-byte marker (e.g. a TxId or opcode byte plus padding)
// immediately before the self-delimiting value bytes.
func DecodeValueFromVal(raw []byte) (tripledb.DataValue, error) {
	if len(raw) < vecSize8 {
		return tripledb.DataValue{}, truncated()
	}
	v, _, err := tripledb.DeserializeValue(raw[vecSize8:])
	if err != nil {
		return tripledb.DataValue{}, valueDeserError(err)
	}
	return v, nil
}

// EncodeAVERefKey builds an AVE key for a reference-typed attribute, where
// the value is itself a fixed-width EntityId: tag(3) ‖ a[1:7] ‖ v[0:8] ‖
// vld[0:8] ‖ e[0:8]. Unlike plain AVE, the entity id is placed LAST so that
// (attr, val, vld) forms a fixed-length prefix usable for point-in-time
// range scans.
func EncodeAVERefKey(v tripledb.EntityId, a tripledb.AttrId, e tripledb.EntityId, vld tripledb.Validity) *EncodedVec {
	ev := &EncodedVec{}
	aTagged := a.TaggedBytes(tripledb.TagTripleAVERef)
	ev.appendBytes(aTagged[:])
	vBytes := v.Bytes()
	ev.appendBytes(vBytes[:])
	vldBytes := vld.Bytes()
	ev.appendBytes(vldBytes[:])
	eBytes := e.Bytes()
	ev.appendBytes(eBytes[:])
	return ev
}

// DecodeAVERefKey is the inverse of EncodeAVERefKey, returning
// (attr, value-entity, entity, validity).
func DecodeAVERefKey(key []byte) (tripledb.AttrId, tripledb.EntityId, tripledb.EntityId, tripledb.Validity, error) {
	if len(key) < vecSize32 {
		return 0, 0, 0, 0, truncated()
	}
	if tripledb.StorageTag(key[0]) != tripledb.TagTripleAVERef {
		return 0, 0, 0, 0, badTag()
	}
	a, err := tripledb.AttrIdFromBytes(key[0:vecSize8])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	v, err := tripledb.EntityIdFromBytes(key[vecSize8:vecSize16])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	vld, err := tripledb.ValidityFromBytes(key[vecSize16:vecSize24])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	e, err := tripledb.EntityIdFromBytes(key[vecSize24:vecSize32])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return a, v, e, vld, nil
}

// EncodeAttrByID builds an attribute-metadata key: tag(4) ‖ a[1:7] ‖ tx[0:8].
func EncodeAttrByID(a tripledb.AttrId, tx tripledb.TxId) *EncodedVec {
	ev := &EncodedVec{}
	aTagged := a.TaggedBytes(tripledb.TagAttrByID)
	ev.appendBytes(aTagged[:])
	txBytes := tx.Bytes()
	ev.appendBytes(txBytes[:])
	return ev
}

// DecodeAttrKeyByID is the inverse of EncodeAttrByID.
func DecodeAttrKeyByID(key []byte) (tripledb.AttrId, tripledb.TxId, error) {
	if len(key) < vecSize16 {
		return 0, 0, truncated()
	}
	if tripledb.StorageTag(key[0]) != tripledb.TagAttrByID {
		return 0, 0, badTag()
	}
	a, err := tripledb.AttrIdFromBytes(key[0:vecSize8])
	if err != nil {
		return 0, 0, err
	}
	tx, err := tripledb.TxIdFromBytes(key[vecSize8:vecSize16])
	if err != nil {
		return 0, 0, err
	}
	return a, tx, nil
}

// EncodeTx builds a transaction-log key: tag(5) ‖ tx[1:7].
func EncodeTx(tx tripledb.TxId) *EncodedVec {
	ev := &EncodedVec{}
	txTagged := tx.TaggedBytes(tripledb.TagTx)
	ev.appendBytes(txTagged[:])
	return ev
}

// EncodeSentinelEntityAttr builds a uniqueness sentinel per (entity,
// attribute): tag(6) ‖ e[1:7] ‖ a[0:8].
func EncodeSentinelEntityAttr(e tripledb.EntityId, a tripledb.AttrId) *EncodedVec {
	ev := &EncodedVec{}
	eTagged := e.TaggedBytes(tripledb.TagSentinelEntAttr)
	ev.appendBytes(eTagged[:])
	aBytes := a.Bytes()
	ev.appendBytes(aBytes[:])
	return ev
}

// EncodeSentinelAttrVal builds a uniqueness sentinel per (attribute,
// value): tag(7) ‖ a[1:7] ‖ value.
func EncodeSentinelAttrVal(a tripledb.AttrId, val tripledb.DataValue) *EncodedVec {
	ev := &EncodedVec{}
	aTagged := a.TaggedBytes(tripledb.TagSentinelAttrVal)
	ev.appendBytes(aTagged[:])
	ev.appendValue(val)
	return ev
}

// DecodeSentinelAttrVal is the inverse of EncodeSentinelAttrVal.
func DecodeSentinelAttrVal(key []byte) (tripledb.AttrId, tripledb.DataValue, error) {
	if len(key) < vecSize8 {
		return 0, tripledb.DataValue{}, truncated()
	}
	if tripledb.StorageTag(key[0]) != tripledb.TagSentinelAttrVal {
		return 0, tripledb.DataValue{}, badTag()
	}
	a, err := tripledb.AttrIdFromBytes(key[0:vecSize8])
	if err != nil {
		return 0, tripledb.DataValue{}, err
	}
	v, _, err := tripledb.DeserializeValue(key[vecSize8:])
	if err != nil {
		return 0, tripledb.DataValue{}, valueDeserError(err)
	}
	return a, v, nil
}

// EncodeSentinelAttrByID builds an attribute-id allocation sentinel:
// tag(8) ‖ a[1:7].
func EncodeSentinelAttrByID(a tripledb.AttrId) *EncodedVec {
	ev := &EncodedVec{}
	aTagged := a.TaggedBytes(tripledb.TagSentinelAttrByID)
	ev.appendBytes(aTagged[:])
	return ev
}

// EncodeSentinelAttrByName builds an attribute-name directory key: tag(9)
// ‖ name bytes. Unlike the id-keyed families there is no numeric id to
// overlay the tag onto, so the tag is simply prepended.
func EncodeSentinelAttrByName(name string) *EncodedVec {
	ev := &EncodedVec{}
	ev.appendByte(byte(tripledb.TagSentinelAttrName))
	ev.appendBytes([]byte(name))
	return ev
}

// DecodeSentinelAttrByName is the inverse of EncodeSentinelAttrByName.
func DecodeSentinelAttrByName(key []byte) (string, error) {
	if len(key) < 1 {
		return "", truncated()
	}
	if tripledb.StorageTag(key[0]) != tripledb.TagSentinelAttrName {
		return "", badTag()
	}
	return string(key[1:]), nil
}

// largestUTFChar is the maximum-codepoint UTF-8 string, used to build the
// lexicographically largest legal key.
const largestUTFChar = string(rune(0x10FFFF))

// SmallestKey returns the lexicographically smallest legal key produced by
// any encoder in this package.
func SmallestKey() *EncodedVec {
	return EncodeAEVKey(tripledb.AttrId(0), tripledb.EntityZero, tripledb.Null, tripledb.ValidityMin)
}

// LargestKey returns the lexicographically largest legal key produced by
// any encoder in this package.
func LargestKey() *EncodedVec {
	return EncodeSentinelAttrByName(largestUTFChar)
}
