package storagekey

import "github.com/kvgraph/tripledb"

// FromRawKey wraps an already-encoded key (typically one read back off a
// scan) so AmendValidity can rewrite it in place without re-deriving it from
// its (attr, entity, value) components.
func FromRawKey(b []byte) *EncodedVec {
	return fromBytes(b)
}

// AmendValidity overwrites the 8-byte validity field of an AEV or AVE key
// (bytes [16:24]) in place with vld, leaving every other field — tag,
// attribute, entity, value — unchanged. It is the fast path for moving a
// fact's validity without re-encoding its value.
func AmendValidity(e *EncodedVec, vld tripledb.Validity) error {
	buf := e.Bytes()
	if len(buf) < vecSize24 {
		return truncated()
	}
	tag := tripledb.StorageTag(buf[0])
	if tag != tripledb.TagTripleAEV && tag != tripledb.TagTripleAVE {
		return badTag()
	}
	vldBytes := vld.Bytes()
	copy(buf[vecSize16:vecSize24], vldBytes[:])
	return nil
}

// AmendValidityToMin rewrites the key's validity to ValidityMin (infinite
// past).
func AmendValidityToMin(e *EncodedVec) error {
	return AmendValidity(e, tripledb.ValidityMin)
}

// AmendValidityToMax rewrites the key's validity to ValidityMax (infinite
// future, i.e. "currently valid").
func AmendValidityToMax(e *EncodedVec) error {
	return AmendValidity(e, tripledb.ValidityMax)
}
