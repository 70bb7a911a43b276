// Package storagekey assembles and parses the binary keys persisted for
// every triple, attribute-metadata record, sentinel, and transaction marker.
// The byte layouts here ARE the persisted format: any change is a
// storage-format break.
package storagekey

import "github.com/kvgraph/tripledb"

// inlineCap is the largest inline buffer any encoder needs (an AEV/AVE/
// AVE-ref/sentinel-attr-value key: 1 tag + 7 id + 8 id + 8 validity + value
// bytes for typical scalar values). Smaller record families (Tx,
// SentinelAttrByID at 8 bytes; AttrById, SentinelEntityAttr at 16 bytes)
// simply use a prefix of the same backing array, so every EncodedVec avoids
// a heap allocation unless the value payload itself is unusually large —
// the small-buffer optimization described below, generalized from four
// fixed tiers (8/16/32/60) to one buffer sized for the largest tier.
const inlineCap = 60

// EncodedVec is a short-lived, small-buffer-optimized byte buffer holding a
// single encoded key. It grows onto the heap only when the key (almost
// always because of a variable-length value or name) exceeds the inline
// capacity.
type EncodedVec struct {
	small [inlineCap]byte
	n     int
	big   []byte // non-nil once the key has grown past len(small)
}

func (e *EncodedVec) appendBytes(b []byte) {
	if e.big != nil {
		e.big = append(e.big, b...)
		return
	}
	if e.n+len(b) <= len(e.small) {
		copy(e.small[e.n:], b)
		e.n += len(b)
		return
	}
	// Overflow: move what we have onto the heap and keep appending there.
	e.big = make([]byte, e.n, e.n+len(b))
	copy(e.big, e.small[:e.n])
	e.big = append(e.big, b...)
}

func (e *EncodedVec) appendByte(b byte) {
	e.appendBytes([]byte{b})
}

// Bytes returns the encoded key. The returned slice is only valid until the
// EncodedVec is next mutated (e.g. by AmendValidity).
func (e *EncodedVec) Bytes() []byte {
	if e.big != nil {
		return e.big
	}
	return e.small[:e.n]
}

// Len returns the number of encoded bytes.
func (e *EncodedVec) Len() int {
	if e.big != nil {
		return len(e.big)
	}
	return e.n
}

// Clone returns an independent copy of the encoded key bytes; callers that
// need to retain a key past the lifetime of its EncodedVec (e.g. to store
// it as a map key or push it onto a worklist) should Clone it first.
func (e *EncodedVec) Clone() []byte {
	src := e.Bytes()
	out := make([]byte, len(src))
	copy(out, src)
	return out
}

// fromBytes wraps an already-assembled key for in-place mutation by
// AmendValidity without re-deriving it from (a, e, val, vld) — used when a
// key decoded off a scan needs its validity rewritten for a follow-up seek.
func fromBytes(b []byte) *EncodedVec {
	e := &EncodedVec{}
	e.appendBytes(b)
	return e
}

// Tag returns the StorageTag byte[0] of the encoded key, or an error if the
// key is empty.
func (e *EncodedVec) Tag() (tripledb.StorageTag, error) {
	buf := e.Bytes()
	if len(buf) < 1 {
		return 0, ErrTruncatedKey
	}
	return tripledb.StorageTag(buf[0]), nil
}
