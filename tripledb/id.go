// Package tripledb provides the fixed-width identifier types, the value
// variant, and value comparison that the storagekey and relation packages
// build on.
package tripledb

import (
	"encoding/binary"
	"fmt"
)

// StorageTag discriminates the nine persisted record families. It is
// overlaid onto the high byte of an 8-byte identifier before the bytes are
// written to the KV store.
type StorageTag byte

const (
	TagTripleAEV        StorageTag = 1 // AEV ordering
	TagTripleAVE        StorageTag = 2 // AVE ordering
	TagTripleAVERef     StorageTag = 3 // AVE where V is an EntityId (ref-typed attribute)
	TagAttrByID         StorageTag = 4 // attribute metadata keyed by attribute id
	TagTx               StorageTag = 5 // transaction log record
	TagSentinelEntAttr  StorageTag = 6 // uniqueness/existence sentinel per (entity, attribute)
	TagSentinelAttrVal  StorageTag = 7 // uniqueness sentinel per (attribute, value)
	TagSentinelAttrByID StorageTag = 8 // attribute-id allocation sentinel
	TagSentinelAttrName StorageTag = 9 // attribute-name directory
)

// Valid reports whether t is one of the nine defined tags.
func (t StorageTag) Valid() bool {
	return t >= TagTripleAEV && t <= TagSentinelAttrName
}

func (t StorageTag) String() string {
	switch t {
	case TagTripleAEV:
		return "AEV"
	case TagTripleAVE:
		return "AVE"
	case TagTripleAVERef:
		return "AVE-ref"
	case TagAttrByID:
		return "AttrByID"
	case TagTx:
		return "Tx"
	case TagSentinelEntAttr:
		return "SentinelEntityAttr"
	case TagSentinelAttrVal:
		return "SentinelAttrValue"
	case TagSentinelAttrByID:
		return "SentinelAttrByID"
	case TagSentinelAttrName:
		return "SentinelAttrByName"
	default:
		return fmt.Sprintf("StorageTag(%d)", byte(t))
	}
}

// idMask clears the top byte of a uint64 so tag overlay can't leak into the
// numeric value: all ids are required to fit in 56 bits.
const idMask = (uint64(1) << 56) - 1

// ErrIDOverflow is returned when a numeric id doesn't fit in 56 bits.
var ErrIDOverflow = fmt.Errorf("tripledb: id exceeds 56-bit usable range")

// ErrInvalidID is returned by FromBytes when fewer than 8 bytes are given.
var ErrInvalidID = fmt.Errorf("tripledb: invalid id: need 8 bytes")

// AttrId identifies an attribute. AttrId(0) is the reserved lowest value.
type AttrId uint64

// EntityId identifies an entity. EntityZero is the reserved sentinel.
type EntityId uint64

// EntityZero is the reserved lowest EntityId.
const EntityZero EntityId = 0

// TxId identifies a transaction.
type TxId uint64

// NewAttrId validates and constructs an AttrId.
func NewAttrId(n uint64) (AttrId, error) {
	if n > idMask {
		return 0, ErrIDOverflow
	}
	return AttrId(n), nil
}

// NewEntityId validates and constructs an EntityId.
func NewEntityId(n uint64) (EntityId, error) {
	if n > idMask {
		return 0, ErrIDOverflow
	}
	return EntityId(n), nil
}

// NewTxId validates and constructs a TxId.
func NewTxId(n uint64) (TxId, error) {
	if n > idMask {
		return 0, ErrIDOverflow
	}
	return TxId(n), nil
}

// Bytes returns the big-endian numeric bytes of a. The caller overlays a
// StorageTag onto byte[0] before persisting; byte[0] here is always 0.
func (a AttrId) Bytes() [8]byte {
	return idBytes(uint64(a))
}

// TaggedBytes returns Bytes() with byte[0] overwritten by tag.
func (a AttrId) TaggedBytes(tag StorageTag) [8]byte {
	b := a.Bytes()
	b[0] = byte(tag)
	return b
}

// AttrIdFromBytes recovers the numeric id, masking off the tag byte.
func AttrIdFromBytes(b []byte) (AttrId, error) {
	n, err := idFromBytes(b)
	if err != nil {
		return 0, err
	}
	return AttrId(n), nil
}

// Bytes returns the big-endian numeric bytes of e.
func (e EntityId) Bytes() [8]byte {
	return idBytes(uint64(e))
}

// TaggedBytes returns Bytes() with byte[0] overwritten by tag.
func (e EntityId) TaggedBytes(tag StorageTag) [8]byte {
	b := e.Bytes()
	b[0] = byte(tag)
	return b
}

// EntityIdFromBytes recovers the numeric id, masking off the tag byte.
func EntityIdFromBytes(b []byte) (EntityId, error) {
	n, err := idFromBytes(b)
	if err != nil {
		return 0, err
	}
	return EntityId(n), nil
}

// Bytes returns the big-endian numeric bytes of tx.
func (tx TxId) Bytes() [8]byte {
	return idBytes(uint64(tx))
}

// TaggedBytes returns Bytes() with byte[0] overwritten by tag.
func (tx TxId) TaggedBytes(tag StorageTag) [8]byte {
	b := tx.Bytes()
	b[0] = byte(tag)
	return b
}

// TxIdFromBytes recovers the numeric id, masking off the tag byte.
func TxIdFromBytes(b []byte) (TxId, error) {
	n, err := idFromBytes(b)
	if err != nil {
		return 0, err
	}
	return TxId(n), nil
}

func idBytes(n uint64) [8]byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], n)
	return b
}

func idFromBytes(b []byte) (uint64, error) {
	if len(b) < 8 {
		return 0, ErrInvalidID
	}
	n := binary.BigEndian.Uint64(b[:8])
	return n & idMask, nil
}

// Validity is a signed 64-bit logical timestamp tagging when a triple fact
// holds. ValidityMin is infinite past, ValidityMax is infinite future.
// Validity is encoded as its bitwise complement so that, within a shared
// (attribute, entity/value) prefix, newer validities sort before older ones
// among validities of the same sign (see Bytes).
type Validity int64

const (
	ValidityMin Validity = -1 << 63
	ValidityMax Validity = (1 << 63) - 1
)

// Bytes returns the big-endian bytes of ^v. Among non-negative validities,
// and among negative ones, lexicographic order over these bytes is reverse
// chronological order; every negative validity sorts before every
// non-negative one, so ValidityMin sorts before ValidityMax.
func (v Validity) Bytes() [8]byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], ^uint64(v))
	return b
}

// ValidityFromBytes decodes bytes produced by Bytes.
func ValidityFromBytes(b []byte) (Validity, error) {
	if len(b) < 8 {
		return 0, ErrInvalidID
	}
	complement := binary.BigEndian.Uint64(b[:8])
	return Validity(^complement), nil
}
