package tripledb

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ValueKind tags the variant carried by a DataValue.
type ValueKind byte

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindRef
)

// DataValue is the tagged variant stored as the V position of a triple.
// The value codec is treated as a self-contained collaborator; this is the
// concrete implementation the storagekey package is built and tested
// against.
type DataValue struct {
	kind ValueKind
	b    bool
	i    int64
	f    float64
	s    string
	by   []byte
	ref  EntityId
}

// Null is the absence-of-value sentinel, also used as the V of SmallestKey.
var Null = DataValue{kind: KindNull}

// NewBool wraps a bool.
func NewBool(b bool) DataValue { return DataValue{kind: KindBool, b: b} }

// NewInt wraps a signed 64-bit integer.
func NewInt(i int64) DataValue { return DataValue{kind: KindInt, i: i} }

// NewFloat wraps a float64.
func NewFloat(f float64) DataValue { return DataValue{kind: KindFloat, f: f} }

// NewString wraps a UTF-8 string.
func NewString(s string) DataValue { return DataValue{kind: KindString, s: s} }

// NewBytes wraps an opaque byte slice.
func NewBytes(b []byte) DataValue { return DataValue{kind: KindBytes, by: b} }

// NewRef wraps a reference to another entity.
func NewRef(id EntityId) DataValue { return DataValue{kind: KindRef, ref: id} }

// Kind returns the variant tag.
func (v DataValue) Kind() ValueKind { return v.kind }

// Bool returns the wrapped bool; ok is false if v is not a KindBool.
func (v DataValue) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Int returns the wrapped int64; ok is false if v is not a KindInt.
func (v DataValue) Int() (int64, bool) { return v.i, v.kind == KindInt }

// Float returns the wrapped float64; ok is false if v is not a KindFloat.
func (v DataValue) Float() (float64, bool) { return v.f, v.kind == KindFloat }

// String returns the wrapped string; ok is false if v is not a KindString.
func (v DataValue) String() (string, bool) { return v.s, v.kind == KindString }

// Bytes returns the wrapped byte slice; ok is false if v is not a KindBytes.
func (v DataValue) Bytes() ([]byte, bool) { return v.by, v.kind == KindBytes }

// Ref returns the wrapped EntityId; ok is false if v is not a KindRef.
func (v DataValue) Ref() (EntityId, bool) { return v.ref, v.kind == KindRef }

func (v DataValue) GoString() string {
	switch v.kind {
	case KindNull:
		return "Null"
	case KindBool:
		return fmt.Sprintf("Bool(%t)", v.b)
	case KindInt:
		return fmt.Sprintf("Int(%d)", v.i)
	case KindFloat:
		return fmt.Sprintf("Float(%v)", v.f)
	case KindString:
		return fmt.Sprintf("String(%q)", v.s)
	case KindBytes:
		return fmt.Sprintf("Bytes(% x)", v.by)
	case KindRef:
		return fmt.Sprintf("Ref(%d)", v.ref)
	default:
		return "DataValue(?)"
	}
}

// SerializeValue appends the self-delimiting encoding of v to out and
// returns the extended slice. Encode never fails: a value constructed
// through the New* helpers above is always well-formed.
func SerializeValue(v DataValue, out []byte) []byte {
	out = append(out, byte(v.kind))
	switch v.kind {
	case KindNull:
		// no payload
	case KindBool:
		if v.b {
			out = append(out, 1)
		} else {
			out = append(out, 0)
		}
	case KindInt:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], uint64(v.i))
		out = append(out, b[:]...)
	case KindFloat:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], math.Float64bits(v.f))
		out = append(out, b[:]...)
	case KindString:
		out = appendLengthPrefixed(out, []byte(v.s))
	case KindBytes:
		out = appendLengthPrefixed(out, v.by)
	case KindRef:
		b := v.ref.Bytes()
		out = append(out, b[:]...)
	default:
		panic(fmt.Sprintf("tripledb: cannot serialize value kind %d", v.kind))
	}
	return out
}

func appendLengthPrefixed(out, payload []byte) []byte {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	out = append(out, lenBuf[:]...)
	out = append(out, payload...)
	return out
}

// DeserializeValue reads one self-delimiting value from the front of in and
// returns it along with the number of bytes consumed.
func DeserializeValue(in []byte) (DataValue, int, error) {
	if len(in) < 1 {
		return DataValue{}, 0, fmt.Errorf("%w: empty value", ErrValueTruncated)
	}
	kind := ValueKind(in[0])
	rest := in[1:]
	switch kind {
	case KindNull:
		return Null, 1, nil
	case KindBool:
		if len(rest) < 1 {
			return DataValue{}, 0, fmt.Errorf("%w: bool", ErrValueTruncated)
		}
		return NewBool(rest[0] != 0), 2, nil
	case KindInt:
		if len(rest) < 8 {
			return DataValue{}, 0, fmt.Errorf("%w: int", ErrValueTruncated)
		}
		return NewInt(int64(binary.BigEndian.Uint64(rest[:8]))), 9, nil
	case KindFloat:
		if len(rest) < 8 {
			return DataValue{}, 0, fmt.Errorf("%w: float", ErrValueTruncated)
		}
		return NewFloat(math.Float64frombits(binary.BigEndian.Uint64(rest[:8]))), 9, nil
	case KindString:
		payload, n, err := readLengthPrefixed(rest)
		if err != nil {
			return DataValue{}, 0, err
		}
		return NewString(string(payload)), 1 + n, nil
	case KindBytes:
		payload, n, err := readLengthPrefixed(rest)
		if err != nil {
			return DataValue{}, 0, err
		}
		return NewBytes(payload), 1 + n, nil
	case KindRef:
		if len(rest) < 8 {
			return DataValue{}, 0, fmt.Errorf("%w: ref", ErrValueTruncated)
		}
		id, err := EntityIdFromBytes(rest[:8])
		if err != nil {
			return DataValue{}, 0, err
		}
		return NewRef(id), 9, nil
	default:
		return DataValue{}, 0, fmt.Errorf("%w: unknown value kind %d", ErrValueBadKind, kind)
	}
}

func readLengthPrefixed(in []byte) (payload []byte, consumed int, err error) {
	if len(in) < 4 {
		return nil, 0, fmt.Errorf("%w: length prefix", ErrValueTruncated)
	}
	n := binary.BigEndian.Uint32(in[:4])
	if uint32(len(in)-4) < n {
		return nil, 0, fmt.Errorf("%w: payload", ErrValueTruncated)
	}
	return in[4 : 4+n], 4 + int(n), nil
}
