package relation

import (
	"github.com/kvgraph/kvstore"
	"github.com/kvgraph/storagekey"
	"github.com/kvgraph/tripledb"
)

// AEVScan is the base relation operator: it scans the AEV index for a
// single attribute and emits (entity, value) tuples. It is the "identity"
// case of Operator — the leaf that opens a key-range scan against the KV
// store and wraps decoded keys as TupleSets.
type AEVScan struct {
	Store     kvstore.Store
	Attr      tripledb.AttrId
	AttrName  string // for plan printing and Identity
	EntityCol string
	ValueCol  string
}

// NewAEVScan builds a base scan of attr's AEV range, binding the entity and
// value columns to entityCol/valueCol.
func NewAEVScan(store kvstore.Store, attr tripledb.AttrId, attrName, entityCol, valueCol string) *AEVScan {
	return &AEVScan{Store: store, Attr: attr, AttrName: attrName, EntityCol: entityCol, ValueCol: valueCol}
}

func (s *AEVScan) Name() string { return "AEVScan(" + s.AttrName + ")" }

func (s *AEVScan) Bindings() map[string]struct{} {
	return map[string]struct{}{s.EntityCol: {}, s.ValueCol: {}}
}

func (s *AEVScan) BindingMap() (*BindingMap, error) {
	bm := NewBindingMap()
	if err := bm.Add(s.EntityCol, 1); err != nil {
		return nil, err
	}
	if err := bm.Add(s.ValueCol, 1); err != nil {
		return nil, err
	}
	return bm, nil
}

func (s *AEVScan) Identity() *Identity {
	return &Identity{Name: s.AttrName, Columns: []string{s.EntityCol, s.ValueCol}}
}

func (s *AEVScan) Iter() (Stream, error) {
	prefix := s.Attr.TaggedBytes(tripledb.TagTripleAEV)
	start, end := kvstore.PrefixRange(prefix[:])
	it, err := s.Store.Scan(start, end)
	if err != nil {
		return nil, &StoreError{Err: err}
	}
	return &aevScanStream{it: it}, nil
}

type aevScanStream struct {
	it      kvstore.Iterator
	current TupleSet
	err     error
	done    bool
}

func (s *aevScanStream) Next() bool {
	if s.done {
		return false
	}
	if !s.it.Next() {
		if err := s.it.Err(); err != nil {
			s.err = &StoreError{Err: err}
		}
		s.done = true
		return false
	}

	key := s.it.Key()
	_, e, _, err := storagekey.DecodeAEKey(key)
	if err != nil {
		s.err = err
		s.done = true
		return false
	}
	val, err := storagekey.DecodeValueFromKey(key)
	if err != nil {
		s.err = err
		s.done = true
		return false
	}

	s.current = NewTupleSet(tripledb.NewRef(e), val)
	return true
}

func (s *aevScanStream) Tuple() TupleSet { return s.current }
func (s *aevScanStream) Err() error      { return s.err }
func (s *aevScanStream) Close() error {
	if err := s.it.Close(); err != nil {
		return &StoreError{Err: err}
	}
	return nil
}
