package kvstore

import (
	"bytes"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore is a Store backed by BadgerDB, tuned for read-heavy scan
// workloads: larger memtables and caches, conflict detection off
// (single-writer use), small values kept in the LSM tree.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (creating if necessary) a BadgerDB at path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	opts.MemTableSize = 128 << 20
	opts.BlockCacheSize = 256 << 20
	opts.IndexCacheSize = 100 << 20
	opts.DetectConflicts = false
	opts.NumCompactors = 4
	opts.ValueThreshold = 1 << 10

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("kvstore: failed to open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Put writes a single key/value pair outside of any explicit transaction.
func (s *BadgerStore) Put(key, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Delete removes key, ignoring the case where it is already absent.
func (s *BadgerStore) Delete(key []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}

func (s *BadgerStore) Get(key []byte) ([]byte, bool, error) {
	var val []byte
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return val, found, nil
}

func (s *BadgerStore) Scan(start, end []byte) (Iterator, error) {
	txn := s.db.NewTransaction(false)
	opts := badger.DefaultIteratorOptions
	opts.PrefetchSize = 1000
	opts.PrefetchValues = true
	it := txn.NewIterator(opts)
	return &badgerIterator{txn: txn, it: it, start: start, end: end}, nil
}

func (s *BadgerStore) ScanReverse(start, end []byte) (Iterator, error) {
	txn := s.db.NewTransaction(false)
	opts := badger.DefaultIteratorOptions
	opts.PrefetchSize = 1000
	opts.PrefetchValues = true
	opts.Reverse = true
	it := txn.NewIterator(opts)
	return &badgerIterator{txn: txn, it: it, start: start, end: end, reverse: true}, nil
}

func (s *BadgerStore) Snapshot() (Snapshot, error) {
	return &badgerSnapshot{txn: s.db.NewTransaction(false)}, nil
}

func (s *BadgerStore) Close() error { return s.db.Close() }

// badgerSnapshot pins a single read-only transaction, which in BadgerDB's
// MVCC model observes a consistent point-in-time view for its lifetime.
type badgerSnapshot struct {
	txn *badger.Txn
}

func (s *badgerSnapshot) Get(key []byte) ([]byte, bool, error) {
	item, err := s.txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (s *badgerSnapshot) Scan(start, end []byte) (Iterator, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchSize = 1000
	opts.PrefetchValues = true
	it := s.txn.NewIterator(opts)
	return &badgerIterator{it: it, start: start, end: end}, nil
}

func (s *badgerSnapshot) ScanReverse(start, end []byte) (Iterator, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchSize = 1000
	opts.PrefetchValues = true
	opts.Reverse = true
	it := s.txn.NewIterator(opts)
	return &badgerIterator{it: it, start: start, end: end, reverse: true}, nil
}

func (s *badgerSnapshot) Close() error {
	s.txn.Discard()
	return nil
}

// badgerIterator implements Iterator over a badger.Iterator, owning (and
// discarding) its own read transaction unless it was opened from a shared
// Snapshot, in which case txn is nil and Close leaves the snapshot's
// transaction alive.
type badgerIterator struct {
	txn     *badger.Txn
	it      *badger.Iterator
	start   []byte
	end     []byte
	reverse bool
	valid   bool
	curKey  []byte
	curVal  []byte
	err     error
}

func (i *badgerIterator) Next() bool {
	if i.err != nil {
		return false
	}

	if !i.valid {
		i.valid = true
		if i.reverse {
			if i.end != nil {
				i.it.Seek(i.end)
				if i.it.Valid() && bytes.Equal(i.it.Item().Key(), i.end) {
					i.it.Next()
				}
			} else {
				i.it.Rewind()
			}
		} else {
			i.it.Seek(i.start)
		}
	} else {
		i.it.Next()
	}

	if !i.it.Valid() {
		return false
	}

	key := i.it.Item().KeyCopy(nil)
	if i.reverse {
		if i.start != nil && bytes.Compare(key, i.start) < 0 {
			return false
		}
	} else {
		if i.end != nil && bytes.Compare(key, i.end) >= 0 {
			return false
		}
	}

	val, err := i.it.Item().ValueCopy(nil)
	if err != nil {
		i.err = err
		return false
	}
	i.curKey = key
	i.curVal = val
	return true
}

func (i *badgerIterator) Key() []byte   { return i.curKey }
func (i *badgerIterator) Value() []byte { return i.curVal }
func (i *badgerIterator) Err() error    { return i.err }

func (i *badgerIterator) Close() error {
	i.it.Close()
	if i.txn != nil {
		i.txn.Discard()
	}
	return nil
}
