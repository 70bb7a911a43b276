package kvstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreGetPutDelete(t *testing.T) {
	s := NewMemStore()
	require.NoError(t, s.Put([]byte("a"), []byte("1")))

	v, ok, err := s.Get([]byte("a"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("1"), v)

	require.NoError(t, s.Delete([]byte("a")))
	_, ok, err = s.Get([]byte("a"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemStoreScanAscending(t *testing.T) {
	s := NewMemStore()
	require.NoError(t, s.Put([]byte("b"), []byte("2")))
	require.NoError(t, s.Put([]byte("a"), []byte("1")))
	require.NoError(t, s.Put([]byte("c"), []byte("3")))

	it, err := s.Scan([]byte("a"), []byte("c"))
	require.NoError(t, err)
	defer it.Close()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestMemStoreScanReverse(t *testing.T) {
	s := NewMemStore()
	require.NoError(t, s.Put([]byte("a"), []byte("1")))
	require.NoError(t, s.Put([]byte("b"), []byte("2")))
	require.NoError(t, s.Put([]byte("c"), []byte("3")))

	it, err := s.ScanReverse([]byte("a"), []byte("d"))
	require.NoError(t, err)
	defer it.Close()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []string{"c", "b", "a"}, keys)
}

func TestPrefixRange(t *testing.T) {
	start, end := PrefixRange([]byte{0x01, 0x02})
	assert.Equal(t, []byte{0x01, 0x02}, start)
	assert.Equal(t, []byte{0x01, 0x03}, end)

	_, end = PrefixRange([]byte{0xff, 0xff})
	assert.Nil(t, end)
}

func TestMemStoreSnapshotIsolated(t *testing.T) {
	s := NewMemStore()
	require.NoError(t, s.Put([]byte("a"), []byte("1")))

	snap, err := s.Snapshot()
	require.NoError(t, err)
	defer snap.Close()

	require.NoError(t, s.Put([]byte("b"), []byte("2")))

	it, err := snap.Scan(nil, nil)
	require.NoError(t, err)
	defer it.Close()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	assert.Equal(t, []string{"a"}, keys)
}
