package tripledb

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// nameShards is the number of buckets the name intern table is split
// across, reducing lock contention when many goroutines resolve attribute
// names concurrently during a scan.
const nameShards = 16

// NameIntern caches attribute/keyword name strings keyed by their xxhash,
// avoiding repeated allocation when the same small set of attribute names
// is resolved over and over while decoding scan results.
type NameIntern struct {
	shards [nameShards]nameShard
}

type nameShard struct {
	mu    sync.RWMutex
	names map[uint64]string
}

// NewNameIntern creates an empty interning table.
func NewNameIntern() *NameIntern {
	ni := &NameIntern{}
	for i := range ni.shards {
		ni.shards[i].names = make(map[uint64]string)
	}
	return ni
}

func (ni *NameIntern) shardFor(h uint64) *nameShard {
	return &ni.shards[h%nameShards]
}

// Intern returns a canonical copy of s: repeated calls with an
// equal string return the identical underlying string value.
func (ni *NameIntern) Intern(s string) string {
	h := xxhash.Sum64String(s)
	shard := ni.shardFor(h)

	shard.mu.RLock()
	if existing, ok := shard.names[h]; ok && existing == s {
		shard.mu.RUnlock()
		return existing
	}
	shard.mu.RUnlock()

	shard.mu.Lock()
	defer shard.mu.Unlock()
	if existing, ok := shard.names[h]; ok && existing == s {
		return existing
	}
	shard.names[h] = s
	return s
}

// globalNameIntern is a process-wide intern table, mirroring the package-
// level keyword intern used for attribute names resolved out of
// storage.
var globalNameIntern = NewNameIntern()

// InternName interns s in the process-wide table.
func InternName(s string) string {
	return globalNameIntern.Intern(s)
}
