package watcher

import (
	"io"
	"os"
	"sync"
	"unique"

	"github.com/cespare/xxhash/v2"
)

// fileSum is the content fingerprint of a single watched path.
// A missing path has present == false and a zero sum.
type fileSum struct {
	sum     uint64
	present bool
}

// HashCache remembers a fast content fingerprint per watched path so that
// file system events which do not change content (touch, atomic rewrite with
// identical bytes, editor metadata churn) can be discarded before the full
// invalidation pipeline runs. It uses xxhash rather than a cryptographic
// digest: the cache only filters noise, the engine re-verifies with real
// digests before any decision is made.
type HashCache struct {
	mu   sync.Mutex
	sums map[unique.Handle[string]]fileSum
}

// NewHashCache creates an empty hash cache.
func NewHashCache() *HashCache {
	return &HashCache{
		sums: make(map[unique.Handle[string]]fileSum),
	}
}

// Prime records the current fingerprint of each path. Unreadable paths are
// recorded as absent so a later successful read registers as a change.
func (h *HashCache) Prime(paths []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, path := range paths {
		h.sums[unique.Make(path)] = sumFile(path)
	}
}

// Changed re-fingerprints the given paths and returns the subset whose
// content actually differs from the primed state. The cache is updated to
// the new fingerprints, so consecutive calls report each change once.
func (h *HashCache) Changed(paths []string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var changed []string
	for _, path := range paths {
		handle := unique.Make(path)
		current := sumFile(path)
		if previous, ok := h.sums[handle]; ok && previous == current {
			continue
		}
		h.sums[handle] = current
		changed = append(changed, path)
	}
	return changed
}

func sumFile(path string) fileSum {
	f, err := os.Open(path)
	if err != nil {
		return fileSum{}
	}
	defer f.Close()

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return fileSum{}
	}
	return fileSum{sum: digest.Sum64(), present: true}
}
