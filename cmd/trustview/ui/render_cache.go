package ui

import (
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/golang/groupcache/lru"
)

// RenderCache memoizes expensive renders (glamour output of a trust report)
// keyed by an FNV-1a hash of their inputs. The least recently used entry is
// evicted once maxSize is reached.
type RenderCache struct {
	mu     sync.Mutex
	lru    *lru.Cache
	hits   int
	misses int
}

// NewRenderCache creates a new render cache with the specified max size.
func NewRenderCache(maxSize int) *RenderCache {
	if maxSize <= 0 {
		maxSize = 32
	}
	return &RenderCache{lru: lru.New(maxSize)}
}

// ComputeKey hashes strings, ints, int64s and bools.
func ComputeKey(inputs ...interface{}) uint64 {
	h := fnv.New64a()
	for _, input := range inputs {
		switch v := input.(type) {
		case string:
			h.Write([]byte(v))
		case int:
			h.Write([]byte(strconv.Itoa(v)))
		case int64:
			h.Write([]byte(strconv.FormatInt(v, 10)))
		case bool:
			if v {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
		// Separator keeps ("ab","c") and ("a","bc") apart.
		h.Write([]byte{0xff})
	}
	return h.Sum64()
}

// Get retrieves cached content if available.
func (rc *RenderCache) Get(key uint64) (string, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	v, ok := rc.lru.Get(key)
	if !ok {
		rc.misses++
		return "", false
	}
	rc.hits++
	return v.(string), true
}

// Set stores rendered content in the cache.
func (rc *RenderCache) Set(key uint64, content string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.lru.Add(key, content)
}

// GetOrCompute retrieves from cache or computes if missing.
func (rc *RenderCache) GetOrCompute(key uint64, compute func() string) string {
	if content, ok := rc.Get(key); ok {
		return content
	}
	content := compute()
	rc.Set(key, content)
	return content
}

// Len returns the number of cached entries.
func (rc *RenderCache) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.lru.Len()
}

// Stats returns hit and miss counts.
func (rc *RenderCache) Stats() (hits, misses int) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.hits, rc.misses
}

// Clear empties the cache.
func (rc *RenderCache) Clear() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.lru.Clear()
}
