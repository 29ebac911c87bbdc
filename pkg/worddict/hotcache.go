package worddict

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// HotCache is a recency-ranked cache of recently-queried prefixes, backed
// by a secondary patricia trie. It sits alongside a StringDict's core
// node-array trie as a disposable, rebuildable index over the hottest
// subset of keys: the core trie remains the source of truth, and HotCache
// can always be repopulated from it.
type HotCache struct {
	hits        map[string]int
	hotTrie     *patricia.Trie
	accessTime  map[string]int64
	accessCount int64
	maxEntries  int
	mu          sync.RWMutex
}

// NewHotCache creates a HotCache holding at most maxEntries prefixes.
func NewHotCache(maxEntries int) *HotCache {
	return &HotCache{
		hits:       make(map[string]int, maxEntries),
		hotTrie:    patricia.NewTrie(),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// Record notes that prefix was queried and caches its completion count. Evicts
// the least-recently-used entry if the cache is full.
func (hc *HotCache) Record(prefix string, completions []Completion) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	if _, exists := hc.hits[prefix]; !exists && len(hc.hits) >= hc.maxEntries {
		hc.evictLRU()
	}

	hc.hits[prefix]++
	hc.hotTrie.Set(patricia.Prefix(prefix), len(completions))
	hc.accessTime[prefix] = hc.nextAccessTime()
}

// Lookup returns the cached hit count for prefix, or (0, false) if prefix
// is not cached. A successful lookup counts as an access for LRU purposes.
func (hc *HotCache) Lookup(prefix string) (int, bool) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	item := hc.hotTrie.Get(patricia.Prefix(prefix))
	if item == nil {
		return 0, false
	}
	hc.accessTime[prefix] = hc.nextAccessTime()
	return hc.hits[prefix], true
}

// VisitHot calls fn for every prefix under root currently cached, in the
// patricia trie's own traversal order.
func (hc *HotCache) VisitHot(root string, fn func(prefix string, completionCount int)) {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	err := hc.hotTrie.VisitSubtree(patricia.Prefix(root), func(p patricia.Prefix, item patricia.Item) error {
		fn(string(p), item.(int))
		return nil
	})
	if err != nil {
		log.Errorf("worddict: error visiting hot cache subtree: %v", err)
	}
}

// Stats reports cache occupancy, for diagnostics.
func (hc *HotCache) Stats() map[string]int {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return map[string]int{
		"entries":    len(hc.hits),
		"maxEntries": hc.maxEntries,
		"accesses":   int(hc.accessCount),
	}
}

func (hc *HotCache) nextAccessTime() int64 {
	hc.accessCount++
	return hc.accessCount
}

// evictLRU removes the least-recently-accessed entry. Caller must hold mu.
func (hc *HotCache) evictLRU() {
	var oldest string
	var oldestTime int64 = 1<<63 - 1
	found := false
	for prefix, t := range hc.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldest = prefix
			found = true
		}
	}
	if !found {
		return
	}
	delete(hc.hits, oldest)
	delete(hc.accessTime, oldest)
	hc.hotTrie.Delete(patricia.Prefix(oldest))
	log.Debugf("worddict: evicted %q from hot cache", oldest)
}
