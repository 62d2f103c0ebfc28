package suggest

// HotCache keeps the unranked results of recently resolved codes. Entries
// are tied to a dictionary version and dropped when the table changes.
// Ranking is never cached since it depends on the learned model.
type HotCache struct {
	entries     map[string][]Candidate
	accessTime  map[string]int64
	accessCount int64
	hits        int
	misses      int
	version     int
	maxEntries  int
}

// NewHotCache creates a cache holding at most maxEntries codes.
func NewHotCache(maxEntries int) *HotCache {
	return &HotCache{
		entries:    make(map[string][]Candidate, maxEntries),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns a copy of the cached result for code.
func (hc *HotCache) Get(code string, version int) ([]Candidate, bool) {
	if version != hc.version {
		hc.Reset(version)
	}
	cands, ok := hc.entries[code]
	if !ok {
		hc.misses++
		return nil, false
	}
	hc.hits++
	hc.markAccessed(code)
	return append([]Candidate(nil), cands...), true
}

// Put stores a copy of cands for code.
func (hc *HotCache) Put(code string, version int, cands []Candidate) {
	if version != hc.version {
		hc.Reset(version)
	}
	if _, ok := hc.entries[code]; !ok && len(hc.entries) >= hc.maxEntries {
		hc.evictLRU()
	}
	hc.entries[code] = append([]Candidate(nil), cands...)
	hc.markAccessed(code)
}

// Reset drops every entry and adopts version.
func (hc *HotCache) Reset(version int) {
	clear(hc.entries)
	clear(hc.accessTime)
	hc.version = version
}

// Stats returns cache counters.
func (hc *HotCache) Stats() map[string]int {
	return map[string]int{
		"hotCacheCodes":  len(hc.entries),
		"maxHotCodes":    hc.maxEntries,
		"hotCacheHits":   hc.hits,
		"hotCacheMisses": hc.misses,
	}
}

func (hc *HotCache) markAccessed(code string) {
	hc.accessCount++
	hc.accessTime[code] = hc.accessCount
}

func (hc *HotCache) evictLRU() {
	var oldestCode string
	var oldestTime int64 = 9223372036854775807

	for code, accessTime := range hc.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldestCode = code
		}
	}

	if oldestCode != "" {
		delete(hc.entries, oldestCode)
		delete(hc.accessTime, oldestCode)
	}
}
