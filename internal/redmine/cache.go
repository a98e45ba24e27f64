package redmine

import (
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

// requestCache deduplicates identical in-flight requests and keeps completed
// responses for a fixed TTL. A second caller asking for a key that is still
// being fetched waits on the same entry instead of issuing a duplicate call.
// Failed fetches are evicted immediately so a retry is not poisoned.
type requestCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	done      chan struct{}
	data      []byte
	err       error
	completed bool
	expiresAt time.Time
}

func newRequestCache(ttl time.Duration) *requestCache {
	return &requestCache{
		ttl:     ttl,
		entries: make(map[string]*cacheEntry),
	}
}

// cacheKey builds the dedup key: base URL, endpoint, and the query
// parameters as sorted "k=v" pairs so parameter order never splits the key.
func cacheKey(baseURL, endpoint string, params url.Values) string {
	pairs := make([]string, 0, len(params))
	for k, vs := range params {
		for _, v := range vs {
			pairs = append(pairs, k+"="+v)
		}
	}
	sort.Strings(pairs)
	return baseURL + ":" + endpoint + ":" + strings.Join(pairs, "&")
}

// do returns the cached or in-flight result for key, or runs fetch and
// shares its outcome with any waiters that arrive meanwhile.
func (rc *requestCache) do(key string, fetch func() ([]byte, error)) ([]byte, error) {
	rc.mu.Lock()
	if e, ok := rc.entries[key]; ok {
		if !e.completed || time.Now().Before(e.expiresAt) {
			rc.mu.Unlock()
			<-e.done
			return e.data, e.err
		}
		delete(rc.entries, key)
	}

	e := &cacheEntry{done: make(chan struct{})}
	rc.entries[key] = e
	rc.mu.Unlock()

	data, err := fetch()

	rc.mu.Lock()
	e.data = data
	e.err = err
	e.completed = true
	if err != nil {
		if rc.entries[key] == e {
			delete(rc.entries, key)
		}
	} else {
		e.expiresAt = time.Now().Add(rc.ttl)
	}
	rc.mu.Unlock()
	close(e.done)

	return data, err
}

// clear empties the cache unconditionally, in-flight entries included.
// Waiters on removed entries still receive their pending result.
func (rc *requestCache) clear() {
	rc.mu.Lock()
	rc.entries = make(map[string]*cacheEntry)
	rc.mu.Unlock()
}

// len reports the number of live entries. Used by tests.
func (rc *requestCache) len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.entries)
}
