package redmine

import (
	"strings"
	"sync"
)

type registryKey struct {
	baseURL string
	apiKey  string
}

// Registry hands out one Client per (base URL, API key) pair so repeated
// calls with identical credentials share a cache instead of spawning
// redundant trackers. It is an explicit object owned by the application,
// not package-level state.
type Registry struct {
	mu      sync.Mutex
	opts    Options
	clients map[registryKey]*Client
}

func NewRegistry(opts Options) *Registry {
	return &Registry{
		opts:    opts,
		clients: make(map[registryKey]*Client),
	}
}

// Client returns the shared client for the credentials, creating it on
// first use.
func (r *Registry) Client(baseURL, apiKey string) *Client {
	key := registryKey{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}

	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.clients[key]; ok {
		return c
	}
	c := NewClient(key.baseURL, apiKey, r.opts)
	r.clients[key] = c
	return c
}

// Len reports how many distinct clients exist.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
