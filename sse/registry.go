package sse

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

const shardCount = 32

type registryShard struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]Client
}

// Registry is the set of connected clients keyed by ID. It is split into
// shards with their own locks so connection churn and broadcast snapshots
// never contend on a single mutex. No method performs I/O.
type Registry struct {
	shards [shardCount]*registryShard
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	for i := range r.shards {
		r.shards[i] = &registryShard{clients: make(map[uuid.UUID]Client)}
	}
	return r
}

func (r *Registry) shard(id uuid.UUID) *registryShard {
	return r.shards[xxhash.Sum64(id[:])%shardCount]
}

// Add registers client under its ID. If the ID is taken the existing entry
// is kept and Add returns false.
func (r *Registry) Add(client Client) bool {
	id := client.ID()
	s := r.shard(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.clients[id]; exists {
		return false
	}
	s.clients[id] = client
	return true
}

// Remove marks client disconnected, then deletes its entry if the entry is
// this same client. It reports whether an entry was deleted.
//
// The flag is flipped before the delete so a broadcast iterating an older
// snapshot skips the client instead of writing to a dead connection.
func (r *Registry) Remove(client Client) bool {
	client.MarkDisconnected()

	id := client.ID()
	s := r.shard(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.clients[id]; ok && existing == client {
		delete(s.clients, id)
		return true
	}
	return false
}

// Get returns the client registered under id.
func (r *Registry) Get(id uuid.UUID) (Client, bool) {
	s := r.shard(id)
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[id]
	return c, ok
}

// Snapshot returns a point-in-time copy of all registered clients. Shards
// are read one at a time, so the copy may include clients that a racing
// Remove has already marked disconnected.
func (r *Registry) Snapshot() []Client {
	out := make([]Client, 0, r.Len())
	for _, s := range r.shards {
		s.mu.RLock()
		for _, c := range s.clients {
			out = append(out, c)
		}
		s.mu.RUnlock()
	}
	return out
}

// Len returns the number of registered clients.
func (r *Registry) Len() int {
	n := 0
	for _, s := range r.shards {
		s.mu.RLock()
		n += len(s.clients)
		s.mu.RUnlock()
	}
	return n
}
