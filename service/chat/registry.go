package chat

import (
	"sync"
)

// Registry is the single source of truth for "is user X currently
// reachable". It maps user -> conn_id -> client with a reverse conn
// index so disconnect events, which only carry the connection, can
// locate the binding. All synchronization is internal.
type Registry struct {
	mu     sync.RWMutex
	byUser map[string]map[string]*Client // user -> conn_id -> client
	byConn map[string]*Client            // conn_id -> client
}

func NewRegistry() *Registry {
	return &Registry{
		byUser: make(map[string]map[string]*Client),
		byConn: make(map[string]*Client),
	}
}

// Register binds c to userID. Idempotent for a repeated identical join.
// A join on an already-bound connection rebinds: the previous identity
// association is dropped first. Returns the previous user ID when a
// rebind happened, "" otherwise.
func (r *Registry) Register(userID string, c *Client) (prevUser string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.byConn[c.ConnID]; ok && prev.UserID != userID {
		prevUser = prev.UserID
		r.dropFromUser(prev)
	}

	c.UserID = userID
	m := r.byUser[userID]
	if m == nil {
		m = make(map[string]*Client)
		r.byUser[userID] = m
	}
	m[c.ConnID] = c
	r.byConn[c.ConnID] = c
	return prevUser
}

// Unregister removes c from whichever user set contains it. No-op if the
// connection was never registered or was already removed, so duplicate
// close signals are harmless. Reports the bound user and whether this
// was its last live session.
func (r *Registry) Unregister(c *Client) (userID string, last bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byConn[c.ConnID]
	if !ok {
		return "", false
	}
	userID = rec.UserID
	r.dropFromUser(rec)
	delete(r.byConn, c.ConnID)
	return userID, len(r.byUser[userID]) == 0
}

// Lookup returns a snapshot of the live sessions for userID; empty means
// offline, not an error.
func (r *Registry) Lookup(userID string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m := r.byUser[userID]
	if len(m) == 0 {
		return nil
	}
	out := make([]*Client, 0, len(m))
	for _, c := range m {
		out = append(out, c)
	}
	return out
}

// Count reports the number of live sessions bound to userID.
func (r *Registry) Count(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser[userID])
}

// caller holds r.mu
func (r *Registry) dropFromUser(c *Client) {
	if m := r.byUser[c.UserID]; m != nil {
		delete(m, c.ConnID)
		if len(m) == 0 {
			delete(r.byUser, c.UserID)
		}
	}
}
