package chat

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(connID string) *Client {
	return NewClient(connID, nil, 8)
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	req := require.New(t)
	r := NewRegistry()

	c1 := newTestClient("c1")
	r.Register("alice", c1)

	conns := r.Lookup("alice")
	req.Len(conns, 1)
	req.Equal("c1", conns[0].ConnID)
	req.Equal("alice", conns[0].UserID)

	// idempotent for a repeated identical join
	r.Register("alice", c1)
	req.Len(r.Lookup("alice"), 1)
}

func TestRegistry_LookupOfflineIsEmpty(t *testing.T) {
	req := require.New(t)
	r := NewRegistry()
	req.Empty(r.Lookup("nobody"))
	req.Zero(r.Count("nobody"))
}

func TestRegistry_MultipleSessionsPerUser(t *testing.T) {
	req := require.New(t)
	r := NewRegistry()

	r.Register("alice", newTestClient("c1"))
	r.Register("alice", newTestClient("c2"))

	req.Len(r.Lookup("alice"), 2)
	req.Equal(2, r.Count("alice"))
}

func TestRegistry_UnregisterByHandleOnly(t *testing.T) {
	req := require.New(t)
	r := NewRegistry()

	c1 := newTestClient("c1")
	c2 := newTestClient("c2")
	r.Register("alice", c1)
	r.Register("alice", c2)

	user, last := r.Unregister(c1)
	req.Equal("alice", user)
	req.False(last)
	req.Len(r.Lookup("alice"), 1)

	user, last = r.Unregister(c2)
	req.Equal("alice", user)
	req.True(last)
	req.Empty(r.Lookup("alice"))
}

func TestRegistry_UnregisterIsIdempotent(t *testing.T) {
	req := require.New(t)
	r := NewRegistry()

	c1 := newTestClient("c1")
	r.Register("alice", c1)

	user, last := r.Unregister(c1)
	req.Equal("alice", user)
	req.True(last)

	// duplicate close signal
	user, last = r.Unregister(c1)
	req.Empty(user)
	req.False(last)

	// never registered at all
	user, _ = r.Unregister(newTestClient("ghost"))
	req.Empty(user)
}

func TestRegistry_JoinRebindsConnection(t *testing.T) {
	req := require.New(t)
	r := NewRegistry()

	c1 := newTestClient("c1")
	prev := r.Register("alice", c1)
	req.Empty(prev)

	prev = r.Register("bob", c1)
	req.Equal("alice", prev)

	req.Empty(r.Lookup("alice"))
	req.Len(r.Lookup("bob"), 1)
	req.Equal("bob", c1.UserID)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c := newTestClient(fmt.Sprintf("c%d", n))
			user := fmt.Sprintf("user%d", n%5)
			r.Register(user, c)
			r.Lookup(user)
			r.Unregister(c)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		require.Empty(t, r.Lookup(fmt.Sprintf("user%d", i)))
	}
}
