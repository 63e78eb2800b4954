package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestPresence(t *testing.T) (*Presence, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewPresenceWithClient(rdb, "gw-test", time.Minute), mr
}

func TestPresence_OnlineOfflineLookup(t *testing.T) {
	req := require.New(t)
	p, mr := newTestPresence(t)
	ctx := context.Background()

	node, online, err := p.Lookup(ctx, "alice")
	req.NoError(err)
	req.False(online)
	req.Empty(node)

	req.NoError(p.Online(ctx, "alice"))
	node, online, err = p.Lookup(ctx, "alice")
	req.NoError(err)
	req.True(online)
	req.Equal("gw-test", node)
	req.True(mr.Exists("im:presence:alice"))

	req.NoError(p.Offline(ctx, "alice"))
	_, online, err = p.Lookup(ctx, "alice")
	req.NoError(err)
	req.False(online)
}

func TestPresence_TTLExpires(t *testing.T) {
	req := require.New(t)
	p, mr := newTestPresence(t)
	ctx := context.Background()

	req.NoError(p.Online(ctx, "bob"))
	mr.FastForward(2 * time.Minute)

	_, online, err := p.Lookup(ctx, "bob")
	req.NoError(err)
	req.False(online)
}

func TestPresence_NilMirrorIsDisabled(t *testing.T) {
	req := require.New(t)
	var p *Presence
	ctx := context.Background()

	req.NoError(p.Online(ctx, "alice"))
	req.NoError(p.Offline(ctx, "alice"))
	_, online, err := p.Lookup(ctx, "alice")
	req.NoError(err)
	req.False(online)
	req.NoError(p.Close())
}
