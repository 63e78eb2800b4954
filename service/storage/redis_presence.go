package storage

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// presence key: im:presence:<user>
// Value: node_id, TTL controls the online validity period.
func presenceKey(user string) string { return "im:presence:" + user }

// Presence mirrors "user has at least one live session on this node" into
// Redis. Best effort only: routing always goes through the in-process
// registry, this exists for operators and external services. A nil
// Presence disables the mirror.
type Presence struct {
	rdb    *redis.Client
	nodeID string
	ttl    time.Duration
}

type PresenceConfig struct {
	Addr     string
	Password string
	DB       int
	NodeID   string
	TTL      time.Duration
}

func NewPresence(c PresenceConfig) (*Presence, error) {
	rdb := redis.NewClient(&redis.Options{Addr: c.Addr, Password: c.Password, DB: c.DB})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, errors.WithMessage(err, "redis ping failed")
	}
	ttl := c.TTL
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &Presence{rdb: rdb, nodeID: c.NodeID, ttl: ttl}, nil
}

// NewPresenceWithClient wires an existing client (tests use miniredis).
func NewPresenceWithClient(rdb *redis.Client, nodeID string, ttl time.Duration) *Presence {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &Presence{rdb: rdb, nodeID: nodeID, ttl: ttl}
}

// Online sets the user as online and renews the TTL.
func (p *Presence) Online(ctx context.Context, user string) error {
	if p == nil || p.rdb == nil {
		return nil
	}
	return p.rdb.Set(ctx, presenceKey(user), p.nodeID, p.ttl).Err()
}

// Offline actively sets the user offline (deletes the key).
func (p *Presence) Offline(ctx context.Context, user string) error {
	if p == nil || p.rdb == nil {
		return nil
	}
	return p.rdb.Del(ctx, presenceKey(user)).Err()
}

// Lookup checks whether the user is online and on which node.
func (p *Presence) Lookup(ctx context.Context, user string) (nodeID string, online bool, err error) {
	if p == nil || p.rdb == nil {
		return "", false, nil
	}
	val, err := p.rdb.Get(ctx, presenceKey(user)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (p *Presence) Close() error {
	if p == nil || p.rdb == nil {
		return nil
	}
	return p.rdb.Close()
}
