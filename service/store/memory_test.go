package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"relaychat/tools/errs"
)

func TestMemoryStore_FindOrCreateUserDedupsByPhone(t *testing.T) {
	req := require.New(t)
	st := NewMemoryStore()
	ctx := context.Background()

	u1, err := st.FindOrCreateUser(ctx, "Alice", "1")
	req.NoError(err)
	req.NotEmpty(u1.UserID)
	req.Equal("Alice", u1.Name)

	// same phone, even with a different name, returns the first record
	u2, err := st.FindOrCreateUser(ctx, "Alicia", "1")
	req.NoError(err)
	req.Equal(u1.UserID, u2.UserID)
	req.Equal("Alice", u2.Name)

	users, err := st.ListUsers(ctx)
	req.NoError(err)
	req.Len(users, 1)
}

func TestMemoryStore_GetUser(t *testing.T) {
	req := require.New(t)
	st := NewMemoryStore()
	ctx := context.Background()

	u, err := st.FindOrCreateUser(ctx, "Bob", "2")
	req.NoError(err)

	got, err := st.GetUser(ctx, u.UserID)
	req.NoError(err)
	req.Equal("Bob", got.Name)

	_, err = st.GetUser(ctx, "unknown")
	req.Error(err)
	req.True(errs.IsCode(err, errs.CodeNotFound))
}

func TestMemoryStore_HistoryBothDirectionsAscending(t *testing.T) {
	req := require.New(t)
	st := NewMemoryStore()
	ctx := context.Background()

	_, err := st.AppendMessage(ctx, "alice", "bob", "one")
	req.NoError(err)
	time.Sleep(2 * time.Millisecond)
	_, err = st.AppendMessage(ctx, "bob", "alice", "two")
	req.NoError(err)
	time.Sleep(2 * time.Millisecond)
	_, err = st.AppendMessage(ctx, "alice", "bob", "three")
	req.NoError(err)
	_, err = st.AppendMessage(ctx, "alice", "carol", "not yours")
	req.NoError(err)

	for _, pair := range [][2]string{{"alice", "bob"}, {"bob", "alice"}} {
		msgs, err := st.ListMessages(ctx, pair[0], pair[1])
		req.NoError(err)
		req.Len(msgs, 3)
		req.Equal("one", msgs[0].Text)
		req.Equal("two", msgs[1].Text)
		req.Equal("three", msgs[2].Text)
		for i := 1; i < len(msgs); i++ {
			req.False(msgs[i].CreatedAt.Before(msgs[i-1].CreatedAt))
		}
	}
}

func TestMemoryStore_AppendAssignsIDAndTimestamp(t *testing.T) {
	req := require.New(t)
	st := NewMemoryStore()

	m, err := st.AppendMessage(context.Background(), "alice", "bob", "hi")
	req.NoError(err)
	req.NotEmpty(m.MsgID)
	req.False(m.CreatedAt.IsZero())

	m2, err := st.AppendMessage(context.Background(), "alice", "bob", "again")
	req.NoError(err)
	req.NotEqual(m.MsgID, m2.MsgID)
}
