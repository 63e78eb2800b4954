package store

import (
	"context"
	"sort"
	"sync"
	"time"

	chatmodel "relaychat/module/chat/model"
	usermodel "relaychat/module/user/model"
	"relaychat/tools/errs"
	"relaychat/tools/ids"
)

// MemoryStore is an in-memory Store used by tests and brokerless local runs.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]*usermodel.User // user_id -> user
	byPhone  map[string]string          // phone -> user_id
	messages []*chatmodel.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]*usermodel.User),
		byPhone: make(map[string]string),
	}
}

func (s *MemoryStore) FindOrCreateUser(_ context.Context, name, phone string) (*usermodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.byPhone[phone]; ok {
		u := *s.users[id]
		return &u, nil
	}
	u := &usermodel.User{
		UserID:    ids.GenerateString(),
		Name:      name,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}
	s.users[u.UserID] = u
	s.byPhone[phone] = u.UserID
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) GetUser(_ context.Context, id string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, errs.ErrNotFound.WrapMsg("user not found", "user_id", id)
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) ListUsers(_ context.Context) ([]*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*usermodel.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) AppendMessage(_ context.Context, from, to, text string) (*chatmodel.Message, error) {
	m := &chatmodel.Message{
		MsgID:     ids.GenerateString(),
		From:      from,
		To:        to,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.messages = append(s.messages, m)
	s.mu.Unlock()
	cp := *m
	return &cp, nil
}

func (s *MemoryStore) ListMessages(_ context.Context, a, b string) ([]*chatmodel.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*chatmodel.Message
	for _, m := range s.messages {
		if (m.From == a && m.To == b) || (m.From == b && m.To == a) {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
