package store

import (
	"context"

	chatmodel "relaychat/module/chat/model"
	usermodel "relaychat/module/user/model"
)

// Store is the durable persistence collaborator consumed by the gateway
// core and the REST surface. Implementations must be safe for concurrent
// use; the router calls AppendMessage from per-message tasks.
type Store interface {
	// FindOrCreateUser dedups by phone: a second registration with the
	// same phone returns the first record.
	FindOrCreateUser(ctx context.Context, name, phone string) (*usermodel.User, error)
	GetUser(ctx context.Context, id string) (*usermodel.User, error)
	ListUsers(ctx context.Context) ([]*usermodel.User, error)
	AppendMessage(ctx context.Context, from, to, text string) (*chatmodel.Message, error)
	// ListMessages returns both directions between a and b, ordered by
	// creation time ascending.
	ListMessages(ctx context.Context, a, b string) ([]*chatmodel.Message, error)
}
