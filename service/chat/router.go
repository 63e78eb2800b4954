package chat

import (
	"context"

	"relaychat/logger"
	"relaychat/service/store"
	"relaychat/tools/safe"
)

// Router fulfils send requests: resolve the recipient's live sessions,
// push the payload to each, and persist the message on the side.
// Delivery and persistence are independent: an offline recipient still
// gets the message stored, and a storage failure never blocks or fails
// live delivery. The protocol has no send ack, so nothing is reported
// back to the sender either way.
type Router struct {
	registry *Registry
	store    store.Store
}

func NewRouter(registry *Registry, st store.Store) *Router {
	return &Router{registry: registry, store: st}
}

// Send runs on the sending connection's read goroutine. In-memory
// delivery happens inline (keeps a single sender's messages in issue
// order per recipient queue); the storage round-trip is spawned as its
// own task so no connection waits on I/O.
func (r *Router) Send(ctx context.Context, from, to, text string) {
	conns := r.registry.Lookup(to)
	delivered := broadcast(conns, BuildReceiveMessage(from, text))
	logger.Infof("[router] send from=%s to=%s sessions=%d delivered=%d", from, to, len(conns), delivered)

	safe.Go(func() {
		if _, err := r.store.AppendMessage(context.Background(), from, to, text); err != nil {
			// observability only; the sender already believes the message
			// was sent
			logger.Errorf("[router] persist failed from=%s to=%s err=%v", from, to, err)
		}
	})
}
