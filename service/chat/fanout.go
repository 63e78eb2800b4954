package chat

// broadcast enqueues payload on every session's send queue. Enqueue is
// non-blocking per session: a closed or slow client is skipped and never
// holds up its siblings. Done inline from the sender's read loop so a
// single sender's messages reach each recipient queue in issue order.
func broadcast(conns []*Client, payload []byte) int {
	if len(conns) == 0 || len(payload) == 0 {
		return 0
	}
	delivered := 0
	for _, c := range conns {
		if c.Deliver(payload) {
			delivered++
		}
	}
	return delivered
}
