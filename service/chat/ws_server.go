package chat

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"relaychat/logger"
)

var upgrader = websocket.Upgrader{ReadBufferSize: 4096, WriteBufferSize: 4096, CheckOrigin: func(r *http.Request) bool { return true }}

// HandleWS terminates one persistent client connection: upgrade, spawn
// the writer, then run the read loop until the peer goes away. Each
// connection is handled on its own goroutine, so one connection's
// failure or slow I/O never stalls the others.
func (s *Server) HandleWS(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// usually a non-WebSocket request or a failed handshake
		logger.Infof("[HandleWS] upgrade websocket error: %v", err)
		return
	}

	client := NewClient(uuid.NewString(), ws, s.conf.SendQueueSize)
	go client.writePump()

	logger.Infof("[HandleWS] connected conn=%s remote=%s", client.ConnID, ws.RemoteAddr())

	// read loop: reads only, never writes; exit hands off to cleanup
	for {
		mt, data, rerr := ws.ReadMessage()
		if rerr != nil {
			if websocket.IsCloseError(rerr,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Infof("[WS] peer closed conn=%s", client.ConnID)
			} else if ne, ok := rerr.(net.Error); ok && ne.Timeout() {
				logger.Infof("[WS] read timeout conn=%s err=%v", client.ConnID, rerr)
			} else {
				logger.Infof("[WS] read err conn=%s err=%v", client.ConnID, rerr)
			}
			break
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}

		frame, perr := ParseFrameJSON(data)
		if perr != nil {
			sample := data
			if len(sample) > 256 {
				sample = sample[:256]
			}
			logger.Infof("[WS] ParseFrameJSON err conn=%s err=%v sample=%q", client.ConnID, perr, sample)
			continue
		}

		if derr := s.disp.Dispatch(&ChatContext{S: s}, frame, client); derr != nil {
			logger.Infof("[WS] dispatch err conn=%s type=%s err=%v", client.ConnID, frame.Type, derr)
			continue
		}
	}

	s.disconnect(client)
}

// disconnect runs the exactly-once cleanup for a closing connection:
// drop the registry binding, mirror the offline transition, and shut the
// writer down. Safe against duplicate close signals.
func (s *Server) disconnect(client *Client) {
	userID, last := s.registry.Unregister(client)
	client.Close()

	if userID != "" && last {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.presence.Offline(ctx, userID); err != nil {
			logger.Warnf("[WS] presence offline failed user=%s err=%v", userID, err)
		}
	}
	logger.Infof("[WS] disconnected conn=%s user=%s", client.ConnID, userID)
}

// Bind applies a join frame: register (rebindable) and mirror presence.
func (s *Server) Bind(client *Client, userID string) {
	prev := s.registry.Register(userID, client)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.presence.Online(ctx, userID); err != nil {
		logger.Warnf("[WS] presence online failed user=%s err=%v", userID, err)
	}
	if prev != "" && s.registry.Count(prev) == 0 {
		if err := s.presence.Offline(ctx, prev); err != nil {
			logger.Warnf("[WS] presence offline failed user=%s err=%v", prev, err)
		}
	}
	logger.Infof("[WS] join user=%s conn=%s rebound_from=%q", userID, client.ConnID, prev)
}
