package handlers

import (
	"context"

	"relaychat/service/chat"
)

type SendHandler struct{}

func NewSendHandler() chat.Handler { return &SendHandler{} }
func (h *SendHandler) Type() chat.FrameType { return chat.FrameSendMessage }

// Handle delegates to the router with the caller-supplied from/to. The
// frame is accepted whether or not the connection has joined; binding
// the sender identity to the connection is out of scope here.
func (h *SendHandler) Handle(ctx *chat.ChatContext, f *chat.Frame, c *chat.Client) error {
	ctx.S.Router().Send(context.Background(), f.From, f.To, f.Text)
	return nil
}

// RegisterAll wires the default frame handlers into the dispatcher.
func RegisterAll(s *chat.Server) {
	s.Disp().Register(NewJoinHandler())
	s.Disp().Register(NewSendHandler())
}
