package chat

import (
	"fmt"
)

type Handler interface {
	Type() FrameType
	Handle(ctx *ChatContext, f *Frame, c *Client) error
}

type ChatContext struct {
	S *Server
}

type Dispatcher struct {
	handlers map[FrameType]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[FrameType]Handler)}
}

func (d *Dispatcher) Register(h Handler) { d.handlers[h.Type()] = h }

func (d *Dispatcher) Dispatch(ctx *ChatContext, f *Frame, c *Client) error {
	h, ok := d.handlers[f.Type]
	if !ok {
		return fmt.Errorf("no handler for type=%v", f.Type)
	}
	return h.Handle(ctx, f, c)
}
