package handlers

import (
	"relaychat/logger"
	"relaychat/service/chat"
)

type JoinHandler struct{}

func NewJoinHandler() chat.Handler { return &JoinHandler{} }
func (h *JoinHandler) Type() chat.FrameType { return chat.FrameJoin }

func (h *JoinHandler) Handle(ctx *chat.ChatContext, f *chat.Frame, c *chat.Client) error {
	if f.UserID == "" {
		logger.Infof("[join] skip, empty userId conn=%s", c.ConnID)
		return nil
	}
	ctx.S.Bind(c, f.UserID)
	return nil
}
