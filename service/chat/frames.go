package chat

import (
	"encoding/json"
	"fmt"
	"time"
)

type FrameType string

const (
	FrameJoin           FrameType = "join"
	FrameSendMessage    FrameType = "send-message"
	FrameReceiveMessage FrameType = "receive-message"
)

// Frame is the JSON wire envelope for every event on the persistent
// connection. Unused fields stay empty per frame type.
type Frame struct {
	Type   FrameType `json:"type"`
	UserID string    `json:"userId,omitempty"` // join
	From   string    `json:"from,omitempty"`   // send-message / receive-message
	To     string    `json:"to,omitempty"`     // send-message
	Text   string    `json:"text,omitempty"`
	Ts     int64     `json:"ts,omitempty"` // server time, unix ms
}

func ParseFrameJSON(raw []byte) (*Frame, error) {
	frame := &Frame{}
	if err := json.Unmarshal(raw, frame); err != nil {
		return nil, fmt.Errorf("unmarshal frame failed: %w", err)
	}
	if frame.Type == "" {
		return nil, fmt.Errorf("frame missing type")
	}
	return frame, nil
}

// BuildReceiveMessage builds the outbound payload pushed to every live
// session of the recipient.
func BuildReceiveMessage(from, text string) []byte {
	payload, _ := json.Marshal(&Frame{
		Type: FrameReceiveMessage,
		From: from,
		Text: text,
		Ts:   time.Now().UnixMilli(),
	})
	return payload
}
