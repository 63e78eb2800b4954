package model

import (
	"time"
)

// Message is immutable once appended. History between two users is read
// back ordered by CreatedAt ascending, both directions merged.
type Message struct {
	MsgID     string    `bson:"msg_id" json:"id"`
	From      string    `bson:"from" json:"from"`
	To        string    `bson:"to" json:"to"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

func (m *Message) GetTableName() string {
	return "messages"
}
