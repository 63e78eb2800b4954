package model

import (
	"time"
)

// User is the identity record created on first registration.
// Phone is the natural dedup key: registering an existing phone returns
// the existing record instead of creating a duplicate. Users are never
// mutated or deleted.
type User struct {
	UserID    string    `bson:"user_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Phone     string    `bson:"phone" json:"phone"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

func (u *User) GetTableName() string {
	return "users"
}
