package domain

import "time"

// Record is the durable in-app notification written once per (event,
// recipient) pair, independent of mute state and of push outcome. It is
// immutable after creation except for the Read flag, which only the
// consuming client flips.
type Record struct {
	ID          string            `bson:"_id" json:"id"`
	RecipientID string            `bson:"recipient_id" json:"recipientId"`
	Type        EventKind         `bson:"type" json:"type"`
	Title       string            `bson:"title" json:"title"`
	Body        string            `bson:"body" json:"body"`
	Data        map[string]string `bson:"data,omitempty" json:"data,omitempty"`
	Read        bool              `bson:"read" json:"read"`
	CreatedAt   time.Time         `bson:"created_at" json:"createdAt"`
}
