package social

import "context"

// Conversation is the membership view of a chat: who is in it and who has
// silenced it. Muted membership only ever suppresses pushes, never records.
type Conversation struct {
	Members []string
	Muted   map[string]bool
}

// Graph exposes the relational collaborator the recipient resolver reads:
// conversation membership for chat-scoped events and the reverse follower
// index for social events.
type Graph interface {
	Conversation(ctx context.Context, chatID string) (Conversation, error)
	Followers(ctx context.Context, userID string) ([]string, error)
}
