package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medeiros-dev/notify-gateway/internal/domain"
	"github.com/medeiros-dev/notify-gateway/internal/domain/port/social"
)

// Graph implements social.Graph on the relational membership tables.
type Graph struct {
	pool *pgxpool.Pool
}

func NewGraph(pool *pgxpool.Pool) *Graph {
	return &Graph{pool: pool}
}

func (g *Graph) Conversation(ctx context.Context, chatID string) (social.Conversation, error) {
	rows, err := g.pool.Query(ctx,
		`SELECT user_id, muted FROM conversation_members WHERE conversation_id = $1`,
		chatID,
	)
	if err != nil {
		return social.Conversation{}, fmt.Errorf("querying conversation members: %w", err)
	}
	defer rows.Close()

	conv := social.Conversation{Muted: make(map[string]bool)}
	for rows.Next() {
		var userID string
		var muted bool
		if err := rows.Scan(&userID, &muted); err != nil {
			return social.Conversation{}, fmt.Errorf("scanning conversation member: %w", err)
		}
		conv.Members = append(conv.Members, userID)
		if muted {
			conv.Muted[userID] = true
		}
	}
	if err := rows.Err(); err != nil {
		return social.Conversation{}, fmt.Errorf("reading conversation members: %w", err)
	}

	// A conversation with no membership rows does not exist.
	if len(conv.Members) == 0 {
		return social.Conversation{}, fmt.Errorf("conversation %s: %w", chatID, domain.ErrNotFound)
	}
	return conv, nil
}

func (g *Graph) Followers(ctx context.Context, userID string) ([]string, error) {
	rows, err := g.pool.Query(ctx,
		`SELECT follower_id FROM followers WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying followers: %w", err)
	}
	defer rows.Close()

	var followers []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning follower: %w", err)
		}
		followers = append(followers, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading followers: %w", err)
	}
	return followers, nil
}
