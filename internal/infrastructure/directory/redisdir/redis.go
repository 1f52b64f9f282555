package redisdir

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/medeiros-dev/notify-gateway/internal/domain/port/directory"
)

const (
	userKeyPrefix  = "user:"
	tokenKeyPrefix = "push:token:"
)

// Directory implements directory.Directory against the Redis device
// registry. Tokens are latest-wins: registration (outside this service)
// overwrites the per-user key.
type Directory struct {
	client *redis.Client
}

func NewDirectory(client *redis.Client) *Directory {
	return &Directory{client: client}
}

func (d *Directory) Resolve(ctx context.Context, recipientID string) (directory.Entry, error) {
	exists, err := d.client.Exists(ctx, userKeyPrefix+recipientID).Result()
	if err != nil {
		return directory.Entry{}, fmt.Errorf("checking user existence: %w", err)
	}
	if exists == 0 {
		return directory.Entry{Exists: false}, nil
	}

	token, err := d.client.Get(ctx, tokenKeyPrefix+recipientID).Result()
	if errors.Is(err, redis.Nil) {
		// Known user, never registered for push.
		return directory.Entry{Exists: true}, nil
	}
	if err != nil {
		return directory.Entry{}, fmt.Errorf("fetching push token: %w", err)
	}
	return directory.Entry{Exists: true, Token: token}, nil
}
