package store

import (
	"context"

	"github.com/medeiros-dev/notify-gateway/internal/domain"
)

// RecordStore appends durable notification records. Writes are
// fire-and-forget from the gateway's perspective: the store owns the record
// once Append returns.
type RecordStore interface {
	Append(ctx context.Context, record domain.Record) (string, error)
}
