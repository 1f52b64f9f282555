package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medeiros-dev/notify-gateway/internal/domain"
)

// Store implements store.RecordStore on a MongoDB collection. Records are
// insert-only from the gateway's side; the consuming client owns reads and
// the read-flag update.
type Store struct {
	collection *mongo.Collection
}

func NewStore(client *mongo.Client, database, collection string) *Store {
	return &Store{collection: client.Database(database).Collection(collection)}
}

func (s *Store) Append(ctx context.Context, record domain.Record) (string, error) {
	if _, err := s.collection.InsertOne(ctx, record); err != nil {
		return "", fmt.Errorf("inserting notification record: %w", err)
	}
	return record.ID, nil
}
