package repository

import (
	"context"
	"time"

	"launchsync-service/internal/domain/entity"
	"launchsync-service/internal/domain/repository"
	"launchsync-service/pkg/apperrors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoLaunchRepository implements LaunchRepository
type MongoLaunchRepository struct {
	collection *mongo.Collection
}

// NewMongoLaunchRepository creates a new launch repository
func NewMongoLaunchRepository(db *mongo.Database, collectionName string) repository.LaunchRepository {
	return &MongoLaunchRepository{
		collection: db.Collection(collectionName),
	}
}

// Upsert replaces the whole document stored under the launch id,
// inserting it if absent. Last write wins per run; idempotent for an
// unchanged launch.
func (r *MongoLaunchRepository) Upsert(ctx context.Context, launch *entity.Launch) error {
	launch.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": launch.ID}, launch, opts)
	if err != nil {
		return &apperrors.StoreError{Op: "upsert", RecordID: launch.ID, Err: err}
	}
	return nil
}

// ListKnownIDs returns the set of launch ids already in the store
func (r *MongoLaunchRepository) ListKnownIDs(ctx context.Context) (map[string]struct{}, error) {
	values, err := r.collection.Distinct(ctx, "_id", bson.D{})
	if err != nil {
		return nil, &apperrors.StoreError{Op: "listKnownIds", Err: err}
	}

	ids := make(map[string]struct{}, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			ids[id] = struct{}{}
		}
	}
	return ids, nil
}

// ListAll returns every persisted launch
func (r *MongoLaunchRepository) ListAll(ctx context.Context) ([]entity.Launch, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, &apperrors.StoreError{Op: "listAll", Err: err}
	}
	defer cursor.Close(ctx)

	var launches []entity.Launch
	if err := cursor.All(ctx, &launches); err != nil {
		return nil, &apperrors.StoreError{Op: "listAll", Err: err}
	}
	return launches, nil
}
