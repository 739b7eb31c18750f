package repository

import (
	"context"
	"errors"

	"launchsync-service/internal/domain/entity"
	"launchsync-service/internal/domain/repository"
	"launchsync-service/pkg/apperrors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// The dashboard edits a single webhook document under this fixed id.
const webhookConfigID = 1

// MongoWebhookConfigRepository implements WebhookConfigRepository
type MongoWebhookConfigRepository struct {
	collection *mongo.Collection
}

// NewMongoWebhookConfigRepository creates a new webhook config repository
func NewMongoWebhookConfigRepository(db *mongo.Database, collectionName string) repository.WebhookConfigRepository {
	return &MongoWebhookConfigRepository{
		collection: db.Collection(collectionName),
	}
}

// GetURL returns the configured webhook URL, "" when no document exists
// or the url field is empty.
func (r *MongoWebhookConfigRepository) GetURL(ctx context.Context) (string, error) {
	var cfg entity.WebhookConfig
	err := r.collection.FindOne(ctx, bson.M{"_id": webhookConfigID}).Decode(&cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", &apperrors.StoreError{Op: "webhookConfig", Err: err}
	}
	return cfg.URL, nil
}
