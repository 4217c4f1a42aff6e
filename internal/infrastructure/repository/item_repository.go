package repository

import (
	"context"
	"time"

	"webflow-mirror-layer/internal/domain"
	"webflow-mirror-layer/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoItemRepository implements ItemRepository using MongoDB
type MongoItemRepository struct {
	collection *mongo.Collection
}

// NewMongoItemRepository creates a new MongoDB item repository
func NewMongoItemRepository(db *mongo.Database) ports.ItemRepository {
	return &MongoItemRepository{
		collection: db.Collection("webflow_items"),
	}
}

// Upsert saves or updates an item keyed on (itemId, collectionId)
func (r *MongoItemRepository) Upsert(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	now := time.Now()
	item.UpdatedAt = now

	doc, err := setDoc(item)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to prepare item document", err)
	}

	filter := bson.M{
		"itemId":       item.ItemID,
		"collectionId": item.CollectionID,
	}
	update := bson.M{
		"$set": doc,
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID().Hex(),
			"createdAt": now,
		},
	}

	var saved domain.Item
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, upsertOptions()).Decode(&saved); err != nil {
		return nil, domain.NewPersistenceError("failed to save item", err)
	}
	return &saved, nil
}

// Count returns the number of items matching the filter
func (r *MongoItemRepository) Count(ctx context.Context, filter map[string]any) (int64, error) {
	query, err := countFilter(filter)
	if err != nil {
		return 0, err
	}
	count, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return 0, domain.NewPersistenceError("failed to count items", err)
	}
	return count, nil
}
