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

// MongoCollectionRepository implements CollectionRepository using MongoDB
type MongoCollectionRepository struct {
	collection *mongo.Collection
}

// NewMongoCollectionRepository creates a new MongoDB collection repository
func NewMongoCollectionRepository(db *mongo.Database) ports.CollectionRepository {
	return &MongoCollectionRepository{
		collection: db.Collection("webflow_collections"),
	}
}

// Upsert saves or updates a collection keyed on its globally unique
// webflowCollectionId
func (r *MongoCollectionRepository) Upsert(ctx context.Context, collection *domain.Collection) (*domain.Collection, error) {
	now := time.Now()
	collection.UpdatedAt = now

	doc, err := setDoc(collection)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to prepare collection document", err)
	}

	filter := bson.M{"webflowCollectionId": collection.WebflowCollectionID}
	update := bson.M{
		"$set": doc,
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID().Hex(),
			"createdAt": now,
		},
	}

	var saved domain.Collection
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, upsertOptions()).Decode(&saved); err != nil {
		return nil, domain.NewPersistenceError("failed to save collection", err)
	}
	return &saved, nil
}

// ListBySite retrieves the persisted collections of one site. The item sync
// fans out over this local state rather than a fresh upstream fetch.
func (r *MongoCollectionRepository) ListBySite(ctx context.Context, siteID string) ([]*domain.Collection, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"webflowSiteId": siteID})
	if err != nil {
		return nil, domain.NewPersistenceError("failed to list collections", err)
	}
	defer cursor.Close(ctx)

	var collections []*domain.Collection
	for cursor.Next(ctx) {
		var collection domain.Collection
		if err := cursor.Decode(&collection); err != nil {
			return nil, domain.NewPersistenceError("failed to decode collection", err)
		}
		collections = append(collections, &collection)
	}
	if err := cursor.Err(); err != nil {
		return nil, domain.NewPersistenceError("collection cursor error", err)
	}
	return collections, nil
}

// Count returns the number of collections matching the filter
func (r *MongoCollectionRepository) Count(ctx context.Context, filter map[string]any) (int64, error) {
	query, err := countFilter(filter)
	if err != nil {
		return 0, err
	}
	count, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return 0, domain.NewPersistenceError("failed to count collections", err)
	}
	return count, nil
}
