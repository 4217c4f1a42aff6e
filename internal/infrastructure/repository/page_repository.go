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

// MongoPageRepository implements PageRepository using MongoDB
type MongoPageRepository struct {
	collection *mongo.Collection
}

// NewMongoPageRepository creates a new MongoDB page repository
func NewMongoPageRepository(db *mongo.Database) ports.PageRepository {
	return &MongoPageRepository{
		collection: db.Collection("webflow_pages"),
	}
}

// Upsert saves or updates a page keyed on (webflowPageId, webflowSiteId)
func (r *MongoPageRepository) Upsert(ctx context.Context, page *domain.Page) (*domain.Page, error) {
	now := time.Now()
	page.UpdatedAt = now

	doc, err := setDoc(page)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to prepare page document", err)
	}

	filter := bson.M{
		"webflowPageId": page.WebflowPageID,
		"webflowSiteId": page.WebflowSiteID,
	}
	update := bson.M{
		"$set": doc,
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID().Hex(),
			"createdAt": now,
		},
	}

	var saved domain.Page
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, upsertOptions()).Decode(&saved); err != nil {
		return nil, domain.NewPersistenceError("failed to save page", err)
	}
	return &saved, nil
}

// Count returns the number of pages matching the filter
func (r *MongoPageRepository) Count(ctx context.Context, filter map[string]any) (int64, error) {
	query, err := countFilter(filter)
	if err != nil {
		return 0, err
	}
	count, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return 0, domain.NewPersistenceError("failed to count pages", err)
	}
	return count, nil
}
