package repository

import (
	"context"
	"time"

	"webflow-mirror-layer/internal/domain"
	"webflow-mirror-layer/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSiteRepository implements SiteRepository using MongoDB
type MongoSiteRepository struct {
	collection *mongo.Collection
}

// NewMongoSiteRepository creates a new MongoDB site repository
func NewMongoSiteRepository(db *mongo.Database) ports.SiteRepository {
	return &MongoSiteRepository{
		collection: db.Collection("webflow_sites"),
	}
}

// Upsert saves or updates a site keyed on (userId, webflowSiteId)
func (r *MongoSiteRepository) Upsert(ctx context.Context, site *domain.Site) (*domain.Site, error) {
	now := time.Now()
	site.UpdatedAt = now

	doc, err := setDoc(site)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to prepare site document", err)
	}

	filter := bson.M{
		"webflowSiteId": site.WebflowSiteID,
		"userId":        site.UserID,
	}
	update := bson.M{
		"$set": doc,
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID().Hex(),
			"createdAt": now,
		},
	}

	var saved domain.Site
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, upsertOptions()).Decode(&saved); err != nil {
		return nil, domain.NewPersistenceError("failed to save site", err)
	}
	return &saved, nil
}

// ListByUser retrieves all sites owned by a user, most recently updated first
func (r *MongoSiteRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Site, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to list sites", err)
	}
	defer cursor.Close(ctx)

	var sites []*domain.Site
	for cursor.Next(ctx) {
		var site domain.Site
		if err := cursor.Decode(&site); err != nil {
			return nil, domain.NewPersistenceError("failed to decode site", err)
		}
		sites = append(sites, &site)
	}
	if err := cursor.Err(); err != nil {
		return nil, domain.NewPersistenceError("site cursor error", err)
	}
	return sites, nil
}

// Count returns the number of sites matching the filter
func (r *MongoSiteRepository) Count(ctx context.Context, filter map[string]any) (int64, error) {
	query, err := countFilter(filter)
	if err != nil {
		return 0, err
	}
	count, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return 0, domain.NewPersistenceError("failed to count sites", err)
	}
	return count, nil
}
