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

// MongoProductRepository implements ProductRepository using MongoDB
type MongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository creates a new MongoDB product repository
func NewMongoProductRepository(db *mongo.Database) ports.ProductRepository {
	return &MongoProductRepository{
		collection: db.Collection("webflow_products"),
	}
}

// Upsert saves or updates a product keyed on (productId, siteId). The SKU
// uniqueness invariant is enforced here as the last gate before the write.
func (r *MongoProductRepository) Upsert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	product.UpdatedAt = now

	doc, err := setDoc(product)
	if err != nil {
		return nil, domain.NewPersistenceError("failed to prepare product document", err)
	}

	filter := bson.M{
		"productId": product.ProductID,
		"siteId":    product.SiteID,
	}
	update := bson.M{
		"$set": doc,
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID().Hex(),
			"createdAt": now,
		},
	}

	var saved domain.Product
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, upsertOptions()).Decode(&saved); err != nil {
		return nil, domain.NewPersistenceError("failed to save product", err)
	}
	return &saved, nil
}

// Count returns the number of products matching the filter
func (r *MongoProductRepository) Count(ctx context.Context, filter map[string]any) (int64, error) {
	query, err := countFilter(filter)
	if err != nil {
		return 0, err
	}
	count, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return 0, domain.NewPersistenceError("failed to count products", err)
	}
	return count, nil
}
