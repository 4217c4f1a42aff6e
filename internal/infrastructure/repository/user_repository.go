package repository

import (
	"context"
	"fmt"
	"time"

	"webflow-mirror-layer/internal/domain"
	"webflow-mirror-layer/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepository implements UserRepository using MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoDB user repository. A unique
// index on email guards against duplicate registrations racing each other.
func NewMongoUserRepository(db *mongo.Database) ports.UserRepository {
	collection := db.Collection("users")
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, _ = collection.Indexes().CreateOne(context.Background(), indexModel)
	return &MongoUserRepository{collection: collection}
}

// Create inserts a new user record
func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now()
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.WebflowDataFetchedAndSaved == nil {
		user.WebflowDataFetchedAndSaved = domain.SyncState{}
	}

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.NewValidationError("email is already registered")
		}
		return domain.NewPersistenceError("failed to create user", err)
	}
	return nil
}

// GetByID retrieves a user by id; (nil, nil) when absent
func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewPersistenceError("failed to get user", err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email; (nil, nil) when absent
func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewPersistenceError("failed to get user by email", err)
	}
	return &user, nil
}

// Update replaces the mutable fields of a user record
func (r *MongoUserRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()
	doc, err := setDoc(user)
	if err != nil {
		return domain.NewPersistenceError("failed to prepare user document", err)
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": doc})
	if err != nil {
		return domain.NewPersistenceError("failed to update user", err)
	}
	if result.MatchedCount == 0 {
		return domain.NewNotFoundError("user not found")
	}
	return nil
}

// SetWebflowAccessToken stores the (already encrypted) Webflow access token
func (r *MongoUserRepository) SetWebflowAccessToken(ctx context.Context, userID string, encryptedToken string) error {
	update := bson.M{"$set": bson.M{
		"webflowAccessToken": encryptedToken,
		"updatedAt":          time.Now(),
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return domain.NewPersistenceError("failed to save webflow access token", err)
	}
	if result.MatchedCount == 0 {
		return domain.NewNotFoundError("user not found")
	}
	return nil
}

// MarkResourceFetched flips the per-kind fetched flag on the user record
func (r *MongoUserRepository) MarkResourceFetched(ctx context.Context, userID string, kind domain.ResourceKind) error {
	field := fmt.Sprintf("webflowDataFetchedAndSaved.%s", kind)
	update := bson.M{"$set": bson.M{
		field:       true,
		"updatedAt": time.Now(),
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return domain.NewPersistenceError("failed to mark resource fetched", err)
	}
	if result.MatchedCount == 0 {
		return domain.NewNotFoundError("user not found")
	}
	return nil
}
