package repository

import (
	"fmt"

	"webflow-mirror-layer/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// upsertOptions returns the shared FindOneAndUpdate options: insert when
// missing, return the persisted document.
func upsertOptions() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
}

// setDoc marshals an entity into the $set document of an upsert. The _id and
// createdAt fields are stripped: _id is immutable and createdAt is written
// once via $setOnInsert.
func setDoc(entity any) (bson.M, error) {
	raw, err := bson.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entity document: %w", err)
	}
	delete(doc, "_id")
	delete(doc, "createdAt")
	return doc, nil
}

// countFilter validates and converts the caller-supplied count filter.
func countFilter(filter map[string]any) (bson.M, error) {
	if len(filter) == 0 {
		return nil, domain.NewValidationError("count filter must not be empty")
	}
	return bson.M(filter), nil
}
