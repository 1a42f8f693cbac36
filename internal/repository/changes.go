package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MenuChangesKey is the changes document bumped on every menu write.
const MenuChangesKey = "menu"

// ChangeMarkerDocument records when a collection last changed. Time is an
// opaque marker; clients only compare it for equality.
type ChangeMarkerDocument struct {
	Key       string    `bson:"_id"`
	Time      string    `bson:"time"`
	UpdatedAt time.Time `bson:"updated_at,omitempty"`
}

// ChangesRepository reads and bumps change markers.
type ChangesRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewChangesRepository creates a new changes repository.
func NewChangesRepository(db *MongoDB) *ChangesRepository {
	return &ChangesRepository{
		collection: db.Changes,
		now:        time.Now,
	}
}

// GetMarker returns the current marker for key, or "" when none was recorded.
func (r *ChangesRepository) GetMarker(ctx context.Context, key string) (string, error) {
	var doc ChangeMarkerDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return doc.Time, nil
}

// Touch replaces the marker for key with a fresh one and returns it.
func (r *ChangesRepository) Touch(ctx context.Context, key string) (string, error) {
	now := r.now().UTC()
	marker := now.Format(time.RFC3339Nano)

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{"time": marker, "updated_at": now}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return "", err
	}
	return marker, nil
}
