package wishlist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection("wishlists")}
}

func (m *mongoRepository) Add(ctx context.Context, userID, bookID string) error {
	filter := bson.M{"user_id": userID, "book_id": bookID}
	update := bson.M{"$setOnInsert": Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		BookID:    bookID,
		CreatedAt: time.Now(),
	}}
	opts := options.Update().SetUpsert(true)

	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to add wishlist entry: %w", err)
	}
	return nil
}

func (m *mongoRepository) Remove(ctx context.Context, userID, bookID string) error {
	filter := bson.M{"user_id": userID, "book_id": bookID}

	result, err := m.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to remove wishlist entry: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (m *mongoRepository) ListByUser(ctx context.Context, userID string) ([]Entry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := m.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode wishlist: %w", err)
	}
	return entries, nil
}
