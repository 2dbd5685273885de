package exchange

import (
	"context"
	"errors"
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
	return &mongoRepository{collection: db.Collection("exchange")}
}

func (m *mongoRepository) List(ctx context.Context) ([]Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode exchange posts: %w", err)
	}
	return posts, nil
}

func (m *mongoRepository) GetByID(ctx context.Context, id string) (*Post, error) {
	var post Post
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get exchange post: %w", err)
	}
	return &post, nil
}

func (m *mongoRepository) Create(ctx context.Context, post *Post) (string, error) {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	post.CreatedAt = time.Now()

	if _, err := m.collection.InsertOne(ctx, post); err != nil {
		return "", fmt.Errorf("failed to create exchange post: %w", err)
	}
	return post.ID, nil
}

func (m *mongoRepository) Delete(ctx context.Context, id string) error {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete exchange post: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}
