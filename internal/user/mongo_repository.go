package user

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
	return &mongoRepository{collection: db.Collection("users")}
}

func (m *mongoRepository) Create(ctx context.Context, u *User) (string, error) {
	err := m.collection.FindOne(ctx, bson.M{"email": u.Email}).Err()
	if err == nil {
		return "", ErrEmailTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", fmt.Errorf("failed to check existing user: %w", err)
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now()

	if _, err := m.collection.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}
	return u.ID, nil
}

func (m *mongoRepository) GetByID(ctx context.Context, id string) (*User, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

func (m *mongoRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return m.findOne(ctx, bson.M{"email": email})
}

func (m *mongoRepository) VerifyByToken(ctx context.Context, token string) (*User, error) {
	filter := bson.M{"verify_token": token}
	update := bson.M{
		"$set":   bson.M{"verified": true},
		"$unset": bson.M{"verify_token": ""},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u User
	err := m.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}
	return &u, nil
}

func (m *mongoRepository) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var u User
	err := m.collection.FindOne(ctx, filter).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (m *mongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "verify_token", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}
