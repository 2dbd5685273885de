package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection("orders")}
}

func (m *mongoRepository) Save(ctx context.Context, snap *Snapshot) (string, error) {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}

	_, err := m.collection.InsertOne(ctx, snap)
	if err != nil {
		return "", fmt.Errorf("failed to save order: %w", err)
	}
	return snap.ID, nil
}

func (m *mongoRepository) ListByBuyer(ctx context.Context, buyerID string) ([]Snapshot, error) {
	filter := bson.M{"buyer_id": buyerID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []Snapshot
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (m *mongoRepository) GetUnpublished(ctx context.Context, limit int) ([]Snapshot, error) {
	filter := bson.M{"published": false}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unpublished orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []Snapshot
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode unpublished orders: %w", err)
	}
	return orders, nil
}

func (m *mongoRepository) MarkPublished(ctx context.Context, orderID string) error {
	filter := bson.M{"_id": orderID}
	update := bson.M{"$set": bson.M{"published": true}}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark order published: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (m *mongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "buyer_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "published", Value: 1}, {Key: "created_at", Value: 1}},
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}
	return nil
}
