package event

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
	return &mongoRepository{collection: db.Collection("events")}
}

func (m *mongoRepository) List(ctx context.Context) ([]Event, error) {
	// upcoming events first
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

func (m *mongoRepository) GetByID(ctx context.Context, id string) (*Event, error) {
	var ev Event
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ev)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &ev, nil
}

func (m *mongoRepository) Create(ctx context.Context, ev *Event) (string, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	ev.CreatedAt = time.Now()

	if _, err := m.collection.InsertOne(ctx, ev); err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}
	return ev.ID, nil
}

func (m *mongoRepository) Update(ctx context.Context, ev *Event) error {
	filter := bson.M{"_id": ev.ID}
	update := bson.M{"$set": bson.M{
		"title":    ev.Title,
		"location": ev.Location,
		"image":    ev.Image,
		"link":     ev.Link,
		"body":     ev.Body,
		"date":     ev.Date,
	}}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (m *mongoRepository) Delete(ctx context.Context, id string) error {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrEventNotFound
	}
	return nil
}
